package document

// PlainTextExtractor passes the downloaded body through as text.
type PlainTextExtractor struct{}

func (PlainTextExtractor) Extract(data []byte) (string, error) {
	return string(data), nil
}
