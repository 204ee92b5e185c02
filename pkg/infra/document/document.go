// Package document turns downloaded attachment bytes into plain text for
// classification. Extractors tolerate malformed input: a document that cannot
// be read yields partial or empty text, never a crash.
package document

import (
	"strings"

	"github.com/sirupsen/logrus"
)

// Extractor converts one document format into plain text.
type Extractor interface {
	Extract(data []byte) (string, error)
}

// Registry dispatches on the lowercase extension hint carried by file
// messages. The mapping is open-ended; unknown extensions yield no extractor
// and the caller treats the attachment as having no analyzable content.
type Registry struct {
	logger *logrus.Logger
}

func NewRegistry(logger *logrus.Logger) *Registry {
	return &Registry{logger: logger}
}

func (r *Registry) ExtractorFor(extension string) (Extractor, bool) {
	ext := strings.ToLower(extension)
	switch {
	case strings.Contains(ext, "pdf"):
		return &PDFExtractor{maxPages: DefaultMaxPDFPages, logger: r.logger}, true
	case strings.Contains(ext, "doc"):
		return &DocxExtractor{logger: r.logger}, true
	case strings.Contains(ext, "txt"):
		return PlainTextExtractor{}, true
	default:
		return nil, false
	}
}
