package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
)

// DefaultMaxPDFPages caps how much of a PDF is read. Three pages is plenty of
// signal for a chat attachment.
const DefaultMaxPDFPages = 3

type PDFExtractor struct {
	maxPages int
	logger   *logrus.Logger
}

func (e *PDFExtractor) Extract(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &domain.ExtractionError{Format: "pdf", Err: err}
	}

	pages := reader.NumPage()
	if pages > e.maxPages {
		pages = e.maxPages
	}

	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		text, err := e.pageText(reader, i)
		if err != nil {
			e.logger.WithError(err).WithField("page", i).Warn("skipping unreadable pdf page")
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}

// pageText isolates per-page extraction; the pdf library panics on some
// malformed content streams.
func (e *PDFExtractor) pageText(reader *pdf.Reader, num int) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("page %d: %v", num, r)
		}
	}()

	page := reader.Page(num)
	if page.V.IsNull() {
		return "", nil
	}
	return page.GetPlainText(nil)
}
