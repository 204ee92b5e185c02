package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fumiama/go-docx"
	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
)

// DocxExtractor concatenates the paragraph text of a word-processor document.
type DocxExtractor struct {
	logger *logrus.Logger
}

func (e *DocxExtractor) Extract(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &domain.ExtractionError{Format: "docx", Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &domain.ExtractionError{Format: "docx", Err: err}
	}

	var sb strings.Builder
	for _, item := range doc.Document.Body.Items {
		if paragraph, ok := item.(*docx.Paragraph); ok {
			sb.WriteString(paragraph.String())
			sb.WriteString("\n")
		}
	}
	return sb.String(), nil
}
