package moderation

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/document"
	"github.com/modfence/modfence/pkg/infra/fetcher"
	"github.com/modfence/modfence/pkg/infra/metrics"
)

// DocumentRegistry resolves a text extractor for an attachment extension.
type DocumentRegistry interface {
	ExtractorFor(extension string) (document.Extractor, bool)
}

// Extractor produces analyzable content from a conversation window: flattened
// text, downloaded image bytes, or extracted attachment text.
type Extractor struct {
	fetcher   fetcher.Fetcher
	documents DocumentRegistry
	policy    Policy
	logger    *logrus.Logger
}

func NewExtractor(f fetcher.Fetcher, documents DocumentRegistry, policy Policy, logger *logrus.Logger) *Extractor {
	return &Extractor{
		fetcher:   f,
		documents: documents,
		policy:    policy,
		logger:    logger,
	}
}

// ExtractText flattens every text message in the window, history and current
// alike, into one blob. Image and file payloads are skipped so urls and
// filenames never leak into the text stream. The result is truncated to the
// backend input limit.
func (e *Extractor) ExtractText(window domain.Window) string {
	var sb strings.Builder
	for _, entry := range window {
		payload := entry.Payload()
		if payload.Kind() != domain.KindText {
			continue
		}
		text := payload.TextContent()
		if text == "" {
			continue
		}
		sb.WriteString(text)
		sb.WriteString(". ")
	}
	return e.truncate(sb.String())
}

// ExtractImage downloads the image referenced by the current message and
// returns the raw bytes, no re-encoding.
func (e *Extractor) ExtractImage(ctx context.Context, payload domain.Payload) ([]byte, error) {
	if payload.Data.URL == "" {
		return nil, domain.ErrMissingResource
	}
	return e.fetcher.Fetch(ctx, payload.Data.URL)
}

// ExtractFileText downloads the attachment referenced by the current message
// and extracts its text. Unsupported extensions and malformed documents yield
// empty text rather than an error: an attachment we cannot read is not a
// violation signal.
func (e *Extractor) ExtractFileText(ctx context.Context, payload domain.Payload) (string, error) {
	if payload.Data.URL == "" {
		return "", domain.ErrMissingResource
	}

	extractor, ok := e.documents.ExtractorFor(payload.Data.Extension)
	if !ok {
		e.logger.WithField("extension", payload.Data.Extension).Info("no extractor for attachment extension")
		return "", nil
	}

	data, err := e.fetcher.Fetch(ctx, payload.Data.URL)
	if err != nil {
		return "", err
	}

	text, err := extractor.Extract(data)
	if err != nil {
		e.logger.WithError(err).Warn("document extraction failed, keeping partial text")
	}
	return e.truncate(text), nil
}

// truncate enforces the backend input limit. Content at the limit passes
// untouched; anything longer is cut to exactly the limit.
func (e *Extractor) truncate(text string) string {
	limit := e.policy.MaxTextLength
	if limit <= 0 {
		return text
	}
	length := utf8.RuneCountInString(text)
	if length <= limit {
		return text
	}

	metrics.TruncationsTotal.Inc()
	e.logger.WithFields(logrus.Fields{
		"length": length,
		"limit":  limit,
	}).Warn("truncating text before classification")

	return string([]rune(text)[:limit])
}
