package fetcher

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/httpx"
)

// DefaultTimeout bounds resource downloads; the chat platform is waiting
// synchronously for the verdict.
const DefaultTimeout = 10 * time.Second

// Fetcher downloads the remote resources referenced by image and file
// messages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type HTTPFetcher struct {
	client  httpx.Client
	timeout time.Duration
	logger  *logrus.Logger
}

func NewHTTPFetcher(client httpx.Client, timeout time.Duration, logger *logrus.Logger) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPFetcher{client: client, timeout: timeout, logger: logger}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.DownloadError{URL: rawURL, Err: err}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.DownloadError{URL: rawURL, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, &domain.DownloadError{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.DownloadError{URL: rawURL, Err: err}
	}

	f.logger.WithFields(logrus.Fields{
		"url":  rawURL,
		"size": len(body),
	}).Debug("resource downloaded")

	return body, nil
}
