package domain

import (
	"errors"
	"fmt"
)

// ErrMissingResource signals an image or file payload without a resource url.
var ErrMissingResource = errors.New("payload has no resource url")

// DownloadError reports a failed fetch of a remote image or attachment.
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *DownloadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("download %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("download %s: unexpected status %d", e.URL, e.StatusCode)
}

func (e *DownloadError) Unwrap() error { return e.Err }

// BackendError reports a classification backend failure. A content violation
// is a normal analysis result, never a BackendError.
type BackendError struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *BackendError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("classification backend returned status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("classification backend: %s", e.Message)
}

func (e *BackendError) Unwrap() error { return e.Err }

// ExtractionError reports a malformed document. It is recovered per document;
// callers keep whatever partial text was produced before the failure.
type ExtractionError struct {
	Format string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s text: %v", e.Format, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }
