package httpx

import "net/http"

// Client abstracts outbound HTTP so callers can be exercised with a mock.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
