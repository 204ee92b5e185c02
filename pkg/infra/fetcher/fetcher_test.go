package fetcher

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/httpx/mocks"
)

func newTestFetcher(httpClient *mocks.MockHTTPClient) *HTTPFetcher {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewHTTPFetcher(httpClient, time.Second, logger)
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		return req.Method == http.MethodGet && req.URL.String() == "http://cdn/x.png"
	})).Return(&http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader("image bytes")),
	}, nil)

	body, err := newTestFetcher(httpClient).Fetch(context.Background(), "http://cdn/x.png")

	require.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), body)
	httpClient.AssertExpectations(t)
}

func TestHTTPFetcher_Non2xxIsDownloadError(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(&http.Response{
		StatusCode: http.StatusNotFound,
		Body:       io.NopCloser(strings.NewReader("not found")),
	}, nil)

	_, err := newTestFetcher(httpClient).Fetch(context.Background(), "http://cdn/gone.png")

	var downloadErr *domain.DownloadError
	require.ErrorAs(t, err, &downloadErr)
	assert.Equal(t, http.StatusNotFound, downloadErr.StatusCode)
	assert.Equal(t, "http://cdn/gone.png", downloadErr.URL)
}

func TestHTTPFetcher_TransportErrorIsDownloadError(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(nil, assert.AnError)

	_, err := newTestFetcher(httpClient).Fetch(context.Background(), "http://cdn/x.png")

	var downloadErr *domain.DownloadError
	assert.ErrorAs(t, err, &downloadErr)
}

func TestHTTPFetcher_InvalidURL(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)

	_, err := newTestFetcher(httpClient).Fetch(context.Background(), "://bad")

	var downloadErr *domain.DownloadError
	assert.ErrorAs(t, err, &downloadErr)
	httpClient.AssertNotCalled(t, "Do", mock.Anything)
}
