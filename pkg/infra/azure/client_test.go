package azure

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/httpx/mocks"
)

func newTestClient(httpClient *mocks.MockHTTPClient) *Client {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewClient("https://example.cognitiveservices.azure.com/", "test-key", httpClient, logger)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
	}
}

func TestClient_AnalyzeText(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if req.Method != http.MethodPost {
			return false
		}
		if req.Header.Get("Ocp-Apim-Subscription-Key") != "test-key" {
			return false
		}
		return strings.Contains(req.URL.Path, "text:analyze")
	})).Return(jsonResponse(http.StatusOK, `{
		"categoriesAnalysis": [
			{"category": "Hate", "severity": 0},
			{"category": "Violence", "severity": 4}
		]
	}`), nil)

	client := newTestClient(httpClient)
	result, err := client.AnalyzeText(context.Background(), "some message")

	require.NoError(t, err)
	require.Len(t, result.Categories, 2)
	assert.Equal(t, "Violence", result.Categories[1].Category)
	assert.Equal(t, 4, result.Categories[1].Severity)
	httpClient.AssertExpectations(t)
}

func TestClient_AnalyzeText_RequestShape(t *testing.T) {
	var captured []byte
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return false
		}
		captured = body
		return true
	})).Return(jsonResponse(http.StatusOK, `{"categoriesAnalysis": []}`), nil)

	client := newTestClient(httpClient)
	_, err := client.AnalyzeText(context.Background(), "hello")

	require.NoError(t, err)
	var req map[string]interface{}
	require.NoError(t, json.Unmarshal(captured, &req))
	assert.Equal(t, "hello", req["text"])
	assert.Equal(t, "EightSeverityLevels", req["outputType"])
}

func TestClient_AnalyzeImage(t *testing.T) {
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}

	var captured []byte
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.MatchedBy(func(req *http.Request) bool {
		if !strings.Contains(req.URL.Path, "image:analyze") {
			return false
		}
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return false
		}
		captured = body
		return true
	})).Return(jsonResponse(http.StatusOK, `{
		"categoriesAnalysis": [{"category": "Sexual", "severity": 2}]
	}`), nil)

	client := newTestClient(httpClient)
	result, err := client.AnalyzeImage(context.Background(), imageBytes)

	require.NoError(t, err)
	require.Len(t, result.Categories, 1)
	assert.Equal(t, "Sexual", result.Categories[0].Category)

	var req struct {
		Image struct {
			Content string `json:"content"`
		} `json:"image"`
	}
	require.NoError(t, json.Unmarshal(captured, &req))
	assert.Equal(t, base64.StdEncoding.EncodeToString(imageBytes), req.Image.Content)
}

func TestClient_Non200IsBackendError(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(
		jsonResponse(http.StatusTooManyRequests, `{"error": "rate limited"}`), nil)

	client := newTestClient(httpClient)
	_, err := client.AnalyzeText(context.Background(), "text")

	var backendErr *domain.BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, http.StatusTooManyRequests, backendErr.StatusCode)
}

func TestClient_TransportErrorIsBackendError(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(nil, assert.AnError)

	client := newTestClient(httpClient)
	_, err := client.AnalyzeText(context.Background(), "text")

	var backendErr *domain.BackendError
	assert.ErrorAs(t, err, &backendErr)
}

func TestClient_MalformedResponseIsBackendError(t *testing.T) {
	httpClient := new(mocks.MockHTTPClient)
	httpClient.On("Do", mock.Anything).Return(jsonResponse(http.StatusOK, `not json`), nil)

	client := newTestClient(httpClient)
	_, err := client.AnalyzeText(context.Background(), "text")

	var backendErr *domain.BackendError
	assert.ErrorAs(t, err, &backendErr)
}
