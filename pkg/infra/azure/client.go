package azure

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/modfence/modfence/pkg/domain"
	"github.com/modfence/modfence/pkg/infra/httpx"
)

const (
	textAnalyzePath  = "/contentsafety/text:analyze?api-version=2023-10-01"
	imageAnalyzePath = "/contentsafety/image:analyze?api-version=2023-10-01"

	// EightSeverityLevels yields the full 0-7 severity scale.
	outputType = "EightSeverityLevels"

	breakerTimeout     = 30 * time.Second
	breakerMaxFailures = 5
)

// Client talks to Azure Content Safety. One synchronous attempt per call, no
// retries; the circuit breaker only fails fast once the backend is known bad.
type Client struct {
	endpoint string
	apiKey   string
	client   httpx.Client
	breaker  httpx.CircuitBreaker
	logger   *logrus.Logger
}

type textRequest struct {
	Text       string   `json:"text"`
	Categories []string `json:"categories,omitempty"`
	OutputType string   `json:"outputType"`
}

type imageRequest struct {
	Image struct {
		Content string `json:"content"` // base64 encoded image bytes
	} `json:"image"`
	OutputType string `json:"outputType"`
}

func NewClient(endpoint, apiKey string, client httpx.Client, logger *logrus.Logger) *Client {
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		client:   client,
		breaker:  httpx.NewCircuitBreaker("azure-content-safety", breakerTimeout, breakerMaxFailures),
		logger:   logger,
	}
}

func (c *Client) AnalyzeText(ctx context.Context, text string) (*domain.AnalysisResult, error) {
	payload, err := json.Marshal(textRequest{Text: text, OutputType: outputType})
	if err != nil {
		return nil, &domain.BackendError{Message: "marshal text analyze request", Err: err}
	}
	return c.analyze(ctx, c.endpoint+textAnalyzePath, payload)
}

func (c *Client) AnalyzeImage(ctx context.Context, image []byte) (*domain.AnalysisResult, error) {
	req := imageRequest{OutputType: outputType}
	req.Image.Content = base64.StdEncoding.EncodeToString(image)

	payload, err := json.Marshal(req)
	if err != nil {
		return nil, &domain.BackendError{Message: "marshal image analyze request", Err: err}
	}
	return c.analyze(ctx, c.endpoint+imageAnalyzePath, payload)
}

func (c *Client) analyze(ctx context.Context, url string, payload []byte) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult

	err := c.breaker.Execute(func() error {
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return fmt.Errorf("build analyze request: %w", err)
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Ocp-Apim-Subscription-Key", c.apiKey)

		httpResp, err := c.client.Do(httpReq)
		if err != nil {
			return err
		}
		defer func() { _ = httpResp.Body.Close() }()

		body, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return fmt.Errorf("read analyze response: %w", err)
		}

		if httpResp.StatusCode != http.StatusOK {
			return &domain.BackendError{StatusCode: httpResp.StatusCode, Message: string(body)}
		}

		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("decode analyze response: %w", err)
		}
		return nil
	})
	if err != nil {
		c.logger.WithError(err).Error("content safety request failed")
		var backendErr *domain.BackendError
		if errors.As(err, &backendErr) {
			return nil, backendErr
		}
		return nil, &domain.BackendError{Message: err.Error(), Err: err}
	}

	return &result, nil
}
