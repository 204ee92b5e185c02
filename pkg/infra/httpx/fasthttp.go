package httpx

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
)

const (
	DefaultTimeout             = 30 * time.Second
	DefaultMaxConnsPerHost     = 512
	DefaultMaxIdleConnDuration = 10 * time.Second
	DefaultMaxResponseBodySize = 32 * 1024 * 1024
)

// FastHTTPClient adapts a fasthttp.Client to the Client interface. A request
// context deadline, when present, bounds the call.
type FastHTTPClient struct {
	client *fasthttp.Client
}

func NewFastHTTPClient(timeout time.Duration) Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &FastHTTPClient{
		client: &fasthttp.Client{
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxConnsPerHost:     DefaultMaxConnsPerHost,
			MaxIdleConnDuration: DefaultMaxIdleConnDuration,
			MaxResponseBodySize: DefaultMaxResponseBodySize,
		},
	}
}

func (c *FastHTTPClient) Do(req *http.Request) (*http.Response, error) {
	fastReq := fasthttp.AcquireRequest()
	fastResp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(fastReq)

	if req.URL != nil {
		fastReq.SetRequestURI(req.URL.String())
	}
	fastReq.Header.SetMethod(req.Method)

	for key, values := range req.Header {
		for _, value := range values {
			fastReq.Header.Add(key, value)
		}
	}

	if req.Body != nil {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			fasthttp.ReleaseResponse(fastResp)
			return nil, fmt.Errorf("failed to read request body: %w", err)
		}
		fastReq.SetBodyRaw(body)
		_ = req.Body.Close()
	}

	var err error
	if deadline, ok := req.Context().Deadline(); ok {
		err = c.client.DoDeadline(fastReq, fastResp, deadline)
	} else {
		err = c.client.Do(fastReq, fastResp)
	}
	if err != nil {
		fasthttp.ReleaseResponse(fastResp)
		return nil, err
	}

	// The fasthttp body buffer is reused, copy before releasing.
	respBody := fastResp.Body()
	bodyCopy := make([]byte, len(respBody))
	copy(bodyCopy, respBody)

	statusCode := fastResp.StatusCode()
	headers := make(http.Header)
	fastResp.Header.VisitAll(func(key, value []byte) {
		headers.Add(string(key), string(value))
	})

	resp := &http.Response{
		Status:        fmt.Sprintf("%d %s", statusCode, http.StatusText(statusCode)),
		StatusCode:    statusCode,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        headers,
		Body:          io.NopCloser(bytes.NewReader(bodyCopy)),
		ContentLength: int64(len(bodyCopy)),
		Request:       req,
	}

	fasthttp.ReleaseResponse(fastResp)

	return resp, nil
}
