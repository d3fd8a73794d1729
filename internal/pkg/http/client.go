package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	nethttp "net/http"
	"time"

	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/newrelic"
	"github.com/piresc/estamp/internal/pkg/requestcontext"
)

const (
	// DefaultTimeout for HTTP requests
	DefaultTimeout = 30 * time.Second

	maxResponseBytes = 10 << 20
)

// ErrBodyTooLarge is returned when an upstream body exceeds the read limit
var ErrBodyTooLarge = errors.New("response body too large")

// Client performs outbound requests against one upstream service
type Client struct {
	baseURL     string
	serviceName string
	httpClient  *nethttp.Client
	maxBody     int64
}

// Request describes one outbound call. Path is appended to the base URL.
type Request struct {
	Method string
	Path   string
	Header nethttp.Header
	Body   io.Reader
}

// Response is a fully read upstream response
type Response struct {
	StatusCode int
	Header     nethttp.Header
	Body       []byte
}

// OK reports a 2xx status
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NewClient creates a client with its own timeout. A zero timeout uses DefaultTimeout.
func NewClient(serviceName, baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:     baseURL,
		serviceName: serviceName,
		httpClient:  &nethttp.Client{Timeout: timeout},
		maxBody:     maxResponseBytes,
	}
}

// Timeout returns the per-request timeout
func (c *Client) Timeout() time.Duration {
	return c.httpClient.Timeout
}

// Do sends req and reads the whole response body. Non-2xx statuses are
// returned as a Response, not an error; only transport failures error.
func (c *Client) Do(ctx context.Context, req Request) (*Response, error) {
	url := c.baseURL + req.Path

	httpReq, err := nethttp.NewRequestWithContext(ctx, req.Method, url, req.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range req.Header {
		for _, v := range values {
			httpReq.Header.Add(key, v)
		}
	}
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		httpReq.Header.Set("X-Request-ID", requestID)
	}

	logger.Debug("Making HTTP request",
		logger.String("service", c.serviceName),
		logger.String("method", req.Method),
		logger.String("path", req.Path))

	start := time.Now()
	resp, err := newrelic.InstrumentHTTPRequest(ctx, httpReq, func() (*nethttp.Response, error) {
		return c.httpClient.Do(httpReq)
	})
	if err != nil {
		logger.Warn("HTTP request failed",
			logger.String("service", c.serviceName),
			logger.String("method", req.Method),
			logger.String("path", req.Path),
			logger.Duration("latency", time.Since(start)),
			logger.Err(err))
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(body)) > c.maxBody {
		return nil, fmt.Errorf("%w: %s %s exceeds %d bytes", ErrBodyTooLarge, req.Method, req.Path, c.maxBody)
	}

	logger.Debug("HTTP request completed",
		logger.String("service", c.serviceName),
		logger.String("method", req.Method),
		logger.String("path", req.Path),
		logger.Int("status_code", resp.StatusCode),
		logger.Duration("latency", time.Since(start)))

	return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
}
