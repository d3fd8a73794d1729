package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/piresc/estamp/internal/pkg/apperror"
	httpclient "github.com/piresc/estamp/internal/pkg/http"
	"github.com/piresc/estamp/internal/pkg/models"
	"github.com/piresc/estamp/services/bor"
)

const defaultTimeout = 15 * time.Second

// Client calls the BOR API with a bearer token from a TokenProvider
type Client struct {
	baseURL string
	tokens  bor.TokenProvider
	http    *httpclient.Client
}

// NewClient creates a BOR API client
func NewClient(cfg models.BORConfig, tokens bor.TokenProvider) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: cfg.BaseURL,
		tokens:  tokens,
		http:    httpclient.NewClient("bor", cfg.BaseURL, timeout),
	}
}

// Do sends one request. body, when non-nil, is sent as JSON. A 2xx JSON body
// is returned as-is and any other 2xx body comes back as a JSON string.
// Non-2xx statuses become upstream errors, and a 401 also drops the cached
// token so the next call exchanges a fresh one.
func (c *Client) Do(ctx context.Context, method, path string, body interface{}) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, apperror.Config("BOR base URL is not configured")
	}

	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+token)
	header.Set("Accept", "application/json")

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, apperror.Validation(fmt.Sprintf("invalid BOR request body: %v", err))
		}
		header.Set("Content-Type", "application/json")
		reader = bytes.NewReader(payload)
	}

	resp, err := c.http.Do(ctx, httpclient.Request{
		Method: method,
		Path:   path,
		Header: header,
		Body:   reader,
	})
	if err != nil {
		return nil, apperror.UpstreamUnavailable(err)
	}
	if !resp.OK() {
		if resp.StatusCode == http.StatusUnauthorized {
			c.tokens.Invalidate()
		}
		return nil, apperror.Upstream(resp.StatusCode, resp.Body)
	}

	if len(resp.Body) > 0 && json.Valid(resp.Body) {
		return json.RawMessage(resp.Body), nil
	}
	text, err := json.Marshal(string(resp.Body))
	if err != nil {
		return nil, apperror.Internal("failed to encode BOR response", err)
	}
	return text, nil
}
