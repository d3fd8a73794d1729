package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/piresc/estamp/internal/pkg/apperror"
	httpclient "github.com/piresc/estamp/internal/pkg/http"
	"github.com/piresc/estamp/internal/pkg/logger"
	"github.com/piresc/estamp/internal/pkg/models"
)

const (
	// tokenExpiryMargin is how long before expiry a cached token stops being handed out
	tokenExpiryMargin = 10 * time.Second

	defaultTokenLifetime = 3600 * time.Second
	defaultAuthTimeout   = 10 * time.Second
)

// TokenOption configures a TokenSource
type TokenOption func(*TokenSource)

// WithTokenHTTPClient overrides the client used for the credentials exchange
func WithTokenHTTPClient(c *httpclient.Client) TokenOption {
	return func(s *TokenSource) {
		s.client = c
	}
}

// WithTokenClock overrides the clock used for expiry checks
func WithTokenClock(now func() time.Time) TokenOption {
	return func(s *TokenSource) {
		s.now = now
	}
}

// TokenSource caches one BOR access token and refreshes it through the
// client-credentials grant. Concurrent refreshes share a single exchange.
type TokenSource struct {
	cfg    models.BORConfig
	client *httpclient.Client
	now    func() time.Time

	mu     sync.RWMutex
	cached models.BORToken
	group  singleflight.Group
}

// NewTokenSource creates a token cache for the given BOR credentials
func NewTokenSource(cfg models.BORConfig, opts ...TokenOption) *TokenSource {
	timeout := cfg.AuthTimeout
	if timeout <= 0 {
		timeout = defaultAuthTimeout
	}
	s := &TokenSource{
		cfg:    cfg,
		client: httpclient.NewClient("bor-auth", "", timeout),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Token returns a usable bearer token, exchanging credentials when the
// cached one is missing or within tokenExpiryMargin of expiry.
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	if s.cfg.AuthURL == "" || s.cfg.ClientID == "" || s.cfg.ClientSecret == "" {
		return "", apperror.Config("BOR credentials are not configured")
	}

	if token, ok := s.fresh(); ok {
		return token, nil
	}

	// The exchange outlives any single caller that joined it.
	exchangeCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("token", func() (interface{}, error) {
		if token, ok := s.fresh(); ok {
			return token, nil
		}
		tok, err := s.exchange(exchangeCtx)
		if err != nil {
			return "", err
		}
		s.mu.Lock()
		s.cached = tok
		s.mu.Unlock()
		return tok.Token, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached token so the next call exchanges again
func (s *TokenSource) Invalidate() {
	s.mu.Lock()
	s.cached = models.BORToken{}
	s.mu.Unlock()
}

func (s *TokenSource) fresh() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cached.Token == "" {
		return "", false
	}
	if !s.cached.ExpiresAt.After(s.now().Add(tokenExpiryMargin)) {
		return "", false
	}
	return s.cached.Token, true
}

func (s *TokenSource) exchange(ctx context.Context) (models.BORToken, error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", s.cfg.ClientID)
	form.Set("client_secret", s.cfg.ClientSecret)

	header := http.Header{}
	header.Set("Content-Type", "application/x-www-form-urlencoded")
	header.Set("Accept", "application/json")

	resp, err := s.client.Do(ctx, httpclient.Request{
		Method: http.MethodPost,
		Path:   s.cfg.AuthURL,
		Header: header,
		Body:   strings.NewReader(form.Encode()),
	})
	if err != nil {
		return models.BORToken{}, apperror.UpstreamAuth("BOR token request failed", 0, nil, err)
	}
	if !resp.OK() {
		return models.BORToken{}, apperror.UpstreamAuth(
			fmt.Sprintf("BOR token request failed with status %d", resp.StatusCode),
			resp.StatusCode, resp.Body, nil)
	}

	var body models.BORTokenResponse
	if err := json.Unmarshal(resp.Body, &body); err != nil || body.AccessToken == "" {
		return models.BORToken{}, apperror.UpstreamAuth("BOR token response has no access_token",
			resp.StatusCode, resp.Body, err)
	}

	lifetime := expiresIn(body.ExpiresIn)
	logger.Debug("BOR token refreshed", logger.Duration("lifetime", lifetime))

	return models.BORToken{
		Token:     body.AccessToken,
		ExpiresAt: s.now().Add(lifetime),
	}, nil
}

func expiresIn(n *json.Number) time.Duration {
	if n == nil {
		return defaultTokenLifetime
	}
	secs, err := n.Float64()
	if err != nil || secs <= 0 {
		return defaultTokenLifetime
	}
	return time.Duration(secs * float64(time.Second))
}
