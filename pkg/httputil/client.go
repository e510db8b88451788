package httputil

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
	"golang.org/x/time/rate"

	"github.com/wonny/quotehub/pkg/config"
	"github.com/wonny/quotehub/pkg/logger"
	"github.com/wonny/quotehub/pkg/redis"
)

// maxBodySize caps provider responses at 4MB
const maxBodySize = 4 << 20

// ErrUnexpectedStatus is returned for non-2xx responses
var ErrUnexpectedStatus = errors.New("unexpected status code")

// Client is an HTTP client wrapper with pacing and logging.
// Failed requests are not retried; callers decide how to degrade.
// ⭐ SSOT: 모든 HTTP 요청은 이 클라이언트를 통해서만 수행
type Client struct {
	httpClient   *http.Client
	logger       *logger.Logger
	limiter      *rate.Limiter
	rateLimiter  *redis.RateLimiter
	rateLimitCfg *redis.RateLimitConfig
}

// New creates a new HTTP client from config
// ⭐ SSOT: http.Client 인스턴스는 여기서만 생성
func New(cfg *config.Config, log *logger.Logger) *Client {
	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	limit := rate.Inf
	burst := 1
	if cfg.HTTPRateLimit > 0 {
		limit = rate.Limit(cfg.HTTPRateLimit)
		burst = cfg.HTTPRateLimit
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     log,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// WithRateLimiter returns a copy of the client that also waits on a shared redis limiter.
// The process-local limiter stays shared with the original.
func (c *Client) WithRateLimiter(limiter *redis.RateLimiter, cfg redis.RateLimitConfig) *Client {
	clone := *c
	clone.rateLimiter = limiter
	clone.rateLimitCfg = &cfg
	return &clone
}

// Get performs a GET request with the given headers. The caller closes the body.
func (c *Client) Get(ctx context.Context, url string, headers map[string]string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create GET request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return c.do(req)
}

// GetBytes performs a GET and returns the raw body of a 2xx response
func (c *Client) GetBytes(ctx context.Context, url string, headers map[string]string) ([]byte, error) {
	resp, err := c.Get(ctx, url, headers)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

// GetText performs a GET and decodes the body from enc into UTF-8.
// A nil enc means the body is already UTF-8.
func (c *Client) GetText(ctx context.Context, url string, headers map[string]string, enc encoding.Encoding) (string, error) {
	resp, err := c.Get(ctx, url, headers)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var r io.Reader = io.LimitReader(resp.Body, maxBodySize)
	if enc != nil {
		r = transform.NewReader(r, enc.NewDecoder())
	}

	body, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to decode response body: %w", err)
	}
	return string(body), nil
}

func checkStatus(resp *http.Response) error {
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
	return nil
}

// do paces and executes the request with logging
func (c *Client) do(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	url := req.URL.String()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait failed: %w", err)
	}
	if c.rateLimiter != nil && c.rateLimitCfg != nil {
		if err := c.rateLimiter.Wait(ctx, *c.rateLimitCfg); err != nil {
			return nil, fmt.Errorf("rate limit wait failed: %w", err)
		}
	}

	startTime := time.Now()
	resp, err := c.httpClient.Do(req)
	duration := time.Since(startTime)

	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"method":   req.Method,
			"url":      url,
			"duration": duration,
			"error":    err.Error(),
		}).Error("HTTP request failed")
		return nil, err
	}

	c.logger.WithFields(map[string]interface{}{
		"method":      req.Method,
		"url":         url,
		"status_code": resp.StatusCode,
		"duration":    duration,
	}).Debug("HTTP request completed")

	return resp, nil
}
