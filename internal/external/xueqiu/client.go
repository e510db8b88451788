package xueqiu

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"sync"

	"github.com/wonny/quotehub/pkg/config"
	"github.com/wonny/quotehub/pkg/httputil"
	"github.com/wonny/quotehub/pkg/logger"
)

// TokenCookie is the session cookie the JSON endpoints require
const TokenCookie = "xq_a_token"

// Client talks to the Xueqiu JSON quote and search endpoints
// ⭐ SSOT: Xueqiu 호출과 세션 토큰은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	cfg        config.XueqiuConfig

	tokenMu sync.Mutex
	token   string
}

// NewClient creates a new Xueqiu client
func NewClient(httpClient *httputil.Client, cfg config.XueqiuConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		cfg:        cfg,
	}
}

// Token returns the "xq_a_token=..." cookie pair, visiting the landing page on first use.
// Concurrent first calls share one fetch. An empty result is not cached and never an error:
// callers send it as is.
func (c *Client) Token(ctx context.Context) string {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.token != "" {
		return c.token
	}

	resp, err := c.httpClient.Get(ctx, c.cfg.HomeURL, httputil.RandomHeaders(nil))
	if err != nil {
		c.logger.WithError(err).Warn("Failed to fetch xueqiu session token")
		return ""
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	for _, cookie := range resp.Cookies() {
		if cookie.Name == TokenCookie && cookie.Value != "" {
			c.token = TokenCookie + "=" + cookie.Value
			break
		}
	}
	if c.token == "" {
		c.logger.Warn("Xueqiu landing page set no session token")
	}
	return c.token
}

// headers are the browser headers plus referer and session cookie
func (c *Client) headers(ctx context.Context) map[string]string {
	return httputil.RandomHeaders(map[string]string{
		"Referer": c.cfg.Referer,
		"Cookie":  c.Token(ctx),
	})
}

// providerSymbol maps a classified HK symbol to the provider's form: indices carry "HK"
func providerSymbol(symbol string) string {
	if symbol == "" || symbol[0] == '0' || strings.HasPrefix(symbol, "HK") {
		return symbol
	}
	return "HK" + symbol
}

// QuoteURL is the batch quote URL for symbols
func (c *Client) QuoteURL(symbols []string) string {
	mapped := make([]string, len(symbols))
	for i, s := range symbols {
		mapped[i] = providerSymbol(s)
	}
	return c.cfg.QuoteURL + "?symbol=" + strings.Join(mapped, ",")
}

// FetchBatchQuote returns the raw batch quote document for symbols
func (c *Client) FetchBatchQuote(ctx context.Context, symbols []string) ([]byte, error) {
	body, err := c.httpClient.GetBytes(ctx, c.QuoteURL(symbols), c.headers(ctx))
	if err != nil {
		return nil, fmt.Errorf("fetch xueqiu quotes: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"symbols": len(symbols),
		"bytes":   len(body),
	}).Debug("Fetched xueqiu quotes")
	return body, nil
}

// SearchStocks returns the raw search document for a free-text query
func (c *Client) SearchStocks(ctx context.Context, query string) ([]byte, error) {
	u := c.cfg.SearchURL + "?code=" + url.QueryEscape(query)
	body, err := c.httpClient.GetBytes(ctx, u, c.headers(ctx))
	if err != nil {
		return nil, fmt.Errorf("search xueqiu stocks: %w", err)
	}
	return body, nil
}
