package sina

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/encoding/simplifiedchinese"

	"github.com/wonny/quotehub/pkg/config"
	"github.com/wonny/quotehub/pkg/httputil"
	"github.com/wonny/quotehub/pkg/logger"
)

// Client talks to the Sina legacy quote feed and the futures suggest endpoint.
// Both respond in GB18030.
// ⭐ SSOT: Sina 호출은 이 클라이언트에서만
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	quoteURL   string
	suggestURL string
	referer    string
}

// NewClient creates a new Sina client
func NewClient(httpClient *httputil.Client, cfg config.SinaConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		quoteURL:   cfg.QuoteURL,
		suggestURL: cfg.SuggestURL,
		referer:    cfg.Referer,
	}
}

// QuoteURL is the batched quote URL for codes
func (c *Client) QuoteURL(codes []string) string {
	return c.quoteURL + strings.Join(codes, ",")
}

// FetchQuotes returns the decoded legacy-feed body for codes
func (c *Client) FetchQuotes(ctx context.Context, codes []string) (string, error) {
	u := c.QuoteURL(codes)
	body, err := c.httpClient.GetText(ctx, u, httputil.RandomHeaders(map[string]string{
		"Referer": c.referer,
	}), simplifiedchinese.GB18030)
	if err != nil {
		return "", fmt.Errorf("fetch sina quotes: %w", err)
	}

	c.logger.WithFields(map[string]interface{}{
		"codes": len(codes),
		"bytes": len(body),
	}).Debug("Fetched sina quotes")
	return body, nil
}

// FetchSuggest returns the decoded futures suggest blob for key
func (c *Client) FetchSuggest(ctx context.Context, key string) (string, error) {
	u := c.suggestURL + url.QueryEscape(key)
	body, err := c.httpClient.GetText(ctx, u, httputil.RandomHeaders(nil), simplifiedchinese.GB18030)
	if err != nil {
		return "", fmt.Errorf("fetch sina suggest: %w", err)
	}
	return body, nil
}
