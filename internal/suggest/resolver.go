package suggest

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/wonny/quotehub/pkg/logger"
)

// Placeholder labels
const (
	PromptLabel        = "请输入关键词查询，如：0000001 或 上证指数"
	FuturesFailedLabel = "期货查询失败，请重试"
	StockFailedLabel   = "股票查询失败，请重试"
)

// Market labels
const (
	MainlandLabel = "A股"
	HKLabel       = "港股"
	USLabel       = "美股"
)

// Result is one search hit: "<code> | <name>" plus a market or exchange hint
type Result struct {
	Label       string `json:"label"`
	Description string `json:"description,omitempty"`
}

// FuturesSource returns the raw futures suggest blob
type FuturesSource interface {
	FetchSuggest(ctx context.Context, key string) (string, error)
}

// StockSource returns the raw equity search document
type StockSource interface {
	SearchStocks(ctx context.Context, query string) ([]byte, error)
}

// Resolver maps free text to canonical instrument codes
// ⭐ SSOT: 종목 검색어 해석은 이 구조체에서만
type Resolver struct {
	futures FuturesSource
	stocks  StockSource
	logger  *logger.Logger
}

// NewResolver creates a resolver
func NewResolver(futures FuturesSource, stocks StockSource, log *logger.Logger) *Resolver {
	return &Resolver{futures: futures, stocks: stocks, logger: log}
}

// Resolve never fails: empty input and provider errors become a single placeholder
func (r *Resolver) Resolve(ctx context.Context, text string) []Result {
	if text == "" {
		return []Result{{Label: PromptLabel}}
	}

	if isFuturesQuery(text) {
		return r.resolveFutures(ctx, text)
	}
	return r.resolveStocks(ctx, text)
}

func isFuturesQuery(text string) bool {
	return text[0] >= 'A' && text[0] <= 'Z'
}

func (r *Resolver) resolveFutures(ctx context.Context, text string) []Result {
	blob, err := r.futures.FetchSuggest(ctx, text)
	if err != nil {
		r.logger.WithField("query", text).WithError(err).Error("Futures suggest failed")
		return []Result{{Label: FuturesFailedLabel}}
	}
	return parseFuturesBlob(blob)
}

// parseFuturesBlob reads `var suggestvalue="rec;rec;...";`, fields comma separated:
// code at 3, name at 4, exchange hint at 7
func parseFuturesBlob(blob string) []Result {
	results := []Result{}

	_, payload, ok := strings.Cut(strings.TrimSpace(blob), `="`)
	if !ok {
		return results
	}
	payload = strings.TrimSuffix(payload, ";")
	payload = strings.TrimSuffix(payload, `"`)
	if payload == "" {
		return results
	}

	for _, record := range strings.Split(payload, ";") {
		fields := strings.Split(record, ",")
		if len(fields) < 5 {
			continue
		}

		res := Result{Label: strings.ToUpper(strings.TrimSpace(fields[3])) + " | " + fields[4]}
		if len(fields) > 7 {
			res.Description = strings.ReplaceAll(fields[7], `"`, "")
		}
		results = append(results, res)
	}
	return results
}

var errInvalidSearchDocument = errors.New("invalid search document")

var (
	hkEquityCode = regexp.MustCompile(`^\d{5}$`)
	hkIndexCode  = regexp.MustCompile(`^HK[A-Z]`)
	usTickerCode = regexp.MustCompile(`\.?[A-Z]*[A-Z]$`)
)

func (r *Resolver) resolveStocks(ctx context.Context, text string) []Result {
	body, err := r.stocks.SearchStocks(ctx, text)
	if err == nil && !gjson.ValidBytes(body) {
		err = errInvalidSearchDocument
	}
	if err != nil {
		r.logger.WithField("query", text).WithError(err).Error("Stock search failed")
		return []Result{{Label: StockFailedLabel}}
	}

	results := []Result{}
	gjson.GetBytes(body, "stocks").ForEach(func(_, stock gjson.Result) bool {
		if res, ok := mapStock(stock.Get("code").String(), stock.Get("name").String()); ok {
			results = append(results, res)
		}
		return true
	})
	return results
}

// mapStock normalizes one search hit; codes of no known shape are dropped
func mapStock(code, name string) (Result, bool) {
	switch {
	case strings.HasPrefix(code, "SH"), strings.HasPrefix(code, "SZ"):
		return Result{Label: strings.ToLower(code) + " | " + name, Description: MainlandLabel}, true
	case hkEquityCode.MatchString(code):
		return Result{Label: "hk" + code + " | " + name, Description: HKLabel}, true
	case hkIndexCode.MatchString(code):
		return Result{Label: "hk" + code[2:] + " | " + name, Description: HKLabel}, true
	case usTickerCode.MatchString(code):
		return Result{Label: "us" + strings.Replace(strings.ToLower(code), ".", "", 1) + " | " + name, Description: USLabel}, true
	default:
		return Result{}, false
	}
}
