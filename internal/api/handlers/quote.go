package handlers

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/pkg/logger"
)

// QuoteFetcher runs a publishing poll or an ad-hoc lookup
type QuoteFetcher interface {
	Poll(ctx context.Context, codes []string, order int) ([]quote.Snapshot, quote.Counters)
	Lookup(ctx context.Context, codes []string, order int) ([]quote.Snapshot, quote.Counters)
}

// QuoteState exposes the last published list
type QuoteState interface {
	Current() []quote.Snapshot
	Counters() quote.Counters
}

// QuoteHandler handles quote API endpoints
// ⭐ SSOT: 시세 API 핸들러는 이 구조체에서만
type QuoteHandler struct {
	fetcher      QuoteFetcher
	state        QuoteState
	defaultCodes []string
	defaultOrder int
	logger       *logger.Logger
}

// NewQuoteHandler creates a new quote handler
func NewQuoteHandler(fetcher QuoteFetcher, state QuoteState, defaultCodes []string, defaultOrder int, log *logger.Logger) *QuoteHandler {
	return &QuoteHandler{
		fetcher:      fetcher,
		state:        state,
		defaultCodes: defaultCodes,
		defaultOrder: defaultOrder,
		logger:       log,
	}
}

// QuotesResponse is a quote list with its counters
type QuotesResponse struct {
	Quotes   []quote.Snapshot `json:"quotes"`
	Counters quote.Counters   `json:"counters"`
}

// GetQuotes polls now. Without codes the watch list is polled and published;
// an explicit code list is a lookup that leaves the published list alone.
// GET /api/quotes?codes=sh000001,hk00700&order=-1
func (h *QuoteHandler) GetQuotes(w http.ResponseWriter, r *http.Request) {
	var codes []string
	if raw := r.URL.Query().Get("codes"); raw != "" {
		codes = strings.Split(raw, ",")
	}

	order := h.defaultOrder
	if raw := r.URL.Query().Get("order"); raw != "" {
		o, err := strconv.Atoi(raw)
		if err != nil || o < quote.OrderDescending || o > quote.OrderAscending {
			respondError(w, http.StatusBadRequest, "order must be -1, 0 or 1")
			return
		}
		order = o
	}

	var (
		list     []quote.Snapshot
		counters quote.Counters
	)
	if codes == nil {
		list, counters = h.fetcher.Poll(r.Context(), h.defaultCodes, order)
	} else {
		list, counters = h.fetcher.Lookup(r.Context(), codes, order)
	}
	if list == nil {
		list = []quote.Snapshot{}
	}
	respondJSON(w, http.StatusOK, QuotesResponse{Quotes: list, Counters: counters})
}

// GetLatest returns the last published list without polling
// GET /api/quotes/latest
func (h *QuoteHandler) GetLatest(w http.ResponseWriter, r *http.Request) {
	list := h.state.Current()
	if list == nil {
		list = []quote.Snapshot{}
	}
	respondJSON(w, http.StatusOK, QuotesResponse{Quotes: list, Counters: h.state.Counters()})
}

// GetCounters returns the per-market counters of the last poll
// GET /api/counters
func (h *QuoteHandler) GetCounters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.state.Counters())
}
