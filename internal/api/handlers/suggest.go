package handlers

import (
	"context"
	"net/http"

	"github.com/wonny/quotehub/internal/suggest"
)

// SuggestionResolver maps free text to instrument codes
type SuggestionResolver interface {
	Resolve(ctx context.Context, text string) []suggest.Result
}

// SuggestHandler handles search suggestions
type SuggestHandler struct {
	resolver SuggestionResolver
}

// NewSuggestHandler creates a new suggest handler
func NewSuggestHandler(resolver SuggestionResolver) *SuggestHandler {
	return &SuggestHandler{resolver: resolver}
}

// GetSuggestions resolves the query; failures come back as a placeholder, not an error status
// GET /api/suggest?q=腾讯
func (h *SuggestHandler) GetSuggestions(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.resolver.Resolve(r.Context(), r.URL.Query().Get("q")))
}
