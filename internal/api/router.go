package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/wonny/quotehub/internal/api/handlers"
	"github.com/wonny/quotehub/pkg/logger"
)

// Routes are the handlers the router wires up
type Routes struct {
	Quotes  *handlers.QuoteHandler
	Suggest *handlers.SuggestHandler
	Jobs    *handlers.JobsHandler
	Stream  http.Handler // websocket endpoint
}

// NewRouter creates and configures the HTTP router
// ⭐ SSOT: 라우팅 설정은 이 함수에서만
func NewRouter(routes Routes, log *logger.Logger) http.Handler {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	// Subscribers
	if routes.Stream != nil {
		r.Handle("/ws", routes.Stream).Methods("GET")
	}

	api := r.PathPrefix("/api").Subrouter()

	// Quote endpoints
	api.HandleFunc("/quotes", routes.Quotes.GetQuotes).Methods("GET")
	api.HandleFunc("/quotes/latest", routes.Quotes.GetLatest).Methods("GET")
	api.HandleFunc("/counters", routes.Quotes.GetCounters).Methods("GET")

	// Search
	api.HandleFunc("/suggest", routes.Suggest.GetSuggestions).Methods("GET")

	// Scheduler
	if routes.Jobs != nil {
		api.HandleFunc("/jobs", routes.Jobs.GetJobs).Methods("GET")
		api.HandleFunc("/jobs/{name}/history", routes.Jobs.GetJobHistory).Methods("GET")
		api.HandleFunc("/jobs/{name}/run", routes.Jobs.RunJob).Methods("POST")
	}

	// Apply middleware
	r.Use(recoveryMiddleware(log))
	api.Use(loggingMiddleware(log))

	return r
}

// healthCheckHandler returns server health status
func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "ok",
		"service": "quotehub",
	})
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			next.ServeHTTP(w, r)

			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start),
			}).Debug("HTTP request")
		})
	}
}

// recoveryMiddleware recovers from panics
func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					log.WithFields(map[string]interface{}{
						"error": err,
						"path":  r.URL.Path,
					}).Error("Panic recovered")

					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					json.NewEncoder(w).Encode(map[string]string{
						"error": "Internal server error",
					})
				}
			}()

			next.ServeHTTP(w, r)
		})
	}
}
