package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/quotehub/internal/api"
	"github.com/wonny/quotehub/internal/api/handlers"
	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/internal/realtime"
	"github.com/wonny/quotehub/internal/scheduler"
	"github.com/wonny/quotehub/internal/scheduler/jobs"
	"github.com/wonny/quotehub/pkg/logger"
)

// serveCmd runs the API, the websocket hub and the poll job
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "API 서버 + 주기 폴링 시작",
	Long: `Starts the HTTP API, the websocket hub and the scheduled poll of the
QUOTE_CODES watch list.

Endpoints:
  GET  /health               - Health check
  GET  /api/quotes           - Poll now (?codes=a,b&order=N)
  GET  /api/quotes/latest    - Last published list
  GET  /api/counters         - Per-market counters
  GET  /api/suggest?q=       - Code search
  GET  /api/jobs             - Scheduler stats
  POST /api/jobs/{name}/run  - Run a job now
  GET  /ws                   - List updates and notices

Example:
  go run ./cmd/quotehub serve --port 8080`,
	RunE: runServe,
}

var servePort string

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&servePort, "port", "", "API 서버 포트 (default PORT)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort != "" {
		cfg.Port = servePort
	}

	log := logger.New(cfg)
	log.WithFields(map[string]interface{}{
		"port":  cfg.Port,
		"env":   cfg.Env,
		"codes": len(cfg.Quote.Codes),
	}).Info("Initializing quotehub")

	ctx := context.Background()

	// 1. Subscribers
	hub := realtime.NewHub(log)
	defer hub.Close()

	// 2. Pipeline
	a, err := buildApp(ctx, cfg, log, hub)
	if err != nil {
		return err
	}
	defer a.Close()

	if warmed, err := quote.WarmFromCache(ctx, a.cache, a.publisher); err != nil {
		log.WithError(err).Warn("Failed to read cached quote list")
	} else if warmed {
		log.Infof("Warmed %d quotes from cache", len(a.publisher.Current()))
	}

	a.publisher.Subscribe(hub.OnListUpdate)
	if a.redis.Enabled() {
		a.publisher.Subscribe(quote.CacheListener(a.cache, cfg.HTTPTimeout, log))
	}

	// 3. Scheduler
	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewQuotePollJob(a.service, cfg.Quote.Codes, cfg.Quote.SortOrder, cfg.Quote.PollSchedule, log)); err != nil {
		return fmt.Errorf("add poll job: %w", err)
	}
	if err := sched.AddJob(jobs.NewNotifyResetJob(a.policy, log)); err != nil {
		return fmt.Errorf("add reset job: %w", err)
	}
	sched.Start()
	defer sched.Stop()
	log.WithField("jobs", sched.GetAllJobs()).Info("Scheduler started")

	// 4. API
	router := api.NewRouter(api.Routes{
		Quotes:  handlers.NewQuoteHandler(a.service, a.publisher, cfg.Quote.Codes, cfg.Quote.SortOrder, log),
		Suggest: handlers.NewSuggestHandler(a.resolver),
		Jobs:    handlers.NewJobsHandler(sched, log),
		Stream:  hub,
	}, log)
	server := api.New(cfg, log, router)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	PrintSuccess(fmt.Sprintf("Server running on http://localhost:%s", cfg.Port))
	PrintInfo("Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
