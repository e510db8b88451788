package commands

import (
	"context"
	"fmt"

	"github.com/wonny/quotehub/internal/external/sina"
	"github.com/wonny/quotehub/internal/external/xueqiu"
	"github.com/wonny/quotehub/internal/notify"
	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/internal/suggest"
	"github.com/wonny/quotehub/pkg/config"
	"github.com/wonny/quotehub/pkg/httputil"
	"github.com/wonny/quotehub/pkg/logger"
	"github.com/wonny/quotehub/pkg/redis"
)

// app holds the wired pipeline shared by every command
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	redis     *redis.Client
	cache     *redis.Cache
	policy    *notify.OncePolicy
	publisher *quote.Publisher
	service   *quote.Service
	resolver  *suggest.Resolver
}

// buildApp wires clients, pipeline and resolver. notifiers receive user notices
// in addition to the log.
func buildApp(ctx context.Context, cfg *config.Config, log *logger.Logger, notifiers ...notify.Notifier) (*app, error) {
	rdb, err := redis.New(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	httpClient := httputil.New(cfg, log)
	limiter := redis.NewRateLimiter(rdb, "quotehub")

	sinaClient := sina.NewClient(httpClient.WithRateLimiter(limiter, redis.SinaRateLimit), cfg.Sina, log)
	xueqiuClient := xueqiu.NewClient(httpClient.WithRateLimiter(limiter, redis.XueqiuRateLimit), cfg.Xueqiu, log)

	policy := notify.NewOncePolicy()
	alerter := notify.NewAlerter(
		policy,
		append(notify.Fanout{notify.NewLogNotifier(log)}, notifiers...),
		notify.NewLogTelemetry(log),
		log,
	)

	publisher := quote.NewPublisher(log)
	service := quote.NewService(sinaClient, xueqiuClient, alerter, publisher, cfg.Quote.FetchConcurrency, log)

	return &app{
		cfg:       cfg,
		log:       log,
		redis:     rdb,
		cache:     redis.NewCache(rdb, "quotehub"),
		policy:    policy,
		publisher: publisher,
		service:   service,
		resolver:  suggest.NewResolver(sinaClient, xueqiuClient, log),
	}, nil
}

func (a *app) Close() {
	if err := a.redis.Close(); err != nil {
		a.log.WithError(err).Warn("Failed to close redis")
	}
}
