package quote

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/quotehub/pkg/logger"
)

//go:generate mockgen -package=quote_test -destination=mock_feeds_test.go -source=service.go LegacyFeed,JSONFeed,Alerts

// LegacyFeed fetches one batched legacy-feed response, already decoded to text
type LegacyFeed interface {
	FetchQuotes(ctx context.Context, codes []string) (string, error)
	QuoteURL(codes []string) string
}

// JSONFeed fetches one batched Hong Kong JSON-feed document
type JSONFeed interface {
	FetchBatchQuote(ctx context.Context, symbols []string) ([]byte, error)
	QuoteURL(symbols []string) string
}

// Alerts receives pipeline errors; implementations decide what reaches the user
type Alerts interface {
	TransportFailure(ctx context.Context, source, url string, err error)
	InvalidCode(ctx context.Context, code string)
	HKRequestError(ctx context.Context, code, errorCode, description string)
}

// Feed source names used in alerts and logs
const (
	SourceLegacy = "sina"
	SourceJSON   = "xueqiu"
)

// feedResult is what one feed contributed to a poll
type feedResult struct {
	snapshots []Snapshot
	counters  Counters
	attempted bool
	failed    bool // the batch request itself failed; nothing came back
}

// Service runs the poll pipeline: classify, fetch both feeds, merge, sort, publish
// ⭐ SSOT: 시세 조회 파이프라인은 이 서비스에서만
type Service struct {
	legacy      LegacyFeed
	hk          JSONFeed
	alerts      Alerts
	publisher   *Publisher
	concurrency int
	logger      *logger.Logger

	pollMu sync.Mutex // one publishing poll at a time
}

// NewService creates a quote service. concurrency bounds the per-code retry fan-out.
func NewService(legacy LegacyFeed, hk JSONFeed, alerts Alerts, publisher *Publisher, concurrency int, log *logger.Logger) *Service {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Service{
		legacy:      legacy,
		hk:          hk,
		alerts:      alerts,
		publisher:   publisher,
		concurrency: concurrency,
		logger:      log,
	}
}

// FetchQuotes polls both feeds for codes and publishes the merged, sorted list.
// It never fails: provider errors degrade to placeholders or partial lists.
// When every attempted feed failed outright the previous list is returned and nothing is published.
func (s *Service) FetchQuotes(ctx context.Context, codes []string, order int) []Snapshot {
	list, _ := s.Poll(ctx, codes, order)
	return list
}

// Poll is FetchQuotes returning the counters that belong to the returned list.
// Polls are serialized: a poll waits for the previous one to publish before it fetches.
func (s *Service) Poll(ctx context.Context, codes []string, order int) ([]Snapshot, Counters) {
	s.pollMu.Lock()
	defer s.pollMu.Unlock()

	list, counters, ok := s.collect(ctx, codes, order)
	if !ok {
		return list, counters
	}
	if list == nil {
		s.logger.WithField("codes", len(codes)).Warn("Every quote feed failed, keeping previous list")
		return s.publisher.Current(), s.publisher.Counters()
	}

	s.publisher.Publish(list, counters)
	return list, counters
}

// Lookup fetches codes without touching the published list.
// Used for ad-hoc code lists so they never replace the watch list.
func (s *Service) Lookup(ctx context.Context, codes []string, order int) ([]Snapshot, Counters) {
	list, counters, _ := s.collect(ctx, codes, order)
	if list == nil {
		return []Snapshot{}, Counters{}
	}
	return list, counters
}

// collect runs one fetch without publishing.
// ok is false for an empty partition; a nil list means every attempted feed failed.
func (s *Service) collect(ctx context.Context, codes []string, order int) ([]Snapshot, Counters, bool) {
	part := Classify(codes)
	if part.Empty() {
		return []Snapshot{}, Counters{}, false
	}

	var legacy, hk feedResult
	var g errgroup.Group
	if len(part.Legacy) > 0 {
		g.Go(func() error {
			legacy = s.pollLegacy(ctx, part.Legacy)
			return nil
		})
	}
	if len(part.JSON) > 0 {
		g.Go(func() error {
			hk = s.pollJSON(ctx, part.JSON)
			return nil
		})
	}
	_ = g.Wait()

	if allFailed(legacy, hk) {
		return nil, Counters{}, true
	}

	merged := make([]Snapshot, 0, len(legacy.snapshots)+len(hk.snapshots))
	merged = append(merged, legacy.snapshots...)
	merged = append(merged, hk.snapshots...)

	return SortSnapshots(merged, order), legacy.counters.Add(hk.counters), true
}

func allFailed(results ...feedResult) bool {
	attempted := false
	for _, r := range results {
		if !r.attempted {
			continue
		}
		attempted = true
		if !r.failed {
			return false
		}
	}
	return attempted
}

// pollLegacy fetches the legacy batch, isolating bad codes on a batch failure
func (s *Service) pollLegacy(ctx context.Context, codes []string) feedResult {
	res := feedResult{attempted: true}

	snapshots, counters, err := s.fetchLegacy(ctx, codes)
	switch {
	case err == nil:
		res.snapshots, res.counters = snapshots, counters
	case errors.Is(err, ErrBatchFailed) && len(codes) == 1:
		s.alerts.InvalidCode(ctx, codes[0])
		res.snapshots = []Snapshot{FailedSnapshot(LegacyCanonical(codes[0]))}
	case errors.Is(err, ErrBatchFailed):
		res.snapshots, res.counters = s.isolate(ctx, codes, s.legacySingle)
	default:
		s.alerts.TransportFailure(ctx, SourceLegacy, s.legacy.QuoteURL(codes), err)
		res.failed = true
	}
	return res
}

func (s *Service) fetchLegacy(ctx context.Context, codes []string) ([]Snapshot, Counters, error) {
	body, err := s.legacy.FetchQuotes(ctx, codes)
	if err != nil {
		return nil, Counters{}, err
	}
	return ParseLegacy(body, s.logger)
}

// legacySingle polls one code on its own
func (s *Service) legacySingle(ctx context.Context, code string) ([]Snapshot, Counters) {
	snapshots, counters, err := s.fetchLegacy(ctx, []string{code})
	switch {
	case err == nil:
		return snapshots, counters
	case errors.Is(err, ErrBatchFailed):
		s.alerts.InvalidCode(ctx, code)
		return []Snapshot{FailedSnapshot(LegacyCanonical(code))}, Counters{}
	default:
		s.alerts.TransportFailure(ctx, SourceLegacy, s.legacy.QuoteURL([]string{code}), err)
		return nil, Counters{}
	}
}

// pollJSON fetches the Hong Kong batch, isolating bad symbols on a batch failure
func (s *Service) pollJSON(ctx context.Context, symbols []string) feedResult {
	res := feedResult{attempted: true}

	snapshots, counters, err := s.fetchJSON(ctx, symbols)
	var batchErr *HKBatchError
	switch {
	case err == nil:
		res.snapshots, res.counters = snapshots, counters
	case errors.As(err, &batchErr) && len(symbols) == 1:
		s.alerts.HKRequestError(ctx, symbols[0], batchErr.Code, batchErr.Description)
		res.snapshots = []Snapshot{FailedSnapshot(HKCanonical(symbols[0]))}
	case errors.As(err, &batchErr):
		res.snapshots, res.counters = s.isolate(ctx, symbols, s.jsonSingle)
	default:
		s.alerts.TransportFailure(ctx, SourceJSON, s.hk.QuoteURL(symbols), err)
		res.failed = true
	}
	return res
}

func (s *Service) fetchJSON(ctx context.Context, symbols []string) ([]Snapshot, Counters, error) {
	body, err := s.hk.FetchBatchQuote(ctx, symbols)
	if err != nil {
		return nil, Counters{}, err
	}
	snapshots, counters, err := ParseHKQuotes(body)
	if err != nil && !errors.Is(err, ErrBatchFailed) {
		return nil, Counters{}, fmt.Errorf("parse hk quotes: %w", err)
	}
	return snapshots, counters, err
}

// jsonSingle polls one symbol on its own
func (s *Service) jsonSingle(ctx context.Context, symbol string) ([]Snapshot, Counters) {
	snapshots, counters, err := s.fetchJSON(ctx, []string{symbol})
	var batchErr *HKBatchError
	switch {
	case err == nil:
		return snapshots, counters
	case errors.As(err, &batchErr):
		s.alerts.HKRequestError(ctx, symbol, batchErr.Code, batchErr.Description)
		return []Snapshot{FailedSnapshot(HKCanonical(symbol))}, Counters{}
	default:
		s.alerts.TransportFailure(ctx, SourceJSON, s.hk.QuoteURL([]string{symbol}), err)
		return nil, Counters{}
	}
}

// isolate re-requests each code alone, at most s.concurrency at a time.
// Results keep the input order.
func (s *Service) isolate(ctx context.Context, codes []string, single func(context.Context, string) ([]Snapshot, Counters)) ([]Snapshot, Counters) {
	s.logger.WithField("codes", len(codes)).Debug("Batch rejected, retrying codes one by one")

	perCode := make([][]Snapshot, len(codes))
	perCounters := make([]Counters, len(codes))

	var g errgroup.Group
	g.SetLimit(s.concurrency)
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			perCode[i], perCounters[i] = single(ctx, code)
			return nil
		})
	}
	_ = g.Wait()

	var out []Snapshot
	var counters Counters
	for i := range codes {
		out = append(out, perCode[i]...)
		counters = counters.Add(perCounters[i])
	}
	return out, counters
}
