package jobs

import (
	"context"

	"github.com/wonny/quotehub/internal/quote"
	"github.com/wonny/quotehub/pkg/logger"
)

// Poller is the quote pipeline the poll job drives
type Poller interface {
	FetchQuotes(ctx context.Context, codes []string, order int) []quote.Snapshot
}

// QuotePollJob refreshes the watch list on a schedule
type QuotePollJob struct {
	poller   Poller
	codes    []string
	order    int
	schedule string
	logger   *logger.Logger
}

// NewQuotePollJob creates a new poll job
func NewQuotePollJob(poller Poller, codes []string, order int, schedule string, log *logger.Logger) *QuotePollJob {
	return &QuotePollJob{
		poller:   poller,
		codes:    codes,
		order:    order,
		schedule: schedule,
		logger:   log,
	}
}

// Name returns the job name
func (j *QuotePollJob) Name() string {
	return "quote_poll"
}

// Schedule returns the cron schedule
func (j *QuotePollJob) Schedule() string {
	return j.schedule
}

// Run polls once. Provider failures are handled inside the pipeline.
func (j *QuotePollJob) Run(ctx context.Context) error {
	list := j.poller.FetchQuotes(ctx, j.codes, j.order)

	j.logger.WithFields(map[string]interface{}{
		"codes":     len(j.codes),
		"snapshots": len(list),
	}).Debug("Quote poll completed")
	return nil
}
