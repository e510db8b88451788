package jobs

import (
	"context"

	"github.com/wonny/quotehub/internal/notify"
	"github.com/wonny/quotehub/pkg/logger"
)

// NotifyResetJob re-arms the notify-once policy so a long-running server
// surfaces each error class again once per day
type NotifyResetJob struct {
	policy *notify.OncePolicy
	logger *logger.Logger
}

// NewNotifyResetJob creates a new reset job
func NewNotifyResetJob(policy *notify.OncePolicy, log *logger.Logger) *NotifyResetJob {
	return &NotifyResetJob{policy: policy, logger: log}
}

// Name returns the job name
func (j *NotifyResetJob) Name() string {
	return "notify_reset"
}

// Schedule returns the cron schedule (daily at midnight)
func (j *NotifyResetJob) Schedule() string {
	return "0 0 0 * * *"
}

// Run re-arms every class
func (j *NotifyResetJob) Run(ctx context.Context) error {
	j.policy.Reset()
	j.logger.Info("Notification policy reset")
	return nil
}
