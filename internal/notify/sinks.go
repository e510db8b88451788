package notify

import (
	"context"

	"github.com/wonny/quotehub/pkg/logger"
)

// LogNotifier writes user notifications to the log
type LogNotifier struct {
	logger *logger.Logger
}

// NewLogNotifier creates a log-backed notifier
func NewLogNotifier(log *logger.Logger) *LogNotifier {
	return &LogNotifier{logger: log}
}

// Notify implements Notifier
func (n *LogNotifier) Notify(_ context.Context, message string) {
	n.logger.WithField("message", message).Warn("Notice")
}

// LogTelemetry writes telemetry events to the log
type LogTelemetry struct {
	logger *logger.Logger
}

// NewLogTelemetry creates a log-backed telemetry sink
func NewLogTelemetry(log *logger.Logger) *LogTelemetry {
	return &LogTelemetry{logger: log}
}

// SendEvent implements Telemetry
func (t *LogTelemetry) SendEvent(_ context.Context, name string, props map[string]interface{}) {
	t.logger.WithFields(props).WithField("event", name).Error("Telemetry event")
}

// Fanout sends each notification to every notifier
type Fanout []Notifier

// Notify implements Notifier
func (f Fanout) Notify(ctx context.Context, message string) {
	for _, n := range f {
		n.Notify(ctx, message)
	}
}
