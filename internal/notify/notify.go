package notify

import (
	"context"
	"fmt"
	"sync"

	"github.com/wonny/quotehub/pkg/logger"
)

//go:generate mockgen -package=notify_test -destination=mock_sinks_test.go -source=notify.go Notifier,Telemetry

// Notifier shows a message to the user
type Notifier interface {
	Notify(ctx context.Context, message string)
}

// Telemetry records an error event
type Telemetry interface {
	SendEvent(ctx context.Context, name string, props map[string]interface{})
}

// Class groups errors that share one notification budget
type Class string

const (
	// ClassTransport covers transport and parse failures of a whole feed
	ClassTransport Class = "stockService"
	// ClassInvalidCode covers single-code batches the provider rejected
	ClassInvalidCode Class = "invalidCode"
	// ClassHKRequest covers single-code JSON-feed batches with an error code
	ClassHKRequest Class = "hkRequest"
)

// TelemetryEvent is the event name sent for transport failures
const TelemetryEvent = "error: stockService"

// OncePolicy lets each class through once until reset
type OncePolicy struct {
	mu    sync.Mutex
	fired map[Class]bool
}

// NewOncePolicy creates a policy with every class armed
func NewOncePolicy() *OncePolicy {
	return &OncePolicy{fired: make(map[Class]bool)}
}

// Allow reports whether class may notify, and disarms it
func (p *OncePolicy) Allow(class Class) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fired[class] {
		return false
	}
	p.fired[class] = true
	return true
}

// Reset re-arms the given classes, or all of them when none are given
func (p *OncePolicy) Reset(classes ...Class) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(classes) == 0 {
		p.fired = make(map[Class]bool)
		return
	}
	for _, c := range classes {
		delete(p.fired, c)
	}
}

// Alerter routes pipeline errors to the sinks under the once policy.
// Every error is logged; only the first of each class reaches the user.
type Alerter struct {
	policy    *OncePolicy
	notifier  Notifier
	telemetry Telemetry
	logger    *logger.Logger
}

// NewAlerter creates an alerter
func NewAlerter(policy *OncePolicy, notifier Notifier, telemetry Telemetry, log *logger.Logger) *Alerter {
	return &Alerter{
		policy:    policy,
		notifier:  notifier,
		telemetry: telemetry,
		logger:    log,
	}
}

// Policy returns the policy, for resets
func (a *Alerter) Policy() *OncePolicy {
	return a.policy
}

// TransportFailure reports a failed feed request
func (a *Alerter) TransportFailure(ctx context.Context, source, url string, err error) {
	a.logger.WithFields(map[string]interface{}{
		"source": source,
		"url":    url,
	}).WithError(err).Error("Quote feed request failed")

	if !a.policy.Allow(ClassTransport) {
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("fail: %s error %s", source, url))
	a.telemetry.SendEvent(ctx, TelemetryEvent, map[string]interface{}{
		"source": source,
		"url":    url,
		"error":  err.Error(),
	})
}

// InvalidCode reports a code the legacy feed rejected
func (a *Alerter) InvalidCode(ctx context.Context, code string) {
	a.logger.WithField("code", code).Warn("Provider rejected code")

	if !a.policy.Allow(ClassInvalidCode) {
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("fail: error Stock code in %s, please delete error Stock code.", code))
}

// HKRequestError reports a single-code JSON-feed batch error
func (a *Alerter) HKRequestError(ctx context.Context, code, errorCode, description string) {
	a.logger.WithFields(map[string]interface{}{
		"code":        code,
		"error_code":  errorCode,
		"description": description,
	}).Warn("HK quote request rejected")

	if !a.policy.Allow(ClassHKRequest) {
		return
	}
	a.notifier.Notify(ctx, fmt.Sprintf("fail: a HK Stock request error has occured.(%s, %s)", errorCode, description))
}
