package quote

import (
	"sync"

	"github.com/wonny/quotehub/pkg/logger"
)

// ListUpdate is the "list updated" event: both lists are complete snapshots.
// Consumers diff themselves.
type ListUpdate struct {
	New      []Snapshot `json:"new"`
	Old      []Snapshot `json:"old"`
	Counters Counters   `json:"counters"`
}

// Listener receives every published ListUpdate
type Listener func(ListUpdate)

// Publisher holds the current list and counters and fans out updates
// ⭐ SSOT: 현재 시세 목록과 카운터는 이 구조체에서만 교체
type Publisher struct {
	mu        sync.RWMutex
	current   []Snapshot
	counters  Counters
	listeners []Listener
	logger    *logger.Logger
}

// NewPublisher creates an empty publisher
func NewPublisher(log *logger.Logger) *Publisher {
	return &Publisher{logger: log}
}

// Subscribe registers a listener; listeners run synchronously in registration order
func (p *Publisher) Subscribe(l Listener) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.listeners = append(p.listeners, l)
}

// Seed installs an initial list without emitting an event (warm start from cache)
func (p *Publisher) Seed(list []Snapshot, counters Counters) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = list
	p.counters = counters
}

// Publish replaces the current list and overwrites the counters, then emits one event.
// The swap happens under the lock; listeners see both lists after it completes.
func (p *Publisher) Publish(list []Snapshot, counters Counters) ListUpdate {
	p.mu.Lock()
	update := ListUpdate{New: list, Old: p.current, Counters: counters}
	p.current = list
	p.counters = counters
	listeners := make([]Listener, len(p.listeners))
	copy(listeners, p.listeners)
	p.mu.Unlock()

	p.logger.WithFields(map[string]interface{}{
		"new":      len(update.New),
		"old":      len(update.Old),
		"mainland": counters.Mainland,
		"us":       counters.US,
		"hk":       counters.HK,
		"futures":  counters.Futures,
		"nodata":   counters.NoData,
		"total":    counters.Total(),
	}).Debug("Published quote list")

	for _, l := range listeners {
		l(update)
	}
	return update
}

// Current returns the last published list
func (p *Publisher) Current() []Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.current
}

// Counters returns the last published counters
func (p *Publisher) Counters() Counters {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.counters
}
