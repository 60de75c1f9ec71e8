// Package metrics aggregates classified failures into per-kind counters
// and escalates repeated failures once they cross severity thresholds.
package metrics

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vietddude/triage/internal/core/domain"
)

// Recorder records classified failures and exposes counter snapshots.
// Implementations: Aggregator (in-memory, per instance) and the Redis
// counters in internal/infra/redis (shared across instances).
type Recorder interface {
	Record(ctx context.Context, c domain.Classification, ectx *domain.ErrorContext) error
	Snapshot(ctx context.Context) (Snapshot, error)
	Reset(ctx context.Context) error
}

// Snapshot is a consistent view of the error counters.
type Snapshot struct {
	Counts    map[string]uint64 `json:"counts"`
	LastReset time.Time         `json:"last_reset"`
}

// alertThresholds maps severity to the repeat count that triggers an
// escalation. Critical escalates on every occurrence; low-severity noise
// is summarized every 100 occurrences.
var alertThresholds = map[domain.Severity]uint64{
	domain.SeverityCritical: 1,
	domain.SeverityHigh:     5,
	domain.SeverityMedium:   20,
	domain.SeverityLow:      100,
}

// Threshold returns the escalation threshold for a severity.
func Threshold(s domain.Severity) uint64 {
	if t, ok := alertThresholds[s]; ok {
		return t
	}
	return alertThresholds[domain.SeverityMedium]
}

// Escalate emits the repeated-failure signal when the post-increment
// count is a positive multiple of the severity threshold. The modulo
// check means counters starting from a nonzero offset can skip a
// multiple; clustered deployments wanting exact global thresholds should
// use the shared Redis counters.
func Escalate(log *slog.Logger, c domain.Classification, ectx *domain.ErrorContext, count uint64) {
	threshold := Threshold(c.Severity)
	if count == 0 || count%threshold != 0 {
		return
	}

	EscalationsTotal.WithLabelValues(string(c.Category), c.Severity.String()).Inc()

	attrs := []any{
		"event_id", uuid.NewString(),
		"category", string(c.Category),
		"code", c.ErrorCode,
		"severity", c.Severity.String(),
		"count", count,
		"threshold", threshold,
	}
	if ectx != nil && ectx.Operation != "" {
		attrs = append(attrs, "operation", ectx.Operation)
	}
	log.Error("Repeated failure threshold reached", attrs...)
}

// Aggregator owns an in-memory counter map keyed category:errorCode.
// Construct one per service instance and pass it to call sites; there is
// no process-global state.
type Aggregator struct {
	mu        sync.Mutex
	counts    map[string]uint64
	lastReset time.Time
	log       *slog.Logger
}

// NewAggregator creates an empty Aggregator logging escalations to log.
func NewAggregator(log *slog.Logger) *Aggregator {
	if log == nil {
		log = slog.Default()
	}
	return &Aggregator{
		counts:    make(map[string]uint64),
		lastReset: time.Now(),
		log:       log,
	}
}

// Record increments the counter for the classification's metric key and
// escalates when the new count crosses a severity threshold multiple.
// Safe for concurrent use; increments are never lost.
func (a *Aggregator) Record(_ context.Context, c domain.Classification, ectx *domain.ErrorContext) error {
	key := c.MetricKey()

	a.mu.Lock()
	a.counts[key]++
	count := a.counts[key]
	a.mu.Unlock()

	ErrorsTotal.WithLabelValues(string(c.Category), c.ErrorCode, c.Severity.String()).Inc()
	Escalate(a.log, c, ectx, count)
	return nil
}

// Snapshot returns a copy of the counters and the last reset time.
func (a *Aggregator) Snapshot(_ context.Context) (Snapshot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	counts := make(map[string]uint64, len(a.counts))
	for k, v := range a.counts {
		counts[k] = v
	}
	return Snapshot{Counts: counts, LastReset: a.lastReset}, nil
}

// Reset atomically replaces the counter map and stamps a new reset time.
// In-flight increments land either before or after the swap.
func (a *Aggregator) Reset(_ context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.counts = make(map[string]uint64)
	a.lastReset = time.Now()
	return nil
}
