package redis

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/vietddude/triage/internal/core/domain"
	"github.com/vietddude/triage/internal/metrics"
)

// Key helpers
const (
	countsKey    = "triage:error_counts"
	lastResetKey = "triage:last_reset"
)

// Counters implements metrics.Recorder on a shared Redis hash. The
// post-increment value returned by HIncrBy drives the same modulo
// escalation check as the in-memory aggregator, so thresholds hold for
// the cluster-wide count.
type Counters struct {
	rdb *redis.Client
	log *slog.Logger
}

// NewCounters creates a Redis-backed recorder.
func NewCounters(client *Client, log *slog.Logger) *Counters {
	if log == nil {
		log = slog.Default()
	}
	return &Counters{rdb: client.rdb, log: log}
}

// Record increments the shared counter for the classification's metric
// key and escalates on threshold multiples of the global count.
func (c *Counters) Record(ctx context.Context, cl domain.Classification, ectx *domain.ErrorContext) error {
	count, err := c.rdb.HIncrBy(ctx, countsKey, cl.MetricKey(), 1).Result()
	if err != nil {
		return fmt.Errorf("hincrby failed: %w", err)
	}

	metrics.ErrorsTotal.WithLabelValues(string(cl.Category), cl.ErrorCode, cl.Severity.String()).Inc()
	metrics.Escalate(c.log, cl, ectx, uint64(count))
	return nil
}

// Snapshot returns the shared counters and the last reset time.
func (c *Counters) Snapshot(ctx context.Context) (metrics.Snapshot, error) {
	raw, err := c.rdb.HGetAll(ctx, countsKey).Result()
	if err != nil {
		return metrics.Snapshot{}, fmt.Errorf("hgetall failed: %w", err)
	}

	counts := make(map[string]uint64, len(raw))
	for key, val := range raw {
		n, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			continue
		}
		counts[key] = n
	}

	snap := metrics.Snapshot{Counts: counts}

	val, err := c.rdb.Get(ctx, lastResetKey).Result()
	if err == redis.Nil {
		return snap, nil
	}
	if err != nil {
		return metrics.Snapshot{}, fmt.Errorf("get last reset failed: %w", err)
	}
	if ts, err := time.Parse(time.RFC3339Nano, val); err == nil {
		snap.LastReset = ts
	}
	return snap, nil
}

// Reset clears the shared counters and stamps a new reset time.
func (c *Counters) Reset(ctx context.Context) error {
	pipe := c.rdb.TxPipeline()
	pipe.Del(ctx, countsKey)
	pipe.Set(ctx, lastResetKey, time.Now().Format(time.RFC3339Nano), 0)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}
	return nil
}
