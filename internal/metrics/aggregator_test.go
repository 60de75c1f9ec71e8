package metrics

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/vietddude/triage/internal/core/domain"
)

// captureHandler collects records so escalation logging can be asserted.
type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) escalations() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, r := range h.records {
		if strings.Contains(r.Message, "threshold reached") {
			n++
		}
	}
	return n
}

func testClassification(severity domain.Severity, code string) domain.Classification {
	return domain.Classification{
		Category:  domain.CategoryNetwork,
		Severity:  severity,
		ErrorCode: code,
	}
}

func TestRecordMonotonic(t *testing.T) {
	a := NewAggregator(slog.New(&captureHandler{}))
	c := testClassification(domain.SeverityLow, "NETWORK_ERROR")
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		if err := a.Record(ctx, c, nil); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	snap, err := a.Snapshot(ctx)
	if err != nil {
		t.Fatalf("Snapshot failed: %v", err)
	}
	if got := snap.Counts["network:NETWORK_ERROR"]; got != 7 {
		t.Errorf("count = %d, want 7", got)
	}
}

func TestReset(t *testing.T) {
	a := NewAggregator(slog.New(&captureHandler{}))
	c := testClassification(domain.SeverityLow, "NETWORK_ERROR")
	ctx := context.Background()

	_ = a.Record(ctx, c, nil)
	before, _ := a.Snapshot(ctx)

	if err := a.Reset(ctx); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}

	after, _ := a.Snapshot(ctx)
	if len(after.Counts) != 0 {
		t.Errorf("counts after reset = %v, want empty", after.Counts)
	}
	if after.LastReset.Before(before.LastReset) {
		t.Errorf("lastReset went backwards: %v < %v", after.LastReset, before.LastReset)
	}
}

func TestEscalationThresholds(t *testing.T) {
	tests := []struct {
		name        string
		severity    domain.Severity
		records     int
		escalations int
	}{
		{"critical escalates every time", domain.SeverityCritical, 3, 3},
		{"high escalates at 5 and 10", domain.SeverityHigh, 10, 2},
		{"high below threshold stays quiet", domain.SeverityHigh, 4, 0},
		{"medium escalates only on the 20th", domain.SeverityMedium, 20, 1},
		{"medium at 19 stays quiet", domain.SeverityMedium, 19, 0},
		{"low escalates at 100", domain.SeverityLow, 100, 1},
	}

	for _, tt := range tests {
		h := &captureHandler{}
		a := NewAggregator(slog.New(h))
		c := testClassification(tt.severity, "NETWORK_ERROR")

		for i := 0; i < tt.records; i++ {
			_ = a.Record(context.Background(), c, nil)
		}

		if got := h.escalations(); got != tt.escalations {
			t.Errorf("%s: %d escalations after %d records, want %d",
				tt.name, got, tt.records, tt.escalations)
		}
	}
}

func TestEscalationNotFiredByReset(t *testing.T) {
	h := &captureHandler{}
	a := NewAggregator(slog.New(h))
	c := testClassification(domain.SeverityHigh, "NETWORK_ERROR")

	for i := 0; i < 4; i++ {
		_ = a.Record(context.Background(), c, nil)
	}
	_ = a.Reset(context.Background())

	if got := h.escalations(); got != 0 {
		t.Errorf("escalations = %d, want 0", got)
	}
}

func TestConcurrentRecord(t *testing.T) {
	a := NewAggregator(slog.New(&captureHandler{}))
	c := testClassification(domain.SeverityLow, "NETWORK_ERROR")

	var wg sync.WaitGroup
	const goroutines, perGoroutine = 50, 20

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				_ = a.Record(context.Background(), c, nil)
			}
		}()
	}
	wg.Wait()

	snap, _ := a.Snapshot(context.Background())
	if got := snap.Counts["network:NETWORK_ERROR"]; got != goroutines*perGoroutine {
		t.Errorf("count = %d, want %d (lost increments)", got, goroutines*perGoroutine)
	}
}

func TestThreshold(t *testing.T) {
	tests := []struct {
		severity domain.Severity
		want     uint64
	}{
		{domain.SeverityCritical, 1},
		{domain.SeverityHigh, 5},
		{domain.SeverityMedium, 20},
		{domain.SeverityLow, 100},
	}

	for _, tt := range tests {
		if got := Threshold(tt.severity); got != tt.want {
			t.Errorf("Threshold(%s) = %d, want %d", tt.severity, got, tt.want)
		}
	}
}
