// Package alert decides whether a classified failure should be surfaced
// to an operator immediately, independent of repeat counts.
package alert

import "github.com/vietddude/triage/internal/core/domain"

// ShouldAlert reports whether a failure warrants immediate attention:
// any classification flagged RequiresAlert, or any High or Critical
// severity. Low and Medium failures without the flag only surface through
// the aggregator's count-threshold escalation.
func ShouldAlert(c domain.Classification) bool {
	return c.RequiresAlert || c.Severity >= domain.SeverityHigh
}
