package classify

import (
	"github.com/vietddude/triage/internal/core/domain"
)

// Details is the internal-log view of a classified failure. It is meant
// for a logging sink and must never be sent to a client.
type Details struct {
	Message       string          `json:"message"`
	Kind          string          `json:"kind"`
	Stack         string          `json:"stack,omitempty"`
	Category      domain.Category `json:"category"`
	Severity      string          `json:"severity"`
	ErrorCode     string          `json:"error_code"`
	Retryable     bool            `json:"retryable"`
	RequiresAlert bool            `json:"requires_alert"`
	Operation     string          `json:"operation,omitempty"`
	UserID        string          `json:"user_id,omitempty"`
}

// UserMessage returns the safe client-facing message for a classification.
// The message is always a pre-written string selected by category, never
// interpolated from raw error text.
func UserMessage(c domain.Classification) string {
	if c.UserMessage != "" {
		return c.UserMessage
	}
	return "An unexpected error occurred. Please try again later."
}

// TechnicalDetails assembles the structured log record for a failure.
func TechnicalDetails(err error, c domain.Classification, ectx *domain.ErrorContext) Details {
	d := Details{
		Message:       c.TechnicalMessage,
		Category:      c.Category,
		Severity:      c.Severity.String(),
		ErrorCode:     c.ErrorCode,
		Retryable:     c.Retryable,
		RequiresAlert: c.RequiresAlert,
	}
	if err != nil {
		d.Message = err.Error()
		d.Kind = errorKind(err)
		d.Stack = errorStack(err)
	}
	if ectx != nil {
		d.Operation = ectx.Operation
		d.UserID = ectx.UserID
	}
	return d
}
