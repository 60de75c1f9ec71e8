// Package classify turns runtime failures into structured classifications:
// category, severity, retryability, and safe user-facing messaging.
//
// Resolution order:
//  1. declared validation kind (tagged error type or kind name)
//  2. attached HTTP status (4xx caller error, 5xx upstream error)
//  3. ordered pattern matching over message, kind, and stack text
//  4. unknown fallback (always flagged for alerting)
package classify

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vietddude/triage/internal/core/domain"
)

// Classifier maps errors to classifications using an ordered rule table.
// It is stateless apart from the table and safe for concurrent use.
type Classifier struct {
	rules []Rule
}

// New creates a Classifier with the default rule table.
func New() *Classifier {
	return &Classifier{rules: defaultRules}
}

// NewWithRules creates a Classifier with a custom ordered rule table.
// Rules are evaluated in slice order; the first match wins.
func NewWithRules(rules []Rule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify produces a Classification for err. It never panics and always
// returns a complete Classification; unmatched errors fall back to the
// unknown category with alerting enabled.
func (c *Classifier) Classify(err error, ectx *domain.ErrorContext) domain.Classification {
	if err == nil {
		return unknownClassification("nil error classified")
	}

	msg := err.Error()
	kind := errorKind(err)
	stack := errorStack(err)

	// 1. Declared validation kind bypasses pattern matching entirely.
	var ve *domain.ValidationError
	if errors.As(err, &ve) || isValidationKind(kind) {
		return domain.Classification{
			Category:         domain.CategoryValidation,
			Severity:         domain.SeverityLow,
			UserError:        true,
			UserMessage:      "Invalid input provided. Please check your request and try again.",
			TechnicalMessage: msg,
			SuggestedAction:  "Inspect the rejected fields in the request payload",
			ErrorCode:        "VALIDATION_ERROR",
		}
	}

	// 2. Attached HTTP status outranks pattern rules.
	if code, ok := errorStatus(err); ok {
		if cl, ok := statusClassification(code, msg); ok {
			return cl
		}
	}

	// 3. First matching rule wins; a hit on message, kind, or stack counts.
	for _, r := range c.rules {
		if r.Pattern.MatchString(msg) || r.Pattern.MatchString(kind) ||
			(stack != "" && r.Pattern.MatchString(stack)) {
			cl := r.Classification
			cl.TechnicalMessage = msg
			return cl
		}
	}

	// 4. Nothing matched.
	return unknownClassification(msg)
}

// statusClassification maps an attached HTTP status to a classification.
// Statuses below 400 carry no signal and fall through to pattern matching.
func statusClassification(code int, msg string) (domain.Classification, bool) {
	switch {
	case code >= 500:
		return domain.Classification{
			Category:         domain.CategoryExternalService,
			Severity:         domain.SeverityHigh,
			Retryable:        true,
			RequiresAlert:    true,
			UserMessage:      "An upstream service is unavailable. Please try again later.",
			TechnicalMessage: msg,
			SuggestedAction:  "Check upstream service health",
			ErrorCode:        fmt.Sprintf("HTTP_%d", code),
		}, true
	case code >= 400:
		return domain.Classification{
			Category:         domain.CategoryValidation,
			Severity:         domain.SeverityLow,
			UserError:        true,
			UserMessage:      "Invalid request. Please check your input and try again.",
			TechnicalMessage: msg,
			ErrorCode:        fmt.Sprintf("HTTP_%d", code),
		}, true
	default:
		return domain.Classification{}, false
	}
}

func unknownClassification(msg string) domain.Classification {
	return domain.Classification{
		Category:         domain.CategoryUnknown,
		Severity:         domain.SeverityMedium,
		RequiresAlert:    true,
		UserMessage:      "An unexpected error occurred. Please try again later.",
		TechnicalMessage: msg,
		SuggestedAction:  "Inspect logs for the unclassified failure",
		ErrorCode:        "UNKNOWN_ERROR",
	}
}

// errorKind resolves the declared kind of an error: an explicit Kind()
// where the boundary provides one, the dynamic type name otherwise.
func errorKind(err error) string {
	var k domain.Kinder
	if errors.As(err, &k) {
		return k.Kind()
	}
	return fmt.Sprintf("%T", err)
}

// errorStack returns attached stack text, if any.
func errorStack(err error) string {
	var st domain.StackTracer
	if errors.As(err, &st) {
		return st.StackTrace()
	}
	return ""
}

// errorStatus returns an attached HTTP status, if any.
func errorStatus(err error) (int, bool) {
	var sc domain.StatusCoder
	if errors.As(err, &sc) {
		return sc.StatusCode(), true
	}
	return 0, false
}

// isValidationKind reports whether a kind name declares a schema or input
// validation failure.
func isValidationKind(kind string) bool {
	return strings.Contains(strings.ToLower(kind), "validation")
}
