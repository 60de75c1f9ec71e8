package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vietddude/triage/internal/alert"
	"github.com/vietddude/triage/internal/classify"
	"github.com/vietddude/triage/internal/core/domain"
	"github.com/vietddude/triage/internal/metrics"
)

// HandlerFunc is an HTTP handler that reports its failure instead of
// writing it to the response.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// ErrorBoundary classifies and records handler failures, logs the
// technical details internally, and shapes the client response from the
// classification so raw error text never leaks.
type ErrorBoundary struct {
	classifier *classify.Classifier
	recorder   metrics.Recorder
	log        *slog.Logger
}

// NewErrorBoundary creates an ErrorBoundary.
func NewErrorBoundary(classifier *classify.Classifier, recorder metrics.Recorder, log *slog.Logger) *ErrorBoundary {
	if log == nil {
		log = slog.Default()
	}
	return &ErrorBoundary{classifier: classifier, recorder: recorder, log: log}
}

// Wrap converts a failure-reporting handler into an http.HandlerFunc.
func (b *ErrorBoundary) Wrap(operation string, h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		ectx := &domain.ErrorContext{Operation: operation}
		c := b.classifier.Classify(err, ectx)

		if rerr := b.recorder.Record(r.Context(), c, ectx); rerr != nil {
			b.log.Warn("Failed to record error metric", "error", rerr)
		}

		surfaced := alert.ShouldAlert(c)
		if surfaced {
			metrics.AlertsTotal.WithLabelValues(string(c.Category), c.Severity.String()).Inc()
		}

		d := classify.TechnicalDetails(err, c, ectx)
		b.log.Error("Request failed",
			"operation", operation,
			"category", string(c.Category),
			"code", c.ErrorCode,
			"severity", c.Severity.String(),
			"retryable", c.Retryable,
			"alert", surfaced,
			"message", d.Message,
			"kind", d.Kind,
		)

		writeError(w, err, c)
	}
}

// errorResponse is the only failure shape clients ever see.
type errorResponse struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Retryable bool   `json:"retryable"`
}

func writeError(w http.ResponseWriter, err error, c domain.Classification) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(httpStatus(err, c))
	json.NewEncoder(w).Encode(map[string]errorResponse{
		"error": {
			Code:      c.ErrorCode,
			Message:   classify.UserMessage(c),
			Retryable: c.Retryable,
		},
	})
}

// httpStatus selects a response status: the error's own attached status
// when present, the category mapping otherwise.
func httpStatus(err error, c domain.Classification) int {
	var sc domain.StatusCoder
	if errors.As(err, &sc) {
		if code := sc.StatusCode(); code >= 400 && code < 600 {
			return code
		}
	}

	switch c.Category {
	case domain.CategoryValidation:
		return http.StatusBadRequest
	case domain.CategoryAuthentication:
		return http.StatusUnauthorized
	case domain.CategoryBusinessLogic:
		return http.StatusUnprocessableEntity
	case domain.CategoryRateLimit:
		return http.StatusTooManyRequests
	case domain.CategorySecurity:
		return http.StatusForbidden
	case domain.CategoryExternalService:
		return http.StatusBadGateway
	case domain.CategoryNetwork, domain.CategoryDatabase:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
