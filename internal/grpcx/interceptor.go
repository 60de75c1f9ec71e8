// Package grpcx adapts the classification subsystem to a gRPC boundary.
package grpcx

import (
	"context"
	"log/slog"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vietddude/triage/internal/alert"
	"github.com/vietddude/triage/internal/classify"
	"github.com/vietddude/triage/internal/core/domain"
	"github.com/vietddude/triage/internal/metrics"
)

// UnaryServerInterceptor classifies and records handler failures and
// converts them into statuses carrying only the safe user message plus a
// machine-readable ErrorInfo detail (reason = error code, domain =
// category).
func UnaryServerInterceptor(classifier *classify.Classifier, recorder metrics.Recorder, log *slog.Logger) grpc.UnaryServerInterceptor {
	if log == nil {
		log = slog.Default()
	}

	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		resp, err := handler(ctx, req)
		if err == nil {
			return resp, nil
		}

		ectx := &domain.ErrorContext{Operation: info.FullMethod}
		c := classifier.Classify(err, ectx)

		if rerr := recorder.Record(ctx, c, ectx); rerr != nil {
			log.Warn("Failed to record error metric", "error", rerr)
		}

		surfaced := alert.ShouldAlert(c)
		if surfaced {
			metrics.AlertsTotal.WithLabelValues(string(c.Category), c.Severity.String()).Inc()
		}

		d := classify.TechnicalDetails(err, c, ectx)
		log.Error("RPC failed",
			"method", info.FullMethod,
			"category", string(c.Category),
			"code", c.ErrorCode,
			"severity", c.Severity.String(),
			"alert", surfaced,
			"message", d.Message,
		)

		st := status.New(grpcCode(c.Category), classify.UserMessage(c))
		if detailed, derr := st.WithDetails(&errdetails.ErrorInfo{
			Reason: c.ErrorCode,
			Domain: string(c.Category),
		}); derr == nil {
			st = detailed
		}
		return nil, st.Err()
	}
}

// grpcCode maps a failure category to a gRPC status code.
func grpcCode(cat domain.Category) codes.Code {
	switch cat {
	case domain.CategoryValidation:
		return codes.InvalidArgument
	case domain.CategoryAuthentication:
		return codes.Unauthenticated
	case domain.CategoryBusinessLogic:
		return codes.FailedPrecondition
	case domain.CategoryRateLimit:
		return codes.ResourceExhausted
	case domain.CategorySecurity:
		return codes.PermissionDenied
	case domain.CategoryNetwork, domain.CategoryDatabase, domain.CategoryExternalService:
		return codes.Unavailable
	case domain.CategorySystem:
		return codes.Internal
	default:
		return codes.Unknown
	}
}
