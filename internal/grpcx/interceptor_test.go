package grpcx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/vietddude/triage/internal/classify"
	"github.com/vietddude/triage/internal/core/domain"
	"github.com/vietddude/triage/internal/metrics"
)

func testInterceptor() (grpc.UnaryServerInterceptor, *metrics.Aggregator) {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	agg := metrics.NewAggregator(log)
	return UnaryServerInterceptor(classify.New(), agg, log), agg
}

func callInfo() *grpc.UnaryServerInfo {
	return &grpc.UnaryServerInfo{FullMethod: "/triage.v1.Documents/Get"}
}

func TestInterceptorSuccessPassesThrough(t *testing.T) {
	interceptor, _ := testInterceptor()

	resp, err := interceptor(context.Background(), nil, callInfo(),
		func(ctx context.Context, req any) (any, error) {
			return "ok", nil
		})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp != "ok" {
		t.Errorf("resp = %v, want ok", resp)
	}
}

func TestInterceptorMapsCategoriesToCodes(t *testing.T) {
	tests := []struct {
		err  error
		code codes.Code
	}{
		{&domain.ValidationError{Reason: "bad input"}, codes.InvalidArgument},
		{errors.New("unauthorized request"), codes.Unauthenticated},
		{errors.New("rate limit exceeded"), codes.ResourceExhausted},
		{errors.New("network connection timeout"), codes.Unavailable},
		{errors.New("database is down"), codes.Unavailable},
		{errors.New("possible xss attempt"), codes.PermissionDenied},
		{errors.New("out of memory"), codes.Internal},
		{errors.New("weird unlabeled failure"), codes.Unknown},
	}

	for _, tt := range tests {
		interceptor, _ := testInterceptor()
		_, err := interceptor(context.Background(), nil, callInfo(),
			func(ctx context.Context, req any) (any, error) {
				return nil, tt.err
			})

		st, ok := status.FromError(err)
		if !ok {
			t.Fatalf("%q: not a status error: %v", tt.err, err)
		}
		if st.Code() != tt.code {
			t.Errorf("%q: code = %s, want %s", tt.err, st.Code(), tt.code)
		}
	}
}

func TestInterceptorAttachesErrorInfo(t *testing.T) {
	interceptor, _ := testInterceptor()

	_, err := interceptor(context.Background(), nil, callInfo(),
		func(ctx context.Context, req any) (any, error) {
			return nil, errors.New("network connection timeout")
		})

	st, _ := status.FromError(err)
	var info *errdetails.ErrorInfo
	for _, d := range st.Details() {
		if ei, ok := d.(*errdetails.ErrorInfo); ok {
			info = ei
		}
	}
	if info == nil {
		t.Fatal("status carries no ErrorInfo detail")
	}
	if info.Reason != "NETWORK_ERROR" || info.Domain != "network" {
		t.Errorf("ErrorInfo = %s/%s, want NETWORK_ERROR/network", info.Reason, info.Domain)
	}
}

func TestInterceptorSanitizesMessage(t *testing.T) {
	interceptor, _ := testInterceptor()

	_, err := interceptor(context.Background(), nil, callInfo(),
		func(ctx context.Context, req any) (any, error) {
			return nil, errors.New("database failure: creds admin:hunter2")
		})

	st, _ := status.FromError(err)
	if got := st.Message(); got != "A temporary storage error occurred. Please try again." {
		t.Errorf("message = %q, want the pre-written user message", got)
	}
}

func TestInterceptorRecordsFailures(t *testing.T) {
	interceptor, agg := testInterceptor()

	for i := 0; i < 2; i++ {
		_, _ = interceptor(context.Background(), nil, callInfo(),
			func(ctx context.Context, req any) (any, error) {
				return nil, errors.New("database is down")
			})
	}

	snap, _ := agg.Snapshot(context.Background())
	if got := snap.Counts["database:DATABASE_ERROR"]; got != 2 {
		t.Errorf("recorded count = %d, want 2", got)
	}
}
