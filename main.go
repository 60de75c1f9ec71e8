package main

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"github.com/vietddude/triage/internal/alert"
	"github.com/vietddude/triage/internal/classify"
	"github.com/vietddude/triage/internal/core/domain"
	"github.com/vietddude/triage/internal/metrics"
)

func main() {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}

	ctx := context.Background()

	// 1. Create classifier and an in-memory aggregator
	classifier := classify.New()
	aggregator := metrics.NewAggregator(nil)

	// 2. Classify a few representative failures
	samples := []error{
		errors.New("Validation failed: required field missing"),
		errors.New("Network connection timeout"),
		&domain.StatusError{Code: 503, Err: errors.New("upstream unavailable")},
		errors.New("possible SQL injection detected"),
		errors.New("something nobody has seen before"),
	}

	fmt.Println("=== Classifying Sample Errors ===")
	for _, sample := range samples {
		c := classifier.Classify(sample, &domain.ErrorContext{Operation: "demo"})
		_ = aggregator.Record(ctx, c, nil)

		fmt.Printf("%-45q -> %s/%s code=%s retryable=%v alert=%v\n",
			sample.Error(), c.Category, c.Severity, c.ErrorCode,
			c.Retryable, alert.ShouldAlert(c))
		fmt.Printf("  user message: %s\n", classify.UserMessage(c))
	}

	// 3. Drive a High-severity failure past its escalation threshold
	fmt.Println("\n=== Escalation Demo (High severity, threshold 5) ===")
	networkErr := classifier.Classify(errors.New("network connection refused"), nil)
	for i := 0; i < 5; i++ {
		_ = aggregator.Record(ctx, networkErr, nil)
	}

	// 4. Show counters
	snap, _ := aggregator.Snapshot(ctx)
	fmt.Println("\n=== Counters ===")
	for key, count := range snap.Counts {
		fmt.Printf("%s = %d\n", key, count)
	}
}
