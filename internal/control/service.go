// Package control wires the triage service together and manages its
// lifecycle.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vietddude/triage/internal/classify"
	"github.com/vietddude/triage/internal/core/config"
	redisclient "github.com/vietddude/triage/internal/infra/redis"
	"github.com/vietddude/triage/internal/metrics"
	"github.com/vietddude/triage/internal/server"
)

// Config holds the application configuration.
type Config struct {
	Port    int
	Metrics config.MetricsConfig
	Redis   redisclient.Config
}

// Service is the main application struct managing the HTTP surface and
// the error-counter backend.
type Service struct {
	cfg         Config
	classifier  *classify.Classifier
	recorder    metrics.Recorder
	httpServer  *server.Server
	redisClient *redisclient.Client
	log         *slog.Logger
}

// NewService creates a Service with all dependencies initialized.
func NewService(cfg Config) (*Service, error) {
	log := slog.Default()

	var recorder metrics.Recorder
	var redisClient *redisclient.Client

	switch cfg.Metrics.Backend {
	case config.BackendRedis:
		client, err := redisclient.NewClient(cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis counters: %w", err)
		}
		redisClient = client
		recorder = redisclient.NewCounters(client, log)
		slog.Info("Using shared Redis error counters")
	default:
		recorder = metrics.NewAggregator(log)
		slog.Info("Using in-memory error counters")
	}

	classifier := classify.New()
	httpServer := server.NewServer(recorder, cfg.Port, log)

	return &Service{
		cfg:         cfg,
		classifier:  classifier,
		recorder:    recorder,
		httpServer:  httpServer,
		redisClient: redisClient,
		log:         log,
	}, nil
}

// Classifier returns the classifier for host boundaries to embed.
func (s *Service) Classifier() *classify.Classifier { return s.classifier }

// Recorder returns the active error-counter backend.
func (s *Service) Recorder() metrics.Recorder { return s.recorder }

// Boundary returns an HTTP error boundary bound to this service.
func (s *Service) Boundary() *server.ErrorBoundary {
	return server.NewErrorBoundary(s.classifier, s.recorder, s.log)
}

// Start launches the HTTP server. It returns immediately; server errors
// are logged from the serving goroutine.
func (s *Service) Start(ctx context.Context) error {
	go func() {
		slog.Info("HTTP server listening", "port", s.cfg.Port)
		if err := s.httpServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server stopped", "error", err)
		}
	}()
	return nil
}

// Stop gracefully shuts the service down.
func (s *Service) Stop(ctx context.Context) error {
	if err := s.httpServer.Stop(ctx); err != nil {
		return fmt.Errorf("failed to stop http server: %w", err)
	}
	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			return fmt.Errorf("failed to close redis: %w", err)
		}
	}
	return nil
}
