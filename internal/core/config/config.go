package config

import (
	redisclient "github.com/vietddude/triage/internal/infra/redis"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server  ServerConfig       `yaml:"server"`
	Logging LoggingConfig      `yaml:"logging"`
	Metrics MetricsConfig      `yaml:"metrics"`
	Redis   redisclient.Config `yaml:"redis"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// MetricsConfig selects the error-counter backend.
type MetricsConfig struct {
	Backend string `yaml:"backend"` // memory (default), redis
}

// Backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)
