package config

import (
	"time"

	"github.com/andrescamacho/motif-planner/internal/domain/production"
)

// DefaultMaxDepth bounds recipe nesting when nothing is configured
const DefaultMaxDepth = 64

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "motif-planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.User == "" {
		cfg.Database.User = "motif"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "motif_planner"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 10
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 2
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = "localhost:50061"
	}
	if cfg.Server.PIDFile == "" {
		cfg.Server.PIDFile = "/tmp/motif-planner.pid"
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 10 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Server.RateLimit.Requests == 0 {
		cfg.Server.RateLimit.Requests = 50
	}
	if cfg.Server.RateLimit.Burst == 0 {
		cfg.Server.RateLimit.Burst = 100
	}

	// Planner defaults
	if cfg.Planner.MaxDepth == 0 {
		cfg.Planner.MaxDepth = DefaultMaxDepth
	}
	if cfg.Planner.CatalogDir == "" {
		cfg.Planner.CatalogDir = "data"
	}
	if cfg.Planner.CatalogSource == "" {
		cfg.Planner.CatalogSource = "json"
	}
	if cfg.Planner.Defaults == (production.ConfigurationBundle{}) {
		cfg.Planner.Defaults = production.DefaultBundle()
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "text"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stderr"
	}

	// Metrics defaults
	if cfg.Metrics.Host == "" {
		cfg.Metrics.Host = "localhost"
	}
	if cfg.Metrics.Port == 0 {
		cfg.Metrics.Port = 9091
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.PollInterval == 0 {
		cfg.Metrics.PollInterval = time.Minute
	}
}
