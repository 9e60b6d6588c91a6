package config

import "time"

// ServerConfig holds the planner daemon configuration
type ServerConfig struct {
	// gRPC listen address of the daemon, also dialed by the CLI in remote mode
	Address string `mapstructure:"address" validate:"required"`

	// PID file for single-instance enforcement
	PIDFile string `mapstructure:"pid_file"`

	// Per-request deadline applied by the daemon
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// Grace period for in-flight requests on shutdown
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

// RateLimitConfig is a token bucket applied to incoming planner requests
type RateLimitConfig struct {
	// Requests per second
	Requests float64 `mapstructure:"requests" validate:"gt=0"`

	// Burst size
	Burst int `mapstructure:"burst" validate:"min=1"`
}
