package config

import (
	"fmt"
	"time"
)

// sqliteMemoryPath opens a private in-memory catalog store
const sqliteMemoryPath = ":memory:"

// DatabaseConfig locates the catalog store read by --source database and written by
// `catalog import`.
//
// The default is a local SQLite file. Postgres serves a store shared between several
// planner daemons; its fields are ignored for SQLite.
type DatabaseConfig struct {
	Type string `mapstructure:"type" validate:"required,oneof=postgres sqlite"`

	// SQLite file holding the catalog tables, or ":memory:"
	Path string `mapstructure:"path"`

	// Postgres DSN; when set it replaces the discrete fields below
	// Example: postgresql://motif:secret@db:5432/motif_planner
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode" validate:"omitempty,oneof=disable require verify-ca verify-full"`

	// Pool applies to Postgres; an in-memory SQLite store is pinned to one connection
	Pool PoolConfig `mapstructure:"pool"`
}

// PoolConfig sizes the Postgres connection pool
type PoolConfig struct {
	MaxOpen     int           `mapstructure:"max_open" validate:"min=1"`
	MaxIdle     int           `mapstructure:"max_idle" validate:"min=1"`
	MaxLifetime time.Duration `mapstructure:"max_lifetime"`
}

// PostgresDSN returns URL when set, otherwise a keyword DSN built from the discrete fields
func (c DatabaseConfig) PostgresDSN() string {
	if c.URL != "" {
		return c.URL
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SSLMode)
}

// SQLitePath returns the store file, falling back to a private in-memory store
func (c DatabaseConfig) SQLitePath() string {
	if c.Path == "" {
		return sqliteMemoryPath
	}
	return c.Path
}

// InMemory reports whether the store lives only as long as its connection
func (c DatabaseConfig) InMemory() bool {
	return c.Type == "sqlite" && c.SQLitePath() == sqliteMemoryPath
}
