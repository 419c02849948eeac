// Package config provides centralized configuration for the census report.
// It loads settings from environment variables with defaults and validates
// them up front so a bad setting fails before any data is read.
package config

import (
	"strconv"
	"time"
)

// Data sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Report formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Dataset  DatasetConfig
	Report   ReportConfig
	Database DatabaseConfig
	Server   ServerConfig
	Logging  LoggingConfig
}

// DatasetConfig selects where the census rows come from.
type DatasetConfig struct {
	// Path is the CSV file read by the file source (default: adult.data.csv)
	Path string `env:"CENSUS_DATA_PATH" default:"adult.data.csv"`

	// Source is "file" or "postgres" (default: file)
	Source string `env:"CENSUS_SOURCE" default:"file"`

	// Table is the PostgreSQL table used by the postgres source and import
	Table string `env:"CENSUS_TABLE" default:"census_records"`

	// MaxFileSize is the largest CSV accepted, in bytes (default: 100MB)
	MaxFileSize int64 `env:"CENSUS_MAX_FILE_SIZE" default:"104857600"`
}

// ReportConfig controls report output.
type ReportConfig struct {
	// Format is "text" or "json" (default: text)
	Format string `env:"REPORT_FORMAT" default:"text"`
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string. Only needed for the postgres
	// source and the import command.
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
	MaxConnIdleTime time.Duration `env:"DB_MAX_CONN_IDLE_TIME" default:"30m"`
}

// ServerConfig holds HTTP settings for the serve command.
type ServerConfig struct {
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`
	Port int    `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"15s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`

	// TrustedProxies is a comma-separated list of proxy CIDRs whose
	// X-Real-IP / X-Forwarded-For headers are believed. Empty trusts none.
	TrustedProxies []string `env:"TRUSTED_PROXIES"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	if c.Host == "" {
		return ":" + strconv.Itoa(c.Port)
	}
	return c.Host + ":" + strconv.Itoa(c.Port)
}
