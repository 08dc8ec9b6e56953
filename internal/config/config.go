// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - New() returns a Config populated with defaults.
// - Load(ctx) layers defaults, an optional YAML file and CRM_* env vars.
// - Validation failures wrap ErrInvalidConfig; provider failures wrap ErrLoadConfig.
package config

import (
	"time"
)

// Supported database drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is "text" or "json".
	LogFormat string `koanf:"log_format"`
	// Addr configures the HTTP listen address, e.g. ":8000".
	Addr string `koanf:"addr"`
	// RequestTimeout bounds a single request including its storage call.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	DB   DBConfig   `koanf:"db"`
	CORS CORSConfig `koanf:"cors"`
	Seed SeedConfig `koanf:"seed"`
}

// DBConfig selects and tunes the relational store.
type DBConfig struct {
	// Driver is one of sqlite, postgres, mysql.
	Driver string `koanf:"driver"`
	// DSN is passed to the driver as-is. MySQL DSNs need parseTime=true.
	DSN             string        `koanf:"dsn"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	// SlowThreshold marks statements logged at warn level.
	SlowThreshold time.Duration `koanf:"slow_threshold"`
}

// CORSConfig is the cross-origin policy. Empty lists mean "allow all".
type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

// SeedConfig lists lookup descriptions inserted into empty lookup tables at
// startup.
type SeedConfig struct {
	ContactTypes []string `koanf:"contact_types"`
	Genders      []string `koanf:"genders"`
	Origins      []string `koanf:"origins"`
	Statuses     []string `koanf:"statuses"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:       "info",
		LogFormat:      "text",
		Addr:           ":8000",
		RequestTimeout: 15 * time.Second,
		DB: DBConfig{
			Driver:          DriverSQLite,
			DSN:             "crm.db",
			MaxOpenConns:    10,
			MaxIdleConns:    5,
			ConnMaxLifetime: 30 * time.Minute,
			SlowThreshold:   200 * time.Millisecond,
		},
		CORS: CORSConfig{
			AllowCredentials: true,
		},
	}
}
