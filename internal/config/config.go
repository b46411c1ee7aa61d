// Package config loads service settings from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config is the full service configuration. It is loaded once in main and
// passed down explicitly.
type Config struct {
	Port         string        `env:"PORT"             envDefault:"8080"`
	StoreDriver  string        `env:"STORE_DRIVER"     envDefault:"postgres"`
	StoreTimeout time.Duration `env:"STORE_TIMEOUT"    envDefault:"3s"`
	LogLevel     string        `env:"LOG_LEVEL"        envDefault:"info"`
	SeedSample   bool          `env:"SEED_SAMPLE_DATA" envDefault:"false"`
	WebDir       string        `env:"WEB_DIR"          envDefault:"./web"`

	RSVPRatePerMinute float64 `env:"RSVP_RATE_PER_MINUTE" envDefault:"120"`
	RSVPRateBurst     int     `env:"RSVP_RATE_BURST"      envDefault:"20"`

	Postgres Postgres
	Mongo    Mongo
	SQLite   SQLite
}

// Postgres holds PostgreSQL connection settings.
type Postgres struct {
	Host     string `env:"DB_HOST"     envDefault:"localhost"`
	Port     string `env:"DB_PORT"     envDefault:"5432"`
	User     string `env:"DB_USER"     envDefault:"postgres"`
	Password string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName   string `env:"DB_NAME"     envDefault:"campusevents"`
	SSLMode  string `env:"DB_SSLMODE"  envDefault:"disable"`
}

// DSN builds a libpq-compatible connection string.
func (c Postgres) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Mongo holds document-store connection settings.
type Mongo struct {
	URI      string `env:"MONGO_URI"      envDefault:"mongodb://localhost:27017"`
	Database string `env:"MONGO_DATABASE" envDefault:"app"`
}

// SQLite holds the embedded store location.
type SQLite struct {
	Path string `env:"SQLITE_PATH" envDefault:"campus-events.db"`
}

// Load parses the environment and validates the result.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the service cannot start with.
func (c Config) Validate() error {
	switch c.StoreDriver {
	case DriverPostgres, DriverMongo, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}
	if c.StoreTimeout <= 0 {
		return fmt.Errorf("STORE_TIMEOUT must be positive")
	}
	if c.RSVPRatePerMinute < 0 || c.RSVPRateBurst < 0 {
		return fmt.Errorf("RSVP rate limits cannot be negative")
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
