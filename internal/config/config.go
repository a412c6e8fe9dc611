// Package config manages environment variables.
//
// It maps env vars into structured Go types and validates that required
// values are present so the application fails fast on bad config.
//
// Responsibilities:
//   - Load environment variables (optionally from a `.env` file).
//   - Apply defaults for anything not set.
//   - Derive the PostgreSQL connection URI.
//
// Recognized variables:
//
//	APP_ENV
//	DB_HOST, DB_PORT, DB_NAME, DB_USER, DB_PASSWORD,
//	DB_POOL_MIN_SIZE, DB_POOL_MAX_SIZE
//	HTTP_PORT, HTTP_READ_TIMEOUT, HTTP_WRITE_TIMEOUT, HTTP_IDLE_TIMEOUT
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	// Side-effect import: loads a `.env` file into the process env, if
	// one exists, before anything reads env vars.
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Config is the root configuration object for the application.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
}

// Primary holds top-level information about the runtime environment,
// used to tag logs and switch behavior (e.g. SQL tracing in "local").
type Primary struct {
	Env string `koanf:"env" validate:"required"`
}

// ServerConfig groups settings for the HTTP server runtime.
// Timeouts are seconds.
type ServerConfig struct {
	Port         string `koanf:"port" validate:"required"`
	ReadTimeout  int    `koanf:"read_timeout" validate:"required,min=1"`
	WriteTimeout int    `koanf:"write_timeout" validate:"required,min=1"`
	IdleTimeout  int    `koanf:"idle_timeout" validate:"required,min=1"`
}

// DatabaseConfig contains PostgreSQL connection parameters and pool
// bounds. Pool sizes map to pgxpool MinConns/MaxConns.
type DatabaseConfig struct {
	Host        string `koanf:"host" validate:"required"`
	Port        int    `koanf:"port" validate:"required,min=1,max=65535"`
	Name        string `koanf:"name" validate:"required"`
	User        string `koanf:"user" validate:"required"`
	Password    string `koanf:"password" validate:"required"`
	PoolMinSize int    `koanf:"pool_min_size" validate:"required,min=1"`
	PoolMaxSize int    `koanf:"pool_max_size" validate:"required,gtefield=PoolMinSize"`
}

// ConnString returns the derived postgres:// connection URI.
//
// The password is URL-escaped so special characters cannot break the URI
// structure, and host/port are joined IPv6-safely.
func (d DatabaseConfig) ConnString() string {
	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))
	return fmt.Sprintf("postgres://%s:%s@%s/%s",
		d.User,
		url.QueryEscape(d.Password),
		hostPort,
		d.Name,
	)
}

// defaults mirrors the documented default for every recognized variable.
func defaults() map[string]interface{} {
	return map[string]interface{}{
		"primary.env":            "local",
		"server.port":            "8080",
		"server.read_timeout":    15,
		"server.write_timeout":   15,
		"server.idle_timeout":    60,
		"database.host":          "localhost",
		"database.port":          5432,
		"database.name":          "salesnisha",
		"database.user":          "postgres",
		"database.password":      "postgres",
		"database.pool_min_size": 10,
		"database.pool_max_size": 20,
	}
}

// envKey translates a raw env var name into a koanf key path, or returns
// "" for variables this application does not own.
func envKey(s string) string {
	switch {
	case s == "APP_ENV":
		return "primary.env"
	case strings.HasPrefix(s, "DB_"):
		return "database." + strings.ToLower(strings.TrimPrefix(s, "DB_"))
	case strings.HasPrefix(s, "HTTP_"):
		return "server." + strings.ToLower(strings.TrimPrefix(s, "HTTP_"))
	default:
		return ""
	}
}

// Load reads defaults, overlays the process environment, unmarshals into
// Config and validates it.
//
// Malformed numeric values (e.g. DB_PORT=abc) surface here as an
// unmarshal error, so startup fails before any connection is attempted.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("load config defaults: %w", err)
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}
