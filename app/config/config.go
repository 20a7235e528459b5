// Package config loads the server configuration.
//
// Values come from, in increasing precedence: built-in defaults, an optional
// YAML file, and environment variables (a .env file in the working directory
// is loaded into the environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvConfigPath names the variable that points at the YAML config file.
const EnvConfigPath = "SOCIALGRAPH_CONFIG"

// Auth token modes.
const (
	AuthModeOpaque = "opaque"
	AuthModeJWT    = "jwt"
)

// Config is the master configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

	// LegacyStatusCodes answers domain errors with HTTP 200 and an
	// {"error": ...} body instead of 4xx codes.
	LegacyStatusCodes bool `yaml:"legacy_status_codes"`
}

// DatabaseConfig configures the relational store.
type DatabaseConfig struct {
	// URL is postgres://<dsn> or sqlite://<path>.
	URL          string `yaml:"url"`
	MaxIdleConns int    `yaml:"max_idle_conns"`
	MaxOpenConns int    `yaml:"max_open_conns"`
}

// AuthConfig configures token issuance.
type AuthConfig struct {
	// Mode is "opaque" (tokens stored in badger) or "jwt".
	Mode     string        `yaml:"mode"`
	TokenTTL time.Duration `yaml:"token_ttl"`

	// TokenStorePath is the badger directory for opaque tokens.
	// Empty keeps tokens in memory.
	TokenStorePath string `yaml:"token_store_path"`

	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`
}

// LogConfig configures logrus.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			URL:          "sqlite://socialgraph.db",
			MaxIdleConns: 10,
			MaxOpenConns: 100,
		},
		Auth: AuthConfig{
			Mode:           AuthModeOpaque,
			TokenTTL:       24 * time.Hour,
			TokenStorePath: "data/tokens",
			JWTIssuer:      "socialgraph",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// $SOCIALGRAPH_CONFIG when path is empty) and the environment.
func Load(path string) (*Config, error) {
	// A missing .env is normal outside development.
	_ = godotenv.Load()

	cfg := Default()

	if path == "" {
		path = os.Getenv(EnvConfigPath)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Addr = ":" + port
	}
	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if mode := os.Getenv("AUTH_MODE"); mode != "" {
		c.Auth.Mode = mode
	}
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		c.Auth.JWTSecret = secret
	}
	if path, ok := os.LookupEnv("TOKEN_STORE_PATH"); ok {
		c.Auth.TokenStorePath = path
	}
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.Log.Level = level
	}
}

// Validate rejects configurations the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if !strings.HasPrefix(c.Database.URL, "postgres://") && !strings.HasPrefix(c.Database.URL, "sqlite://") {
		errs = append(errs, fmt.Errorf("database.url %q must start with postgres:// or sqlite://", c.Database.URL))
	}
	switch c.Auth.Mode {
	case AuthModeOpaque:
	case AuthModeJWT:
		if c.Auth.JWTSecret == "" {
			errs = append(errs, errors.New("auth.jwt_secret is required when auth.mode is jwt"))
		}
	default:
		errs = append(errs, fmt.Errorf("auth.mode %q must be %q or %q", c.Auth.Mode, AuthModeOpaque, AuthModeJWT))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}

	return errors.Join(errs...)
}
