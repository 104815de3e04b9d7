package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"leximap/internal/validation"
)

// Lexicon backend names.
const (
	BackendWordNet  = "wordnet"
	BackendPostgres = "postgres"
)

// ErrUnknownBackend is returned when LEXICON_BACKEND names no known backend.
var ErrUnknownBackend = errors.New("unknown lexicon backend")

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // "text" or "json"; defaults to text in development, json otherwise

	// Server
	Port       string
	ServerAddr string

	// TLS/mTLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // CA for verifying client certs (mTLS)

	// CORS
	CORSOrigins string // Comma-separated allowed origins, "*" allows any origin

	// Inbound rate limiting
	RateLimitMax int    // Requests per minute per IP, 0 disables the limiter
	RedisURL     string // Shared limiter storage; in-memory when empty

	// Lexicon
	LexiconBackend string // "wordnet" or "postgres"
	WordNetDir     string
	DatabaseURL    string // Required for the postgres backend, enables lookup counters otherwise

	// Relation service
	RelationsBaseURL       string
	RelationsTimeout       time.Duration
	RelationsRPS           float64 // 0 means unlimited
	RelationsBurst         int
	RelationsProbeInterval time.Duration // 0 disables the probe job

	// Category rules file (optional)
	ConfigFile string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		Env:              getEnv("ENV", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", ""),
		Port:             getEnv("PORT", "8787"),
		TLSEnabled:       getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		RedisURL:         getEnv("REDIS_URL", ""),
		LexiconBackend:   strings.ToLower(getEnv("LEXICON_BACKEND", BackendWordNet)),
		WordNetDir:       getEnv("WORDNET_DIR", "./dict"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RelationsBaseURL: getEnv("RELATIONS_BASE_URL", "https://api.datamuse.com/words"),
		ConfigFile:       getEnv("CONFIG_FILE", "config.yaml"),
	}
	cfg.ServerAddr = getEnv("SERVER_ADDR", ":"+cfg.Port)
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDev() {
			cfg.LogFormat = "text"
		}
	}

	var err error
	if cfg.RateLimitMax, err = getEnvInt("RATE_LIMIT_MAX", 100); err != nil {
		return nil, err
	}
	if cfg.RelationsTimeout, err = getEnvDuration("RELATIONS_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.RelationsRPS, err = getEnvFloat("RELATIONS_RPS", 0); err != nil {
		return nil, err
	}
	if cfg.RelationsBurst, err = getEnvInt("RELATIONS_BURST", 5); err != nil {
		return nil, err
	}
	if cfg.RelationsProbeInterval, err = getEnvDuration("RELATIONS_PROBE_INTERVAL", 0); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.LexiconBackend {
	case BackendWordNet:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required for the %s lexicon backend", BackendPostgres)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownBackend, c.LexiconBackend)
	}

	if valid, msg := validation.ValidateURL(c.RelationsBaseURL); !valid {
		return fmt.Errorf("RELATIONS_BASE_URL: %s", msg)
	}
	if c.RelationsTimeout <= 0 {
		return errors.New("RELATIONS_TIMEOUT must be positive")
	}
	if c.TLSEnabled && (c.TLSCertFile == "" || c.TLSKeyFile == "") {
		return errors.New("TLS_CERT_FILE and TLS_KEY_FILE are required when TLS_ENABLED is set")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return f, nil
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return d, nil
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsMTLSEnabled returns true if mTLS is configured with a CA file.
func (c *Config) IsMTLSEnabled() bool {
	return c.TLSEnabled && c.TLSCAFile != ""
}

// HasDatabase reports whether a Postgres connection is configured.
func (c *Config) HasDatabase() bool {
	return c.DatabaseURL != ""
}

// AllowedOrigins splits CORSOrigins into the list the CORS middleware expects.
func (c *Config) AllowedOrigins() []string {
	var origins []string
	for _, o := range strings.Split(c.CORSOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
