// SPDX-License-Identifier: MIT

// Package config loads the exoatlas configuration with the precedence
// ENV > file > defaults.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable of the sync pipeline and the dashboard server.
type Config struct {
	// Data and storage
	DataDir string `yaml:"data_dir" env:"EXOATLAS_DATA_DIR"`
	DBPath  string `yaml:"db_path" env:"EXOATLAS_DB_PATH"`

	// NASA Exoplanet Archive TAP endpoint
	ArchiveBaseURL string        `yaml:"archive_base_url" env:"EXOATLAS_ARCHIVE_URL"`
	FetchTimeout   time.Duration `yaml:"fetch_timeout" env:"EXOATLAS_FETCH_TIMEOUT"`
	FetchRPS       float64       `yaml:"fetch_rps" env:"EXOATLAS_FETCH_RPS"`
	SnapshotRaw    bool          `yaml:"snapshot_raw" env:"EXOATLAS_SNAPSHOT_RAW"`

	// HTTP server
	ListenAddr     string        `yaml:"listen_addr" env:"EXOATLAS_LISTEN"`
	SyncInterval   time.Duration `yaml:"sync_interval" env:"EXOATLAS_SYNC_INTERVAL"`
	CacheTTL       time.Duration `yaml:"cache_ttl" env:"EXOATLAS_CACHE_TTL"`
	RedisAddr      string        `yaml:"redis_addr" env:"EXOATLAS_REDIS_ADDR"`
	RedisPassword  string        `yaml:"redis_password" env:"EXOATLAS_REDIS_PASSWORD"`
	RateLimitRPM   int           `yaml:"rate_limit_rpm" env:"EXOATLAS_RATE_LIMIT_RPM"`
	RateLimitBurst int           `yaml:"rate_limit_burst" env:"EXOATLAS_RATE_LIMIT_BURST"`

	// Logging
	LogLevel   string `yaml:"log_level" env:"EXOATLAS_LOG_LEVEL"`
	LogService string `yaml:"log_service" env:"EXOATLAS_LOG_SERVICE"`

	// Tracing (optional, disabled when endpoint is empty)
	OTLPEndpoint string  `yaml:"otlp_endpoint" env:"EXOATLAS_OTLP_ENDPOINT"`
	TraceSample  float64 `yaml:"trace_sample" env:"EXOATLAS_TRACE_SAMPLE"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		DataDir:        "./data",
		ArchiveBaseURL: "https://exoplanetarchive.ipac.caltech.edu/TAP/sync",
		FetchTimeout:   60 * time.Second,
		FetchRPS:       0.5,
		ListenAddr:     ":8080",
		CacheTTL:       time.Hour,
		RateLimitRPM:   300,
		RateLimitBurst: 50,
		LogLevel:       "info",
		LogService:     "exoatlas",
		TraceSample:    0.1,
	}
}

// Load builds the effective configuration: defaults, then the optional YAML
// file at path, then environment overrides.
func Load(path string) (Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %q: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(cfg.DataDir, "exoplanets.db")
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects configurations the daemon cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return errors.New("config: data_dir is empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is empty")
	}

	u, err := url.Parse(c.ArchiveBaseURL)
	if err != nil {
		return fmt.Errorf("config: invalid archive_base_url %q: %w", c.ArchiveBaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("config: unsupported archive_base_url scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("config: archive_base_url %q is missing host", c.ArchiveBaseURL)
	}

	if c.FetchTimeout <= 0 {
		return errors.New("config: fetch_timeout must be positive")
	}
	if c.FetchRPS <= 0 {
		return errors.New("config: fetch_rps must be positive")
	}
	if c.SyncInterval < 0 {
		return errors.New("config: sync_interval must not be negative")
	}
	if c.CacheTTL <= 0 {
		return errors.New("config: cache_ttl must be positive")
	}
	if c.RateLimitRPM <= 0 || c.RateLimitBurst <= 0 {
		return errors.New("config: rate limit values must be positive")
	}
	if c.TraceSample < 0 || c.TraceSample > 1 {
		return errors.New("config: trace_sample must be in [0, 1]")
	}
	return nil
}
