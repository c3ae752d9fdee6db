// SPDX-License-Identifier: MIT

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ArchiveBaseURL != "https://exoplanetarchive.ipac.caltech.edu/TAP/sync" {
		t.Errorf("ArchiveBaseURL = %q", cfg.ArchiveBaseURL)
	}
	if cfg.DBPath != filepath.Join("./data", "exoplanets.db") {
		t.Errorf("DBPath = %q, want derived from data_dir", cfg.DBPath)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %v, want 1h", cfg.CacheTTL)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "listen_addr: \":9999\"\ndata_dir: /var/lib/exoatlas\nlog_level: debug\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if cfg.DBPath != filepath.Join("/var/lib/exoatlas", "exoplanets.db") {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("listen_addr: \":9999\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("EXOATLAS_LISTEN", ":7070")
	t.Setenv("EXOATLAS_FETCH_TIMEOUT", "90s")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":7070" {
		t.Errorf("ListenAddr = %q, want env value :7070", cfg.ListenAddr)
	}
	if cfg.FetchTimeout != 90*time.Second {
		t.Errorf("FetchTimeout = %v, want 90s", cfg.FetchTimeout)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty data dir", func(c *Config) { c.DataDir = " " }, "data_dir"},
		{"bad scheme", func(c *Config) { c.ArchiveBaseURL = "ftp://archive" }, "scheme"},
		{"missing host", func(c *Config) { c.ArchiveBaseURL = "https://" }, "missing host"},
		{"zero timeout", func(c *Config) { c.FetchTimeout = 0 }, "fetch_timeout"},
		{"negative interval", func(c *Config) { c.SyncInterval = -time.Minute }, "sync_interval"},
		{"zero cache ttl", func(c *Config) { c.CacheTTL = 0 }, "cache_ttl"},
		{"sample out of range", func(c *Config) { c.TraceSample = 1.5 }, "trace_sample"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Defaults()
			cfg.DBPath = "exoplanets.db"
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFileFails(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Load with missing file = nil, want error")
	}
}
