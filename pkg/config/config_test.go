package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/matzehuels/slabtower/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoadMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv(EnvConfig, "")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Path != "" {
		t.Errorf("Path = %q, want empty", cfg.Path)
	}
	if cfg.Server.Addr != ":8080" {
		t.Errorf("Server.Addr = %q, want :8080", cfg.Server.Addr)
	}
}

func TestLoadExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
redis_addr = "cache:6379"
ttl = "36h"

[store]
backend = "mongo"
mongo_uri = "mongodb://db:27017"

[robots]
width = 101
height = 103

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"cache backend", cfg.Cache.Backend, CacheRedis},
		{"redis addr", cfg.Cache.RedisAddr, "cache:6379"},
		{"ttl", cfg.Cache.TTL.Duration, 36 * time.Hour},
		{"store backend", cfg.Store.Backend, StoreMongo},
		{"database default kept", cfg.Store.Database, "slabtower"},
		{"robots width", cfg.Robots.Width, int64(101)},
		{"robots seconds default kept", cfg.Robots.Seconds, int64(100)},
		{"log level", cfg.Log.Level, "debug"},
		{"path", cfg.Path, path},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[server]\naddr = \":9999\"\n")
	t.Setenv(EnvConfig, path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("Server.Addr = %q, want :9999", cfg.Server.Addr)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown cache backend", "[cache]\nbackend = \"memcached\"\n"},
		{"unknown store backend", "[store]\nbackend = \"postgres\"\n"},
		{"bad duration", "[cache]\nttl = \"soon\"\n"},
		{"unknown key", "[server]\nport = 80\n"},
		{"negative seconds", "[robots]\nseconds = -1\n"},
		{"bad log level", "[log]\nlevel = \"loud\"\n"},
		{"syntax", "[cache\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.body)); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("Load() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
