// Package config loads slabtower settings from an optional TOML file.
//
// The file is looked up in order: an explicit path (the --config flag), the
// SLABTOWER_CONFIG environment variable, then
// $XDG_CONFIG_HOME/slabtower/config.toml (or ~/.config/slabtower/config.toml).
// A missing file at the default location is not an error; every key has a
// default. An explicitly named file must exist.
//
// Example:
//
//	[cache]
//	backend = "redis"
//	redis_addr = "localhost:6379"
//	ttl = "24h"
//
//	[store]
//	backend = "sqlite"
//	path = "/var/lib/slabtower/reports.db"
//
//	[server]
//	addr = ":8080"
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/slabtower/pkg/errors"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "SLABTOWER_CONFIG"

const appName = "slabtower"

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Store backends.
const (
	StoreSQLite = "sqlite"
	StoreMongo  = "mongo"
	StoreMemory = "memory"
	StoreNone   = "none"
)

// Config is the full configuration.
type Config struct {
	Cache  CacheConfig  `toml:"cache"`
	Store  StoreConfig  `toml:"store"`
	Server ServerConfig `toml:"server"`
	Robots RobotsConfig `toml:"robots"`
	Log    LogConfig    `toml:"log"`

	// Path is the file the configuration was read from, empty for defaults.
	Path string `toml:"-"`
}

type CacheConfig struct {
	Backend   string   `toml:"backend"`
	Dir       string   `toml:"dir"`
	RedisAddr string   `toml:"redis_addr"`
	TTL       Duration `toml:"ttl"`
}

type StoreConfig struct {
	Backend  string `toml:"backend"`
	Path     string `toml:"path"`
	MongoURI string `toml:"mongo_uri"`
	Database string `toml:"database"`
}

type ServerConfig struct {
	Addr string `toml:"addr"`
	// MaxBody caps the request body of POST endpoints, in bytes.
	MaxBody int64 `toml:"max_body"`
}

// RobotsConfig holds defaults for the robots command. A zero width or height
// means the space is inferred from the robots' starting positions.
type RobotsConfig struct {
	Width   int64 `toml:"width"`
	Height  int64 `toml:"height"`
	Seconds int64 `toml:"seconds"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration read from a TOML string such as "36h".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file sets a value.
func Default() Config {
	return Config{
		Cache: CacheConfig{
			Backend:   CacheFile,
			Dir:       defaultDir("XDG_CACHE_HOME", ".cache"),
			RedisAddr: "localhost:6379",
			TTL:       Duration{7 * 24 * time.Hour},
		},
		Store: StoreConfig{
			Backend:  StoreSQLite,
			Path:     filepath.Join(defaultDir("XDG_DATA_HOME", filepath.Join(".local", "share")), "reports.db"),
			MongoURI: "mongodb://localhost:27017",
			Database: appName,
		},
		Server: ServerConfig{Addr: ":8080", MaxBody: 8 << 20},
		Robots: RobotsConfig{Seconds: 100},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the configuration. An empty path falls back to $SLABTOWER_CONFIG
// and then to the default location.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := true
	if path == "" {
		path = os.Getenv(EnvConfig)
	}
	if path == "" {
		explicit = false
		path = filepath.Join(defaultDir("XDG_CONFIG_HOME", ".config"), "config.toml")
	}

	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) && !explicit {
		return cfg, cfg.Validate()
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown key %q", path, undecoded[0].String())
	}
	cfg.Path = path
	return cfg, cfg.Validate()
}

// Validate checks backend names and required fields.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile:
		if c.Cache.Dir == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.dir is required for the file backend")
		}
	case CacheRedis:
		if c.Cache.RedisAddr == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_addr is required for the redis backend")
		}
	case CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache.ttl must not be negative")
	}

	switch c.Store.Backend {
	case StoreSQLite:
		if c.Store.Path == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.path is required for the sqlite backend")
		}
	case StoreMongo:
		if c.Store.MongoURI == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "store.mongo_uri is required for the mongo backend")
		}
	case StoreMemory, StoreNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", c.Store.Backend)
	}

	if c.Robots.Width < 0 || c.Robots.Height < 0 || c.Robots.Seconds < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "robots settings must not be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown log level %q", c.Log.Level)
	}
	return nil
}

// defaultDir returns $env/slabtower, or ~/fallback/slabtower when env is unset.
func defaultDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(base, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), appName)
	}
	return filepath.Join(home, fallback, appName)
}
