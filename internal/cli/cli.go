// Package cli implements the slabtower command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/slabtower/pkg/cache"
	"github.com/matzehuels/slabtower/pkg/config"
	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/pipeline"
	"github.com/matzehuels/slabtower/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for cache key prefixes and display.
const appName = "slabtower"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and configuration.
// The configuration file is read when a command runs.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file and applies its log level unless
// --verbose was given.
func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	if c.verbose {
		c.SetLogLevel(LogDebug)
		return nil
	}
	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "log.level")
	}
	c.SetLogLevel(level)
	if cfg.Path != "" {
		c.Logger.Debug("loaded config", "path", cfg.Path)
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The returned function
// closes the cache and store and must be called when the command is done.
// Report storage is opened only when withStore is set.
func (c *CLI) newRunner(ctx context.Context, noCache, withStore bool) (*pipeline.Runner, func(), error) {
	ch, keyer, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, nil, err
	}
	var st store.Store
	if withStore {
		if st, err = c.newStore(ctx); err != nil {
			ch.Close()
			return nil, nil, err
		}
	}
	closeAll := func() {
		if err := ch.Close(); err != nil {
			c.Logger.Debug("close cache", "err", err)
		}
		if st != nil {
			if err := st.Close(); err != nil {
				c.Logger.Debug("close store", "err", err)
			}
		}
	}
	return pipeline.NewRunner(ch, keyer, st, c.Logger), closeAll, nil
}

// newCache opens the configured cache. An unreachable Redis server degrades
// to no caching instead of failing the command.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, cache.Keyer, error) {
	keyer := cache.NewDefaultKeyer()
	if noCache {
		return cache.NewNullCache(), keyer, nil
	}
	cfg := c.Config.Cache
	switch cfg.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), keyer, nil
	case config.CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: cfg.RedisAddr})
		if err != nil {
			c.Logger.Warn("redis unavailable, caching disabled", "addr", cfg.RedisAddr, "err", err)
			return cache.NewNullCache(), keyer, nil
		}
		return rc, cache.NewScopedKeyer(keyer, appName+":"), nil
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		return nil, nil, err
	}
	return fc, keyer, nil
}

// newStore opens the configured report store; nil when storage is disabled.
func (c *CLI) newStore(ctx context.Context) (store.Store, error) {
	cfg := c.Config.Store
	if cfg.Backend == config.StoreSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "create store directory")
		}
	}
	return store.Open(ctx, store.Config{
		Backend:  cfg.Backend,
		Path:     cfg.Path,
		MongoURI: cfg.MongoURI,
		Database: cfg.Database,
	})
}

// pipelineOptions applies the configured TTL to opts.
func (c *CLI) pipelineOptions(opts pipeline.Options) pipeline.Options {
	if opts.TTL == 0 {
		opts.TTL = c.Config.Cache.TTL.Duration
	}
	return opts
}
