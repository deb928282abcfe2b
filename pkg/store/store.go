// Package store persists analysis reports.
//
// A [Store] keeps reports by ID so they can be listed and fetched later,
// from the CLI (`slabtower reports`) or the HTTP API. Three backends exist:
//
//   - [MemoryStore]: process-local, used in tests and by `serve` when no
//     backend is configured.
//   - [SQLiteStore]: a single-file database for the CLI.
//   - [MongoStore]: a shared collection for server deployments.
//
// Every backend returns a NOT_FOUND error for unknown IDs and lists reports
// newest first.
package store

import (
	"context"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/report"
)

// DefaultListLimit is used when List is called with a non-positive limit.
const DefaultListLimit = 20

// Store persists reports.
type Store interface {
	// Save inserts r or replaces the report with the same ID.
	Save(ctx context.Context, r *report.Report) error
	// Get returns the report with the given ID.
	Get(ctx context.Context, id string) (*report.Report, error)
	// List returns up to limit reports, newest first.
	List(ctx context.Context, limit int) ([]*report.Report, error)
	Close() error
}

// Backend names accepted by [Open].
const (
	BackendNone   = "none"
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
)

// Config selects and configures a backend.
type Config struct {
	Backend  string
	Path     string // SQLite database file
	MongoURI string
	Database string // MongoDB database name
}

// Open creates the store described by cfg. BackendNone yields a nil Store
// and no error.
func Open(ctx context.Context, cfg Config) (Store, error) {
	switch cfg.Backend {
	case BackendNone, "":
		return nil, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	case BackendSQLite:
		s, err := OpenSQLite(cfg.Path)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMongo:
		s, err := OpenMongo(ctx, cfg.MongoURI, cfg.Database)
		if err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown store backend %q", cfg.Backend)
}

func notFound(id string) error {
	return errors.New(errors.ErrCodeNotFound, "report %s not found", id)
}

func limitOrDefault(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	return limit
}
