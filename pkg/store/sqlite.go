package store

import (
	"context"
	"database/sql"
	stderrors "errors"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/report"
)

// SQLiteStore keeps reports in a SQLite file. The full report is stored as
// JSON next to a few indexed columns used for listing.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS reports (
			id          TEXT PRIMARY KEY,
			created_at  INTEGER NOT NULL,
			input_hash  TEXT NOT NULL,
			brick_count INTEGER NOT NULL,
			removable   INTEGER NOT NULL,
			cascade_sum INTEGER NOT NULL,
			body        BLOB NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS reports_created_at ON reports(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS reports_input_hash ON reports(input_hash);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Save(ctx context.Context, r *report.Report) error {
	if r == nil || r.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "report has no ID")
	}
	body, err := report.Marshal(r)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, created_at, input_hash, brick_count, removable, cascade_sum, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			created_at=excluded.created_at, input_hash=excluded.input_hash,
			brick_count=excluded.brick_count, removable=excluded.removable,
			cascade_sum=excluded.cascade_sum, body=excluded.body`,
		r.ID, r.CreatedAt.UnixNano(), r.InputHash, r.BrickCount, r.Removable, r.CascadeSum, body)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "save report %s", r.ID)
	}
	return nil
}

func (s *SQLiteStore) Get(ctx context.Context, id string) (*report.Report, error) {
	var body []byte
	err := s.db.QueryRowContext(ctx, `SELECT body FROM reports WHERE id = ?`, id).Scan(&body)
	if stderrors.Is(err, sql.ErrNoRows) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "get report %s", id)
	}
	return report.Unmarshal(body)
}

func (s *SQLiteStore) List(ctx context.Context, limit int) ([]*report.Report, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT body FROM reports ORDER BY created_at DESC, id ASC LIMIT ?`, limitOrDefault(limit))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list reports")
	}
	defer rows.Close()

	var out []*report.Report
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "scan report")
		}
		r, err := report.Unmarshal(body)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list reports")
	}
	return out, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

var _ Store = (*SQLiteStore)(nil)
