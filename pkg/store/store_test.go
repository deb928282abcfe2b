package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/query"
	"github.com/matzehuels/slabtower/pkg/report"
)

func sampleReport(id string, created time.Time) *report.Report {
	return &report.Report{
		ID:         id,
		CreatedAt:  created.UTC(),
		InputHash:  "hash-" + id,
		BrickCount: 7,
		Moved:      5,
		MaxHeight:  6,
		Removable:  5,
		CascadeSum: 7,
		Stats:      query.Stats{Mean: 1, StdDev: 2.2360679775, Max: 6, Worst: 0},
		Bricks: []report.BrickReport{
			{ID: 0, Start: "1,0,1", End: "1,2,1", Bottom: 1, Top: 1, Supported: []int{1, 2}, Cascade: 6},
		},
	}
}

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	base := time.Date(2024, 12, 22, 10, 0, 0, 0, time.UTC)

	_, err := s.Get(ctx, "missing")
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound), "Get(missing) error = %v", err)

	first := sampleReport("a", base)
	second := sampleReport("b", base.Add(time.Minute))
	third := sampleReport("c", base.Add(2*time.Minute))
	for _, r := range []*report.Report{first, second, third} {
		require.NoError(t, s.Save(ctx, r))
	}

	got, err := s.Get(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, second.InputHash, got.InputHash)
	assert.Equal(t, 7, got.CascadeSum)
	assert.True(t, second.CreatedAt.Equal(got.CreatedAt))
	require.Len(t, got.Bricks, 1)
	assert.Equal(t, []int{1, 2}, got.Bricks[0].Supported)

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "c", list[0].ID)
	assert.Equal(t, "b", list[1].ID)
	assert.Equal(t, "a", list[2].ID)

	list, err = s.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	updated := sampleReport("a", base.Add(time.Hour))
	updated.Removable = 1
	require.NoError(t, s.Save(ctx, updated))
	got, err = s.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Removable)

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "a", list[0].ID)

	err = s.Save(ctx, &report.Report{})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "reports.db")
	s, err := OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	exerciseStore(t, s)
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "reports.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Save(ctx, sampleReport("persisted", time.Now())))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.Get(ctx, "persisted")
	require.NoError(t, err)
	assert.Equal(t, "hash-persisted", got.InputHash)
}

func TestMongoStore(t *testing.T) {
	uri := os.Getenv("SLABTOWER_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("SLABTOWER_TEST_MONGO_URI not set")
	}
	ctx := context.Background()
	db := "slabtower_test_" + time.Now().Format("20060102150405")
	s, err := OpenMongo(ctx, uri, db)
	require.NoError(t, err)
	defer func() {
		_ = s.client.Database(db).Drop(ctx)
		_ = s.Close()
	}()
	exerciseStore(t, s)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Backend: BackendNone})
	require.NoError(t, err)
	assert.Nil(t, s)

	s, err = Open(ctx, Config{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Config{Backend: BackendSQLite, Path: filepath.Join(t.TempDir(), "r.db")})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, Config{Backend: "postgres"})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))

	_, err = Open(ctx, Config{Backend: BackendSQLite})
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidConfig))
}
