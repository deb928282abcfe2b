package store

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/matzehuels/slabtower/pkg/errors"
	"github.com/matzehuels/slabtower/pkg/report"
)

// MemoryStore keeps reports in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	reports map[string]report.Report
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{reports: make(map[string]report.Report)}
}

func (s *MemoryStore) Save(_ context.Context, r *report.Report) error {
	if r == nil || r.ID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "report has no ID")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reports[r.ID] = *r
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*report.Report, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, notFound(id)
	}
	return &r, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*report.Report, error) {
	s.mu.RLock()
	out := make([]*report.Report, 0, len(s.reports))
	for _, r := range s.reports {
		out = append(out, &r)
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *report.Report) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := limitOrDefault(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
