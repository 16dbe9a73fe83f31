// Package store persists run history: the model, options and validation
// report of each generate-and-validate run, keyed by run ID.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/semforge/go-semforge/model"
	"github.com/semforge/go-semforge/validation"
)

// ErrNotFound is returned when a run ID has no record.
var ErrNotFound = errors.New("store: run not found")

// Run is one persisted run record.
type Run struct {
	ID           string             `json:"id"`
	CreatedAt    time.Time          `json:"createdAt"`
	Seed         int64              `json:"seed"`
	SampleSize   int                `json:"sampleSize"`
	OverallValid bool               `json:"overallValid"`
	Model        *model.Model       `json:"model"`
	Report       *validation.Report `json:"report"`
}

// Store is the run-history contract. List returns runs newest first.
type Store interface {
	Save(ctx context.Context, run *Run) error
	Get(ctx context.Context, id string) (*Run, error)
	List(ctx context.Context, limit int) ([]*Run, error)
	Delete(ctx context.Context, id string) error
	Close() error
}

// MemoryStore is an in-process Store, safe for concurrent use. Useful for
// tests and for callers that do not need persistence across processes.
type MemoryStore struct {
	mu   sync.RWMutex
	runs map[string]*Run
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{runs: make(map[string]*Run)}
}

func (s *MemoryStore) Save(_ context.Context, run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *run
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = time.Now().UTC()
	}
	s.runs[cp.ID] = &cp
	return nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	run, ok := s.runs[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *run
	return &cp, nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Run, 0, len(s.runs))
	for _, run := range s.runs {
		cp := *run
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.runs[id]; !ok {
		return ErrNotFound
	}
	delete(s.runs, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }
