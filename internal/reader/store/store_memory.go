package store

import (
	"context"
	"sync"

	"toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

// InMemory stores readers in process memory with the same version semantics
// as the SQL store.
type InMemory struct {
	mu      sync.RWMutex
	readers map[id.ReaderID]*models.Reader
}

func NewInMemory() *InMemory {
	return &InMemory{readers: make(map[id.ReaderID]*models.Reader)}
}

func (s *InMemory) Create(_ context.Context, r *models.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsNil() {
		r.ID = id.NewReaderID()
	}
	if _, exists := s.readers[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	r.Version = 1
	stored := *r
	s.readers[r.ID] = &stored
	return nil
}

func (s *InMemory) FindByID(_ context.Context, readerID id.ReaderID) (*models.Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.readers[readerID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *r
	return &out, nil
}

// FindByIDForUpdate is FindByID; in memory the caller's per-reader lock
// already excludes other writers.
func (s *InMemory) FindByIDForUpdate(ctx context.Context, readerID id.ReaderID) (*models.Reader, error) {
	return s.FindByID(ctx, readerID)
}

// Update persists r when r.Version matches the stored version, then bumps
// the version on both. A stale version yields sentinel.ErrConflict.
func (s *InMemory) Update(_ context.Context, r *models.Reader) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.readers[r.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if current.Version != r.Version {
		return sentinel.ErrConflict
	}
	r.Version++
	stored := *r
	s.readers[r.ID] = &stored
	return nil
}

func (s *InMemory) List(_ context.Context) ([]*models.Reader, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Reader, 0, len(s.readers))
	for _, r := range s.readers {
		cp := *r
		out = append(out, &cp)
	}
	return out, nil
}
