package store

import (
	"context"
	"sort"
	"sync"

	"toonpass/internal/points/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

// InMemory keeps payment history per reader.
type InMemory struct {
	mu       sync.RWMutex
	byReader map[id.ReaderID][]*models.Payment
	ids      map[id.PaymentID]struct{}
}

func NewInMemory() *InMemory {
	return &InMemory{
		byReader: make(map[id.ReaderID][]*models.Payment),
		ids:      make(map[id.PaymentID]struct{}),
	}
}

func (s *InMemory) Create(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID.IsNil() {
		p.ID = id.NewPaymentID()
	}
	if _, exists := s.ids[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	stored := *p
	s.ids[p.ID] = struct{}{}
	s.byReader[p.ReaderID] = append(s.byReader[p.ReaderID], &stored)
	return nil
}

// ListByReader returns the reader's payments newest first.
func (s *InMemory) ListByReader(_ context.Context, readerID id.ReaderID) ([]*models.Payment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Payment, 0, len(s.byReader[readerID]))
	for _, p := range s.byReader[readerID] {
		cp := *p
		out = append(out, &cp)
	}
	SortNewestFirst(out)
	return out, nil
}

// SortNewestFirst orders by creation time descending. Equal times keep their
// relative order.
func SortNewestFirst(payments []*models.Payment) {
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
}
