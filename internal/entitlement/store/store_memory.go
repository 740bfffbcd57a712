package store

import (
	"context"
	"slices"
	"strings"
	"sync"

	"toonpass/internal/entitlement/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

// InMemoryRentals is an append-only rental store.
type InMemoryRentals struct {
	mu       sync.RWMutex
	rentals  map[id.RentalID]*models.Rental
	byReader map[id.ReaderID][]id.RentalID
}

func NewInMemoryRentals() *InMemoryRentals {
	return &InMemoryRentals{
		rentals:  make(map[id.RentalID]*models.Rental),
		byReader: make(map[id.ReaderID][]id.RentalID),
	}
}

// Create stores r and assigns its ID.
func (s *InMemoryRentals) Create(_ context.Context, r *models.Rental) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID.IsNil() {
		r.ID = id.NewRentalID()
	}
	if _, exists := s.rentals[r.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	stored := *r
	s.rentals[r.ID] = &stored
	s.byReader[r.ReaderID] = append(s.byReader[r.ReaderID], r.ID)
	return nil
}

func (s *InMemoryRentals) FindByID(_ context.Context, rentalID id.RentalID) (*models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rentals[rentalID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *r
	return &out, nil
}

// ListByReader returns every rental of the reader ordered by RentedAt, then ID.
func (s *InMemoryRentals) ListByReader(_ context.Context, readerID id.ReaderID) ([]*models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(readerID, func(*models.Rental) bool { return true }), nil
}

func (s *InMemoryRentals) ListByReaderAndEpisode(_ context.Context, readerID id.ReaderID, episodeID id.EpisodeID) ([]*models.Rental, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.collect(readerID, func(r *models.Rental) bool { return r.EpisodeID == episodeID }), nil
}

func (s *InMemoryRentals) collect(readerID id.ReaderID, keep func(*models.Rental) bool) []*models.Rental {
	var out []*models.Rental
	for _, rentalID := range s.byReader[readerID] {
		r := s.rentals[rentalID]
		if keep(r) {
			cp := *r
			out = append(out, &cp)
		}
	}
	SortRentals(out)
	return out
}

// SortRentals orders rentals by RentedAt, then ID.
func SortRentals(rentals []*models.Rental) {
	slices.SortStableFunc(rentals, func(a, b *models.Rental) int {
		if c := a.RentedAt.Compare(b.RentedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
}

// InMemoryPurchases enforces one purchase per (reader, episode).
type InMemoryPurchases struct {
	mu        sync.RWMutex
	purchases map[id.PurchaseID]*models.Purchase
	byKey     map[models.Key]id.PurchaseID
	byReader  map[id.ReaderID][]id.PurchaseID
}

func NewInMemoryPurchases() *InMemoryPurchases {
	return &InMemoryPurchases{
		purchases: make(map[id.PurchaseID]*models.Purchase),
		byKey:     make(map[models.Key]id.PurchaseID),
		byReader:  make(map[id.ReaderID][]id.PurchaseID),
	}
}

// Create stores p and assigns its ID. A second purchase of the same pair
// returns sentinel.ErrAlreadyUsed.
func (s *InMemoryPurchases) Create(_ context.Context, p *models.Purchase) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.byKey[p.Key()]; exists {
		return sentinel.ErrAlreadyUsed
	}
	if p.ID.IsNil() {
		p.ID = id.NewPurchaseID()
	}
	if _, exists := s.purchases[p.ID]; exists {
		return sentinel.ErrAlreadyUsed
	}
	stored := *p
	s.purchases[p.ID] = &stored
	s.byKey[p.Key()] = p.ID
	s.byReader[p.ReaderID] = append(s.byReader[p.ReaderID], p.ID)
	return nil
}

func (s *InMemoryPurchases) FindByID(_ context.Context, purchaseID id.PurchaseID) (*models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.purchases[purchaseID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *p
	return &out, nil
}

func (s *InMemoryPurchases) FindByReaderAndEpisode(_ context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (*models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	purchaseID, ok := s.byKey[models.Key{ReaderID: readerID, EpisodeID: episodeID}]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	out := *s.purchases[purchaseID]
	return &out, nil
}

// ListByReader returns the reader's purchases ordered by PurchasedAt, then ID.
func (s *InMemoryPurchases) ListByReader(_ context.Context, readerID id.ReaderID) ([]*models.Purchase, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*models.Purchase
	for _, purchaseID := range s.byReader[readerID] {
		cp := *s.purchases[purchaseID]
		out = append(out, &cp)
	}
	slices.SortStableFunc(out, func(a, b *models.Purchase) int {
		if c := a.PurchasedAt.Compare(b.PurchasedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out, nil
}
