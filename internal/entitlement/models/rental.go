package models

import (
	"context"
	"time"

	id "toonpass/pkg/domain"
)

// RentalDuration is how long a rental grants access.
const RentalDuration = 10 * time.Minute

// RentalStatus is derived from the clock on every read; it is never stored.
type RentalStatus string

const (
	RentalActive  RentalStatus = "ACTIVE"
	RentalExpired RentalStatus = "EXPIRED"
)

// Rental is a time-boxed entitlement.
type Rental struct {
	ID        id.RentalID  `json:"id"`
	ReaderID  id.ReaderID  `json:"reader_id"`
	EpisodeID id.EpisodeID `json:"episode_id"`
	PricePaid int64        `json:"price_paid"`
	RentedAt  time.Time    `json:"rented_at"`
	ExpiresAt time.Time    `json:"expires_at"`
}

// NewRental starts a rental at now. The ID is assigned by the store.
func NewRental(readerID id.ReaderID, episodeID id.EpisodeID, pricePaid int64, now time.Time) *Rental {
	return &Rental{
		ReaderID:  readerID,
		EpisodeID: episodeID,
		PricePaid: pricePaid,
		RentedAt:  now,
		ExpiresAt: now.Add(RentalDuration),
	}
}

// IsActive is true strictly before ExpiresAt; at ExpiresAt the rental is over.
func (r *Rental) IsActive(now time.Time) bool {
	return now.Before(r.ExpiresAt)
}

func (r *Rental) Status(now time.Time) RentalStatus {
	if r.IsActive(now) {
		return RentalActive
	}
	return RentalExpired
}

// Remaining is the access time left, never negative.
func (r *Rental) Remaining(now time.Time) time.Duration {
	if !r.IsActive(now) {
		return 0
	}
	return r.ExpiresAt.Sub(now)
}

func (r *Rental) Kind() Kind   { return KindRental }
func (r *Rental) Key() Key     { return Key{ReaderID: r.ReaderID, EpisodeID: r.EpisodeID} }
func (r *Rental) Paid() int64  { return r.PricePaid }
func (r *Rental) entitlement() {}

func (r *Rental) SaveTo(ctx context.Context, rec Recorder) error {
	return rec.RecordRental(ctx, r)
}
