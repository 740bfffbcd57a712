package models

import (
	"context"
	"time"

	id "toonpass/pkg/domain"
)

// Purchase is a permanent entitlement. At most one exists per Key.
type Purchase struct {
	ID          id.PurchaseID `json:"id"`
	ReaderID    id.ReaderID   `json:"reader_id"`
	EpisodeID   id.EpisodeID  `json:"episode_id"`
	PricePaid   int64         `json:"price_paid"`
	PurchasedAt time.Time     `json:"purchased_at"`
}

func NewPurchase(readerID id.ReaderID, episodeID id.EpisodeID, pricePaid int64, now time.Time) *Purchase {
	return &Purchase{
		ReaderID:    readerID,
		EpisodeID:   episodeID,
		PricePaid:   pricePaid,
		PurchasedAt: now,
	}
}

func (p *Purchase) Kind() Kind   { return KindPurchase }
func (p *Purchase) Key() Key     { return Key{ReaderID: p.ReaderID, EpisodeID: p.EpisodeID} }
func (p *Purchase) Paid() int64  { return p.PricePaid }
func (p *Purchase) entitlement() {}

func (p *Purchase) SaveTo(ctx context.Context, rec Recorder) error {
	return rec.RecordPurchase(ctx, p)
}
