package models

import (
	"strings"
	"time"

	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
)

// Default prices applied when an episode is created without explicit prices.
const (
	DefaultRentPrice int64 = 50
	DefaultBuyPrice  int64 = 100
)

// Episode is the priced item readers rent or buy. Prices are points.
// Invariant: 0 <= RentPrice <= BuyPrice, checked on construction and on every
// price update.
type Episode struct {
	ID        id.EpisodeID `json:"id"`
	WebtoonID id.WebtoonID `json:"webtoon_id"`
	Number    int          `json:"number"`
	Title     string       `json:"title"`
	RentPrice int64        `json:"rent_price"`
	BuyPrice  int64        `json:"buy_price"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// NewEpisode validates and constructs an episode. Nil prices take the defaults.
func NewEpisode(episodeID id.EpisodeID, webtoonID id.WebtoonID, number int, title string, rentPrice, buyPrice *int64, now time.Time) (*Episode, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, dErrors.Validation("episode title cannot be empty")
	}
	if number < 1 {
		return nil, dErrors.Validation("episode number must be positive")
	}
	rent, buy := DefaultRentPrice, DefaultBuyPrice
	if rentPrice != nil {
		rent = *rentPrice
	}
	if buyPrice != nil {
		buy = *buyPrice
	}
	if err := ValidatePrices(rent, buy); err != nil {
		return nil, err
	}
	return &Episode{
		ID:        episodeID,
		WebtoonID: webtoonID,
		Number:    number,
		Title:     title,
		RentPrice: rent,
		BuyPrice:  buy,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// UpdatePrices replaces both prices atomically. The episode is left untouched
// when the new pair is invalid.
func (e *Episode) UpdatePrices(rentPrice, buyPrice int64, now time.Time) error {
	if err := ValidatePrices(rentPrice, buyPrice); err != nil {
		return err
	}
	e.RentPrice = rentPrice
	e.BuyPrice = buyPrice
	e.UpdatedAt = now
	return nil
}

// ConversionPrice is what an active renter pays to keep the episode:
// the buy/rent difference, never negative.
func (e *Episode) ConversionPrice() int64 {
	return max(0, e.BuyPrice-e.RentPrice)
}

// ValidatePrices enforces the price invariant. Prices are never clamped.
func ValidatePrices(rentPrice, buyPrice int64) error {
	if rentPrice < 0 || buyPrice < 0 {
		return dErrors.Validation("prices cannot be negative")
	}
	if buyPrice < rentPrice {
		return dErrors.Validation("buy price cannot be lower than rent price")
	}
	return nil
}
