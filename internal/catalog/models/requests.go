package models

import (
	"strings"

	dErrors "toonpass/pkg/domain-errors"
)

// CreateEpisodeRequest is the payload for publishing a priced episode.
// Nil prices take the catalog defaults.
type CreateEpisodeRequest struct {
	WebtoonID string `json:"webtoon_id"`
	Number    int    `json:"number"`
	Title     string `json:"title"`
	RentPrice *int64 `json:"rent_price,omitempty"`
	BuyPrice  *int64 `json:"buy_price,omitempty"`
}

func (r *CreateEpisodeRequest) Normalize() {
	r.WebtoonID = strings.TrimSpace(r.WebtoonID)
	r.Title = strings.TrimSpace(r.Title)
}

func (r *CreateEpisodeRequest) Validate() error {
	if r.WebtoonID == "" {
		return dErrors.New(dErrors.CodeBadRequest, "webtoon_id is required")
	}
	if r.Title == "" {
		return dErrors.Validation("title is required")
	}
	return nil
}

// UpdatePricesRequest replaces both prices of an episode.
type UpdatePricesRequest struct {
	RentPrice *int64 `json:"rent_price"`
	BuyPrice  *int64 `json:"buy_price"`
}

func (r *UpdatePricesRequest) Validate() error {
	if r.RentPrice == nil || r.BuyPrice == nil {
		return dErrors.Validation("rent_price and buy_price are required")
	}
	return ValidatePrices(*r.RentPrice, *r.BuyPrice)
}
