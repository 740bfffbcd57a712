package strategy

import (
	"context"
	"time"

	catalogmodels "toonpass/internal/catalog/models"
	"toonpass/internal/entitlement/models"
	id "toonpass/pkg/domain"
)

// Rental grants access for models.RentalDuration at the rent price.
type Rental struct{}

func (Rental) Kind() models.Kind { return models.KindRental }

func (Rental) Price(ep *catalogmodels.Episode) int64 { return ep.RentPrice }

// IsCurrentlyValid is true while any rental of the pair expires after now.
func (Rental) IsCurrentlyValid(ctx context.Context, lookup Lookup, readerID id.ReaderID, episodeID id.EpisodeID, now time.Time) (bool, error) {
	active, err := ActiveRental(ctx, lookup.Rentals, readerID, episodeID, now)
	if err != nil {
		return false, err
	}
	return active != nil, nil
}

func (Rental) Materialize(readerID id.ReaderID, ep *catalogmodels.Episode, now time.Time) models.Entitlement {
	return models.NewRental(readerID, ep.ID, ep.RentPrice, now)
}
