package strategy

import (
	"context"
	"time"

	catalogmodels "toonpass/internal/catalog/models"
	"toonpass/internal/entitlement/models"
	id "toonpass/pkg/domain"
)

// Purchase grants permanent access at the buy price. The recorded price is
// always the buy price, also when a rental conversion charged only the
// difference.
type Purchase struct{}

func (Purchase) Kind() models.Kind { return models.KindPurchase }

func (Purchase) Price(ep *catalogmodels.Episode) int64 { return ep.BuyPrice }

func (Purchase) IsCurrentlyValid(ctx context.Context, lookup Lookup, readerID id.ReaderID, episodeID id.EpisodeID, _ time.Time) (bool, error) {
	return HasPurchase(ctx, lookup.Purchases, readerID, episodeID)
}

func (Purchase) Materialize(readerID id.ReaderID, ep *catalogmodels.Episode, now time.Time) models.Entitlement {
	return models.NewPurchase(readerID, ep.ID, ep.BuyPrice, now)
}
