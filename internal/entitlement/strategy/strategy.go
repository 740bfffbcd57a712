// Package strategy holds the entitlement variants. Each variant owns its
// price, its validity test and how its record is built, so the access
// service never inspects concrete record types.
package strategy

import (
	"context"
	"errors"
	"time"

	catalogmodels "toonpass/internal/catalog/models"
	"toonpass/internal/entitlement/models"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/sentinel"
)

// RentalFinder lists a reader's rentals of one episode, expired ones included.
type RentalFinder interface {
	ListByReaderAndEpisode(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) ([]*models.Rental, error)
}

// PurchaseFinder returns sentinel.ErrNotFound when the pair has no purchase.
type PurchaseFinder interface {
	FindByReaderAndEpisode(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (*models.Purchase, error)
}

// Lookup is the read side a strategy validates against. Inside a grant it is
// bound to the transaction's stores.
type Lookup struct {
	Rentals   RentalFinder
	Purchases PurchaseFinder
}

// Strategy is one way of obtaining access to an episode.
type Strategy interface {
	Kind() models.Kind
	Price(ep *catalogmodels.Episode) int64
	IsCurrentlyValid(ctx context.Context, lookup Lookup, readerID id.ReaderID, episodeID id.EpisodeID, now time.Time) (bool, error)
	// Materialize builds the record for a grant at now. It does not persist.
	Materialize(readerID id.ReaderID, ep *catalogmodels.Episode, now time.Time) models.Entitlement
}

// ForKind returns the strategy registered for kind.
func ForKind(kind models.Kind) (Strategy, error) {
	switch kind {
	case models.KindRental:
		return Rental{}, nil
	case models.KindPurchase:
		return Purchase{}, nil
	}
	return nil, dErrors.New(dErrors.CodeBadRequest, "unknown entitlement kind: "+string(kind))
}

// ActiveRental returns the most recent rental of the pair still active at now,
// or nil.
func ActiveRental(ctx context.Context, rentals RentalFinder, readerID id.ReaderID, episodeID id.EpisodeID, now time.Time) (*models.Rental, error) {
	list, err := rentals.ListByReaderAndEpisode(ctx, readerID, episodeID)
	if err != nil {
		return nil, err
	}
	var latest *models.Rental
	for _, r := range list {
		if !r.IsActive(now) {
			continue
		}
		if latest == nil || r.ExpiresAt.After(latest.ExpiresAt) {
			latest = r
		}
	}
	return latest, nil
}

// HasPurchase reports whether the pair has been purchased.
func HasPurchase(ctx context.Context, purchases PurchaseFinder, readerID id.ReaderID, episodeID id.EpisodeID) (bool, error) {
	_, err := purchases.FindByReaderAndEpisode(ctx, readerID, episodeID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sentinel.ErrNotFound) {
		return false, nil
	}
	return false, err
}
