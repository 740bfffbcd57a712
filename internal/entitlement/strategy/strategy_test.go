package strategy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	catalogmodels "toonpass/internal/catalog/models"
	"toonpass/internal/entitlement/models"
	"toonpass/internal/entitlement/store"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
)

func TestForKind(t *testing.T) {
	s, err := ForKind(models.KindRental)
	require.NoError(t, err)
	assert.Equal(t, Rental{}, s)

	s, err = ForKind(models.KindPurchase)
	require.NoError(t, err)
	assert.Equal(t, Purchase{}, s)

	_, err = ForKind("subscription")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestPriceAndMaterialize(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	readerID := id.NewReaderID()
	ep := &catalogmodels.Episode{ID: id.NewEpisodeID(), RentPrice: 50, BuyPrice: 100}

	assert.Equal(t, int64(50), Rental{}.Price(ep))
	assert.Equal(t, int64(100), Purchase{}.Price(ep))

	rental, ok := Rental{}.Materialize(readerID, ep, now).(*models.Rental)
	require.True(t, ok)
	assert.Equal(t, int64(50), rental.PricePaid)
	assert.Equal(t, now.Add(models.RentalDuration), rental.ExpiresAt)

	purchase, ok := Purchase{}.Materialize(readerID, ep, now).(*models.Purchase)
	require.True(t, ok)
	assert.Equal(t, int64(100), purchase.PricePaid)
	assert.Equal(t, models.Key{ReaderID: readerID, EpisodeID: ep.ID}, purchase.Key())
}

func TestIsCurrentlyValid(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rentals := store.NewInMemoryRentals()
	purchases := store.NewInMemoryPurchases()
	lookup := Lookup{Rentals: rentals, Purchases: purchases}
	readerID, episodeID := id.NewReaderID(), id.NewEpisodeID()

	ok, err := Rental{}.IsCurrentlyValid(ctx, lookup, readerID, episodeID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, rentals.Create(ctx, models.NewRental(readerID, episodeID, 50, now)))
	ok, err = Rental{}.IsCurrentlyValid(ctx, lookup, readerID, episodeID, now.Add(9*time.Minute))
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = Rental{}.IsCurrentlyValid(ctx, lookup, readerID, episodeID, now.Add(models.RentalDuration))
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = Purchase{}.IsCurrentlyValid(ctx, lookup, readerID, episodeID, now)
	require.NoError(t, err)
	assert.False(t, ok)
	require.NoError(t, purchases.Create(ctx, models.NewPurchase(readerID, episodeID, 100, now)))
	ok, err = Purchase{}.IsCurrentlyValid(ctx, lookup, readerID, episodeID, now.Add(365*24*time.Hour))
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestActiveRentalPicksLatest(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	rentals := store.NewInMemoryRentals()
	readerID, episodeID := id.NewReaderID(), id.NewEpisodeID()

	require.NoError(t, rentals.Create(ctx, models.NewRental(readerID, episodeID, 50, now)))
	require.NoError(t, rentals.Create(ctx, models.NewRental(readerID, episodeID, 50, now.Add(4*time.Minute))))

	active, err := ActiveRental(ctx, rentals, readerID, episodeID, now.Add(5*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, now.Add(14*time.Minute), active.ExpiresAt)

	active, err = ActiveRental(ctx, rentals, readerID, episodeID, now.Add(time.Hour))
	require.NoError(t, err)
	assert.Nil(t, active)
}
