package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/internal/catalog/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/sentinel"
)

func TestInMemoryEpisodeStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	webtoonID := id.NewWebtoonID()
	now := time.Now()

	second, err := models.NewEpisode(id.EpisodeID{}, webtoonID, 2, "Second", nil, nil, now)
	require.NoError(t, err)
	first, err := models.NewEpisode(id.EpisodeID{}, webtoonID, 1, "First", nil, nil, now)
	require.NoError(t, err)

	require.NoError(t, s.Create(ctx, second))
	require.NoError(t, s.Create(ctx, first))
	assert.False(t, first.ID.IsNil(), "store assigns an ID on create")
	require.ErrorIs(t, s.Create(ctx, first), sentinel.ErrAlreadyUsed)

	// Copies are returned; mutating one must not leak into the store.
	fetched, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	fetched.BuyPrice = 1
	again, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultBuyPrice, again.BuyPrice)

	require.NoError(t, again.UpdatePrices(10, 20, now))
	require.NoError(t, s.Update(ctx, again))
	updated, err := s.FindByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), updated.BuyPrice)

	list, err := s.ListByWebtoon(ctx, webtoonID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].Number)
	assert.Equal(t, 2, list[1].Number)

	_, err = s.FindByID(ctx, id.NewEpisodeID())
	require.ErrorIs(t, err, sentinel.ErrNotFound)
	require.ErrorIs(t, s.Update(ctx, &models.Episode{ID: id.NewEpisodeID()}), sentinel.ErrNotFound)
}
