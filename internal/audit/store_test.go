package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/pkg/testutil"
)

func TestAuditStores(t *testing.T) {
	t.Run("memory", func(t *testing.T) {
		exerciseStore(t, NewInMemoryStore())
	})
	t.Run("sql", func(t *testing.T) {
		_, db := testutil.SQLite(t)
		exerciseStore(t, NewPostgresStore(db))
	})
}

func exerciseStore(t *testing.T, s Store) {
	ctx := context.Background()
	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.Append(ctx, Event{
		Timestamp: at, ReaderID: "r1", EpisodeID: "e1", Action: string(EventRentalGranted),
		Kind: "rental", Points: 50, Balance: 950, Decision: DecisionGranted, RequestID: "req-1",
	}))
	require.NoError(t, s.Append(ctx, Event{
		Timestamp: at.Add(time.Minute), ReaderID: "r1", EpisodeID: "e1", Action: string(EventRentalConverted),
		Kind: "purchase", Points: 50, Balance: 900, Decision: DecisionGranted,
	}))
	require.NoError(t, s.Append(ctx, Event{Timestamp: at, ReaderID: "r2", Action: string(EventReaderRegistered)}))

	events, err := s.ListByReader(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, string(EventRentalGranted), events[0].Action)
	assert.True(t, at.Equal(events[0].Timestamp))
	assert.Equal(t, int64(950), events[0].Balance)
	assert.Equal(t, "req-1", events[0].RequestID)
	assert.Equal(t, string(EventRentalConverted), events[1].Action)
}
