package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/internal/audit"
	"toonpass/internal/reader/models"
	"toonpass/internal/reader/store"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/requesttime"
)

func TestRegisterAndGet(t *testing.T) {
	clk := clock.NewFrozen(time.Date(2026, 2, 2, 0, 0, 0, 0, time.UTC))
	auditStore := audit.NewInMemoryStore()
	svc := New(store.NewInMemory(), WithClock(clk), WithAuditPublisher(audit.NewPublisher(auditStore)))

	pinned := clk.Now().Add(time.Minute)
	ctx := requesttime.WithTime(context.Background(), pinned)
	r, err := svc.Register(ctx, "kim")
	require.NoError(t, err)
	assert.Equal(t, models.StartingPoints, r.Balance())
	assert.Equal(t, pinned, r.CreatedAt, "request time wins over the clock")

	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "kim", got.Nickname)

	events, err := auditStore.ListByReader(ctx, r.ID.String())
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, string(audit.EventReaderRegistered), events[0].Action)

	_, err = svc.Get(ctx, id.NewReaderID())
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))

	_, err = svc.Register(ctx, "")
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
