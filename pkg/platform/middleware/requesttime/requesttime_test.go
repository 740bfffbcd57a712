package requesttime

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"toonpass/pkg/platform/clock"
)

func TestMiddleware_StampsClockTime(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFrozen(t0)

	var captured time.Time
	handler := Middleware(clk)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = Now(r.Context(), nil)
		w.WriteHeader(http.StatusOK)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, t0, captured)
}

func TestMiddleware_TimeIsConsistentWithinRequest(t *testing.T) {
	clk := clock.NewFrozen(time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC))

	var first, second time.Time
	handler := Middleware(clk)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		first = Now(r.Context(), clk)
		clk.Advance(time.Minute)
		second = Now(r.Context(), clk)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, first, second)
}

func TestNow_FallsBackToClock(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, t0, Now(context.Background(), clock.NewFrozen(t0)))

	_, ok := FromContext(context.Background())
	assert.False(t, ok)
}

func TestWithTime(t *testing.T) {
	t0 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	ctx := WithTime(context.Background(), t0)

	got, ok := FromContext(ctx)
	assert.True(t, ok)
	assert.Equal(t, t0, got)
}
