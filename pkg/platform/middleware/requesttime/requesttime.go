// Package requesttime pins a single "now" per HTTP request.
// All operations within a request (expiry checks, record timestamps, audit
// events) observe the same instant, taken from the injected clock.
package requesttime

import (
	"context"
	"net/http"
	"time"

	"toonpass/pkg/platform/clock"
)

type contextKeyRequestTime struct{}

// Middleware captures clk.Now() at the start of the request and stores it in
// the context.
func Middleware(clk clock.Clock) func(http.Handler) http.Handler {
	clk = clock.OrSystem(clk)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithTime(r.Context(), clk.Now())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// FromContext returns the request-scoped time, if one was set.
func FromContext(ctx context.Context) (time.Time, bool) {
	t, ok := ctx.Value(contextKeyRequestTime{}).(time.Time)
	return t, ok
}

// Now returns the request-scoped time, falling back to clk for non-HTTP
// callers (seeder, CLI, tests).
func Now(ctx context.Context, clk clock.Clock) time.Time {
	if t, ok := FromContext(ctx); ok {
		return t
	}
	return clock.OrSystem(clk).Now()
}

// WithTime injects a specific time into a context.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, contextKeyRequestTime{}, t)
}
