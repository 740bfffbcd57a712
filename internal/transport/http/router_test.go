package httptransport

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/request"
	"toonpass/pkg/platform/middleware/requesttime"
)

type fakeRegistrar struct {
	seen time.Time
}

func (f *fakeRegistrar) Register(r chi.Router) {
	r.Post("/echo", func(w http.ResponseWriter, req *http.Request) {
		f.seen = requesttime.Now(req.Context(), nil)
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/boom", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
}

type fakeHealth struct{}

func (fakeHealth) Register(r chi.Router) {
	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func newTestRouter(t *testing.T) (http.Handler, *fakeRegistrar, time.Time) {
	t.Helper()
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	reg := prometheus.NewRegistry()
	api := &fakeRegistrar{}
	h := NewRouter(Config{
		Logger:         slog.New(slog.DiscardHandler),
		Clock:          clock.NewFrozen(now),
		Metrics:        request.NewMetricsWithRegisterer(reg),
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		Health:         fakeHealth{},
		MaxBodyBytes:   64,
	}, api)
	return h, api, now
}

func TestRouter(t *testing.T) {
	t.Run("stamps request time from the clock", func(t *testing.T) {
		h, api, now := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, now, api.seen)
		assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
	})

	t.Run("rejects non-JSON bodies", func(t *testing.T) {
		h, _, _ := newTestRouter(t)
		req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/plain")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})

	t.Run("recovers from handler panics", func(t *testing.T) {
		h, _, _ := newTestRouter(t)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})

	t.Run("serves probes and metrics outside the API group", func(t *testing.T) {
		h, _, _ := newTestRouter(t)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/live", nil))
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
