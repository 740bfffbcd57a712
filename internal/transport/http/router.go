package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/request"
	"toonpass/pkg/platform/middleware/requesttime"
)

const (
	defaultMaxBodyBytes   = 1 << 20
	defaultRequestTimeout = 30 * time.Second
)

// Registrar mounts a bounded context's routes.
type Registrar interface {
	Register(r chi.Router)
}

// Config carries the transport-wide dependencies.
type Config struct {
	Logger         *slog.Logger
	Clock          clock.Clock
	Metrics        *request.Metrics
	MetricsHandler http.Handler
	Health         Registrar
	MaxBodyBytes   int64
	RequestTimeout time.Duration
}

// NewRouter wires the public API. Handlers only translate HTTP to service
// calls; probes and /metrics sit outside the JSON API group.
func NewRouter(cfg Config, api ...Registrar) http.Handler {
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = defaultMaxBodyBytes
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	r := chi.NewRouter()
	r.Use(request.Recovery(cfg.Logger))
	r.Use(request.RequestID)
	r.Use(request.Logger(cfg.Logger))
	r.Use(requesttime.Middleware(clock.OrSystem(cfg.Clock)))
	r.Use(request.Instrument(cfg.Metrics))

	if cfg.Health != nil {
		cfg.Health.Register(r)
	}
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Group(func(r chi.Router) {
		r.Use(chimiddleware.Timeout(cfg.RequestTimeout))
		r.Use(request.ContentTypeJSON)
		r.Use(request.BodyLimit(cfg.MaxBodyBytes))
		for _, reg := range api {
			reg.Register(r)
		}
	})

	return r
}
