package audit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/request"
	"toonpass/pkg/platform/middleware/requesttime"
)

// Publisher records monetization events. In async mode Emit never blocks the
// grant path: a full buffer drops the event and counts it.
type Publisher struct {
	store  Store
	clock  clock.Clock
	logger *slog.Logger

	events chan Event
	wg     sync.WaitGroup
	// mu guards closed against a send on the closed events channel.
	mu     sync.RWMutex
	closed bool

	dropped        prometheus.Counter
	persistFailure prometheus.Counter
}

type PublisherOption func(*Publisher)

// WithAsyncBuffer persists events from a background goroutine fed by a
// buffer of size events. Close drains it.
func WithAsyncBuffer(size int) PublisherOption {
	return func(p *Publisher) {
		if size > 0 {
			p.events = make(chan Event, size)
		}
	}
}

func WithPublisherLogger(logger *slog.Logger) PublisherOption {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithPublisherClock stamps events that carry neither a timestamp nor a
// request time.
func WithPublisherClock(c clock.Clock) PublisherOption {
	return func(p *Publisher) {
		p.clock = c
	}
}

// WithPublisherMetrics counts dropped and unpersisted events on reg.
func WithPublisherMetrics(reg prometheus.Registerer) PublisherOption {
	return func(p *Publisher) {
		f := promauto.With(reg)
		p.dropped = f.NewCounter(prometheus.CounterOpts{
			Name: "toonpass_audit_events_dropped_total",
			Help: "Audit events dropped because the async buffer was full",
		})
		p.persistFailure = f.NewCounter(prometheus.CounterOpts{
			Name: "toonpass_audit_persist_failures_total",
			Help: "Audit events the store failed to append",
		})
	}
}

func NewPublisher(store Store, opts ...PublisherOption) *Publisher {
	p := &Publisher{store: store}
	for _, opt := range opts {
		opt(p)
	}
	p.clock = clock.OrSystem(p.clock)
	if p.events != nil {
		p.wg.Add(1)
		go p.drain()
	}
	return p
}

func (p *Publisher) drain() {
	defer p.wg.Done()
	for event := range p.events {
		p.persist(context.Background(), event)
	}
}

func (p *Publisher) persist(ctx context.Context, event Event) {
	err := p.store.Append(ctx, event)
	if err == nil {
		return
	}
	if p.persistFailure != nil {
		p.persistFailure.Inc()
	}
	if p.logger != nil {
		p.logger.ErrorContext(ctx, "failed to persist audit event",
			"error", err,
			"action", event.Action,
			"reader_id", event.ReaderID,
		)
	}
}

// Close stops the async buffer and waits for it to drain. Events emitted
// afterwards are appended synchronously. It is safe to call more than once.
func (p *Publisher) Close() {
	p.mu.Lock()
	if p.closed || p.events == nil {
		p.closed = true
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.events)
	p.mu.Unlock()
	p.wg.Wait()
}

// Emit fills the timestamp and request ID from ctx when unset, then records
// the event. Synchronous publishers return the store error.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = requesttime.Now(ctx, p.clock)
	}
	if event.RequestID == "" {
		event.RequestID = request.GetRequestID(ctx)
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.events == nil || p.closed {
		return p.store.Append(ctx, event)
	}
	select {
	case p.events <- event:
	default:
		if p.dropped != nil {
			p.dropped.Inc()
		}
		if p.logger != nil {
			p.logger.WarnContext(ctx, "audit buffer full, event dropped",
				"action", event.Action,
				"reader_id", event.ReaderID,
			)
		}
	}
	return nil
}

// List returns the events recorded for a reader in append order.
func (p *Publisher) List(ctx context.Context, readerID string) ([]Event, error) {
	return p.store.ListByReader(ctx, readerID)
}
