package service

import (
	"context"
	"errors"
	"log/slog"

	"toonpass/internal/audit"
	"toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/requesttime"
	"toonpass/pkg/platform/sentinel"
)

// Store defines the persistence interface for readers.
// Error Contract:
// - FindByID returns sentinel.ErrNotFound when no record exists
type Store interface {
	Create(ctx context.Context, r *models.Reader) error
	FindByID(ctx context.Context, readerID id.ReaderID) (*models.Reader, error)
	List(ctx context.Context) ([]*models.Reader, error)
}

type Option func(*Service)

// Service registers readers and reads their wallets. Balance changes go
// through the entitlement and points services.
type Service struct {
	store   Store
	auditor *audit.Publisher
	logger  *slog.Logger
	clock   clock.Clock
}

func New(store Store, opts ...Option) *Service {
	svc := &Service{store: store, clock: clock.System{}}
	for _, opt := range opts {
		opt(svc)
	}
	return svc
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(p *audit.Publisher) Option {
	return func(s *Service) {
		s.auditor = p
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = clock.OrSystem(c)
	}
}

// Register creates a reader with the starting balance.
func (s *Service) Register(ctx context.Context, nickname string) (*models.Reader, error) {
	r, err := models.NewReader(id.ReaderID{}, nickname, requesttime.Now(ctx, s.clock))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, r); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register reader")
	}
	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, audit.Event{
			Timestamp: r.CreatedAt,
			ReaderID:  r.ID.String(),
			Action:    string(audit.EventReaderRegistered),
			Balance:   r.Balance(),
		})
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "reader registered", "reader_id", r.ID.String(), "points", r.Balance())
	}
	return r, nil
}

func (s *Service) Get(ctx context.Context, readerID id.ReaderID) (*models.Reader, error) {
	r, err := s.store.FindByID(ctx, readerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "reader not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reader")
	}
	return r, nil
}

func (s *Service) List(ctx context.Context) ([]*models.Reader, error) {
	readers, err := s.store.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list readers")
	}
	return readers, nil
}
