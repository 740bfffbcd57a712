package service

import (
	"context"
	"errors"
	"log/slog"

	"toonpass/internal/audit"
	"toonpass/internal/catalog/models"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/requesttime"
	"toonpass/pkg/platform/sentinel"
)

// Store defines the persistence interface for episodes.
// Error Contract:
// - FindByID and Update return sentinel.ErrNotFound when no record exists
// - Create returns sentinel.ErrAlreadyUsed when the ID is taken
type Store interface {
	Create(ctx context.Context, ep *models.Episode) error
	Update(ctx context.Context, ep *models.Episode) error
	FindByID(ctx context.Context, episodeID id.EpisodeID) (*models.Episode, error)
	ListByWebtoon(ctx context.Context, webtoonID id.WebtoonID) ([]*models.Episode, error)
}

// PriceChangeHook is notified after an episode's prices are persisted.
type PriceChangeHook func(ctx context.Context, episodeID id.EpisodeID)

type Option func(*Service)

// Service owns episode pricing. Prices only change through UpdatePrices.
type Service struct {
	store   Store
	auditor *audit.Publisher
	logger  *slog.Logger
	clock   clock.Clock
	hooks   []PriceChangeHook
}

func New(store Store, opts ...Option) *Service {
	svc := &Service{
		store: store,
		clock: clock.System{},
	}
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

// WithPriceChangeHook registers a hook run after every successful price update.
func WithPriceChangeHook(h PriceChangeHook) Option {
	return func(s *Service) {
		if h != nil {
			s.hooks = append(s.hooks, h)
		}
	}
}

func (s *Service) CreateEpisode(ctx context.Context, req *models.CreateEpisodeRequest) (*models.Episode, error) {
	webtoonID, err := id.ParseWebtoonID(req.WebtoonID)
	if err != nil {
		return nil, err
	}
	ep, err := models.NewEpisode(id.EpisodeID{}, webtoonID, req.Number, req.Title, req.RentPrice, req.BuyPrice, requesttime.Now(ctx, s.clock))
	if err != nil {
		return nil, err
	}
	if err := s.store.Create(ctx, ep); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, dErrors.New(dErrors.CodeConflict, "episode already exists")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create episode")
	}
	s.log(ctx, "episode_created", ep)
	return ep, nil
}

func (s *Service) GetEpisode(ctx context.Context, episodeID id.EpisodeID) (*models.Episode, error) {
	ep, err := s.store.FindByID(ctx, episodeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "episode not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load episode")
	}
	return ep, nil
}

func (s *Service) ListEpisodes(ctx context.Context, webtoonID id.WebtoonID) ([]*models.Episode, error) {
	eps, err := s.store.ListByWebtoon(ctx, webtoonID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list episodes")
	}
	return eps, nil
}

// UpdatePrices replaces both prices. An invalid pair is rejected with a
// validation error and nothing is written.
func (s *Service) UpdatePrices(ctx context.Context, episodeID id.EpisodeID, rentPrice, buyPrice int64) (*models.Episode, error) {
	ep, err := s.GetEpisode(ctx, episodeID)
	if err != nil {
		return nil, err
	}
	if err := ep.UpdatePrices(rentPrice, buyPrice, requesttime.Now(ctx, s.clock)); err != nil {
		return nil, err
	}
	if err := s.store.Update(ctx, ep); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "episode not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to update episode prices")
	}
	for _, h := range s.hooks {
		h(ctx, episodeID)
	}
	if s.auditor != nil {
		_ = s.auditor.Emit(ctx, audit.Event{
			Timestamp: ep.UpdatedAt,
			EpisodeID: episodeID.String(),
			Action:    string(audit.EventEpisodePricesUpdated),
			Points:    ep.BuyPrice,
		})
	}
	s.log(ctx, "episode_prices_updated", ep)
	return ep, nil
}

func (s *Service) log(ctx context.Context, msg string, ep *models.Episode) {
	if s.logger == nil {
		return
	}
	s.logger.InfoContext(ctx, msg,
		"episode_id", ep.ID.String(),
		"webtoon_id", ep.WebtoonID.String(),
		"rent_price", ep.RentPrice,
		"buy_price", ep.BuyPrice,
	)
}
