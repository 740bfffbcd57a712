package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toonpass/internal/audit"
	catalogmodels "toonpass/internal/catalog/models"
	"toonpass/internal/entitlement/metrics"
	"toonpass/internal/entitlement/models"
	"toonpass/internal/entitlement/ports"
	"toonpass/internal/entitlement/strategy"
	readermodels "toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/middleware/requesttime"
	"toonpass/pkg/platform/sentinel"
	platformsync "toonpass/pkg/platform/sync"
	"toonpass/pkg/platform/tracer"
)

// ReaderStore loads and saves the wallet owner.
// Error Contract:
// - FindByIDForUpdate returns sentinel.ErrNotFound for unknown readers
// - Update returns sentinel.ErrConflict when the stored version moved on
type ReaderStore interface {
	FindByIDForUpdate(ctx context.Context, readerID id.ReaderID) (*readermodels.Reader, error)
	Update(ctx context.Context, r *readermodels.Reader) error
}

// RentalStore is append-only.
type RentalStore interface {
	Create(ctx context.Context, r *models.Rental) error
	ListByReader(ctx context.Context, readerID id.ReaderID) ([]*models.Rental, error)
	ListByReaderAndEpisode(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) ([]*models.Rental, error)
}

// PurchaseStore returns sentinel.ErrAlreadyUsed from Create when the pair is
// already purchased.
type PurchaseStore interface {
	Create(ctx context.Context, p *models.Purchase) error
	FindByReaderAndEpisode(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (*models.Purchase, error)
	ListByReader(ctx context.Context, readerID id.ReaderID) ([]*models.Purchase, error)
}

// Stores bundles the stores a grant touches.
type Stores struct {
	Readers   ReaderStore
	Rentals   RentalStore
	Purchases PurchaseStore
}

func (s Stores) RecordRental(ctx context.Context, rental *models.Rental) error {
	return s.Rentals.Create(ctx, rental)
}

func (s Stores) RecordPurchase(ctx context.Context, purchase *models.Purchase) error {
	return s.Purchases.Create(ctx, purchase)
}

func (s Stores) lookup() strategy.Lookup {
	return strategy.Lookup{Rentals: s.Rentals, Purchases: s.Purchases}
}

// Locker serializes grants per reader.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type Option func(*Service)

// Service is the access orchestrator. It decides whether a reader may view an
// episode and grants rentals and purchases against the reader's wallet.
//
// Every grant for a reader runs under that reader's lock and inside one
// StoreTx, so the wallet debit and the entitlement record are written
// together or not at all.
type Service struct {
	catalog ports.Catalog
	stores  Stores
	tx      StoreTx
	locker  Locker
	clock   clock.Clock
	tracer  tracer.Tracer
	logger  *slog.Logger
	auditor *audit.Publisher
	metrics *metrics.Metrics
}

func New(catalog ports.Catalog, stores Stores, opts ...Option) *Service {
	svc := &Service{
		catalog: catalog,
		stores:  stores,
		clock:   clock.System{},
		tracer:  tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.tx == nil {
		svc.tx = NewInMemoryTx(stores)
	}
	if svc.locker == nil {
		svc.locker = platformsync.NewShardedMutex()
	}
	return svc
}

// WithStoreTx replaces the default pass-through transaction, e.g. with a
// database transaction binding all three stores.
func WithStoreTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

// WithLocker sets the per-reader lock. Multi-instance deployments pass a
// distributed lock.
func WithLocker(l Locker) Option {
	return func(s *Service) {
		s.locker = l
	}
}

func WithClock(c clock.Clock) Option {
	return func(s *Service) {
		s.clock = clock.OrSystem(c)
	}
}

func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		if t != nil {
			s.tracer = t
		}
	}
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

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// grantOutcome is what a grant attempt did inside the transaction.
type grantOutcome struct {
	granted         bool
	alreadyEntitled bool
	converted       bool
	price           int64
	charged         int64
	balance         int64
	record          models.Entitlement
}

// CanAccess reports whether the reader holds a purchase or an active rental
// for the episode. It has no side effects and takes no lock.
func (s *Service) CanAccess(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (bool, error) {
	ok, err := s.canAccess(ctx, s.stores.lookup(), readerID, episodeID, s.now(ctx))
	if err != nil {
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check access")
	}
	if s.metrics != nil {
		s.metrics.IncrementAccessCheck(ok)
	}
	return ok, nil
}

// canAccess checks purchases first, then active rentals.
func (s *Service) canAccess(ctx context.Context, lookup strategy.Lookup, readerID id.ReaderID, episodeID id.EpisodeID, now time.Time) (bool, error) {
	for _, st := range []strategy.Strategy{strategy.Purchase{}, strategy.Rental{}} {
		ok, err := st.IsCurrentlyValid(ctx, lookup, readerID, episodeID, now)
		if err != nil || ok {
			return ok, err
		}
	}
	return false, nil
}

// GrantAccess obtains access through strat. It returns true when the reader
// is entitled afterwards and false when the wallet could not cover the
// charge, in which case nothing was written.
//
// A purchase while a rental is active charges only the buy/rent difference;
// the purchase still records the full buy price and the rental is kept.
func (s *Service) GrantAccess(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID, strat strategy.Strategy) (granted bool, err error) {
	if strat == nil {
		return false, dErrors.New(dErrors.CodeBadRequest, "entitlement strategy is required")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanGrantAccess,
		tracer.String(tracer.AttrReaderID, readerID.String()),
		tracer.String(tracer.AttrEpisodeID, episodeID.String()),
		tracer.String(tracer.AttrKind, string(strat.Kind())),
	)
	defer func() { span.End(err) }()
	defer s.observeLatency(time.Now())

	ep, err := s.findEpisode(ctx, episodeID)
	if err != nil {
		return false, err
	}

	out, now, err := s.runLocked(ctx, readerID, func(ctx context.Context, st Stores, reader *readermodels.Reader, now time.Time) (grantOutcome, error) {
		return s.grant(ctx, st, reader, ep, strat, now)
	})
	if err != nil {
		return false, err
	}

	span.SetAttributes(
		tracer.Bool(tracer.AttrGranted, out.granted),
		tracer.Bool(tracer.AttrAlreadyEntitled, out.alreadyEntitled),
		tracer.Bool(tracer.AttrConverted, out.converted),
		tracer.Int64(tracer.AttrPointsCharged, out.charged),
	)
	s.report(ctx, strat.Kind(), readerID, episodeID, out, now)
	return out.granted, nil
}

func (s *Service) grant(ctx context.Context, st Stores, reader *readermodels.Reader, ep *catalogmodels.Episode, strat strategy.Strategy, now time.Time) (grantOutcome, error) {
	lookup := st.lookup()

	switch strat.Kind() {
	case models.KindPurchase:
		owned, err := strat.IsCurrentlyValid(ctx, lookup, reader.ID, ep.ID, now)
		if err != nil {
			return grantOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check purchase")
		}
		if owned {
			return grantOutcome{granted: true, alreadyEntitled: true}, nil
		}
		active, err := strategy.ActiveRental(ctx, lookup.Rentals, reader.ID, ep.ID, now)
		if err != nil {
			return grantOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rentals")
		}
		if active != nil {
			return s.charge(ctx, st, reader, strat.Materialize(reader.ID, ep, now), ep.ConversionPrice(), true)
		}
	default:
		entitled, err := s.canAccess(ctx, lookup, reader.ID, ep.ID, now)
		if err != nil {
			return grantOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check access")
		}
		if entitled {
			return grantOutcome{granted: true, alreadyEntitled: true}, nil
		}
	}
	return s.charge(ctx, st, reader, strat.Materialize(reader.ID, ep, now), strat.Price(ep), false)
}

// ConvertRentalToPurchase buys the episode for a reader who already knows
// both prices. The difference is debited first; when it is zero or negative
// the purchase is free. An existing purchase makes this a no-op returning
// true.
func (s *Service) ConvertRentalToPurchase(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID, rentalPrice, buyPrice int64) (converted bool, err error) {
	if rentalPrice < 0 || buyPrice < 0 {
		return false, dErrors.Validation("prices cannot be negative")
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanConvertRental,
		tracer.String(tracer.AttrReaderID, readerID.String()),
		tracer.String(tracer.AttrEpisodeID, episodeID.String()),
	)
	defer func() { span.End(err) }()
	defer s.observeLatency(time.Now())

	if _, err := s.findEpisode(ctx, episodeID); err != nil {
		return false, err
	}

	out, now, err := s.runLocked(ctx, readerID, func(ctx context.Context, st Stores, reader *readermodels.Reader, now time.Time) (grantOutcome, error) {
		owned, err := strategy.HasPurchase(ctx, st.Purchases, reader.ID, episodeID)
		if err != nil {
			return grantOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check purchase")
		}
		if owned {
			return grantOutcome{granted: true, alreadyEntitled: true}, nil
		}
		rental, err := strategy.ActiveRental(ctx, st.Rentals, reader.ID, episodeID, now)
		if err != nil {
			return grantOutcome{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check rentals")
		}
		diff := max(0, buyPrice-rentalPrice)
		return s.charge(ctx, st, reader, models.NewPurchase(reader.ID, episodeID, buyPrice, now), diff, rental != nil)
	})
	if err != nil {
		return false, err
	}

	span.SetAttributes(tracer.Bool(tracer.AttrGranted, out.granted), tracer.Int64(tracer.AttrPointsCharged, out.charged))
	s.report(ctx, models.KindPurchase, readerID, episodeID, out, now)
	return out.granted, nil
}

// charge debits amount and persists record. An insufficient balance is a
// normal outcome: nothing is written and granted stays false.
func (s *Service) charge(ctx context.Context, st Stores, reader *readermodels.Reader, record models.Entitlement, amount int64, converted bool) (grantOutcome, error) {
	ok, err := reader.Wallet.Debit(amount)
	if err != nil {
		return grantOutcome{}, err
	}
	if !ok {
		return grantOutcome{price: amount}, nil
	}
	if err := s.persist(ctx, st, record); err != nil {
		return grantOutcome{}, err
	}
	return grantOutcome{granted: true, converted: converted, price: amount, charged: amount, record: record}, nil
}

func (s *Service) persist(ctx context.Context, st Stores, record models.Entitlement) error {
	if err := record.SaveTo(ctx, st); err != nil {
		if errors.Is(err, sentinel.ErrAlreadyUsed) {
			return dErrors.New(dErrors.CodeConflict, "entitlement already exists")
		}
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save entitlement")
	}
	return nil
}

type lockedFunc func(ctx context.Context, st Stores, reader *readermodels.Reader, now time.Time) (grantOutcome, error)

// runLocked takes the reader's lock, opens the transaction, loads the reader
// for update and saves its wallet back when fn charged it.
func (s *Service) runLocked(ctx context.Context, readerID id.ReaderID, fn lockedFunc) (grantOutcome, time.Time, error) {
	lockCtx, lockSpan := s.tracer.Start(ctx, tracer.SpanReaderLock, tracer.String(tracer.AttrReaderID, readerID.String()))
	lockStart := time.Now()
	release, err := s.locker.Acquire(lockCtx, readerID.String())
	waited := time.Since(lockStart)
	lockSpan.SetAttributes(tracer.Int64(tracer.AttrLockWaitMs, waited.Milliseconds()))
	lockSpan.End(err)
	if err != nil {
		return grantOutcome{}, time.Time{}, dErrors.Wrap(err, dErrors.CodeTimeout, "could not acquire reader lock")
	}
	defer release()
	if s.metrics != nil {
		s.metrics.ObserveLockWait(waited.Seconds())
	}

	now := s.now(ctx)
	var out grantOutcome
	err = s.tx.RunInTx(ctx, func(ctx context.Context, st Stores) error {
		reader, err := st.Readers.FindByIDForUpdate(ctx, readerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "reader not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reader")
		}
		out, err = fn(ctx, st, reader, now)
		if err != nil {
			return err
		}
		if out.charged > 0 {
			reader.UpdatedAt = now
			if err := st.Readers.Update(ctx, reader); err != nil {
				if errors.Is(err, sentinel.ErrConflict) {
					return dErrors.New(dErrors.CodeConflict, "reader was modified concurrently")
				}
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save reader")
			}
		}
		out.balance = reader.Balance()
		return nil
	})
	if err != nil {
		return grantOutcome{}, now, txError(err)
	}
	return out, now, nil
}

// txError keeps domain errors and classifies the rest.
func txError(err error) error {
	var domainErr *dErrors.Error
	if errors.As(err, &domainErr) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "grant timed out")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "grant transaction failed")
}

// GetActiveRentals lists the reader's rentals that are active now, ordered
// by rental time.
func (s *Service) GetActiveRentals(ctx context.Context, readerID id.ReaderID) ([]*models.Rental, error) {
	all, err := s.stores.Rentals.ListByReader(ctx, readerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list rentals")
	}
	now := s.now(ctx)
	active := make([]*models.Rental, 0, len(all))
	for _, r := range all {
		if r.IsActive(now) {
			active = append(active, r)
		}
	}
	return active, nil
}

func (s *Service) GetPurchases(ctx context.Context, readerID id.ReaderID) ([]*models.Purchase, error) {
	purchases, err := s.stores.Purchases.ListByReader(ctx, readerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list purchases")
	}
	if purchases == nil {
		purchases = []*models.Purchase{}
	}
	return purchases, nil
}

// RemainingRentalTime is the time left on the latest active rental of the
// pair, or zero when there is none.
func (s *Service) RemainingRentalTime(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (time.Duration, error) {
	now := s.now(ctx)
	active, err := strategy.ActiveRental(ctx, s.stores.Rentals, readerID, episodeID, now)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load rentals")
	}
	if active == nil {
		return 0, nil
	}
	return active.Remaining(now), nil
}

func (s *Service) findEpisode(ctx context.Context, episodeID id.EpisodeID) (*catalogmodels.Episode, error) {
	ep, err := s.catalog.FindEpisode(ctx, episodeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "episode not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load episode")
	}
	return ep, nil
}

func (s *Service) now(ctx context.Context) time.Time {
	return requesttime.Now(ctx, s.clock)
}
