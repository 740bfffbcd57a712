package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"toonpass/internal/audit"
	"toonpass/internal/points/metrics"
	"toonpass/internal/points/models"
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

// PaymentStore lists history newest first.
type PaymentStore interface {
	Create(ctx context.Context, p *models.Payment) error
	ListByReader(ctx context.Context, readerID id.ReaderID) ([]*models.Payment, error)
}

// Stores bundles the stores a top-up touches.
type Stores struct {
	Readers  ReaderStore
	Payments PaymentStore
}

// StoreTx runs fn with stores bound to one transaction.
type StoreTx interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error
}

// Locker serializes wallet mutations per reader. Grants share the same lock.
type Locker interface {
	Acquire(ctx context.Context, key string) (release func(), err error)
}

type Option func(*Service)

// Service tops up reader wallets.
type Service struct {
	stores  Stores
	tx      StoreTx
	locker  Locker
	clock   clock.Clock
	tracer  tracer.Tracer
	logger  *slog.Logger
	auditor *audit.Publisher
	metrics *metrics.Metrics
}

func New(stores Stores, opts ...Option) *Service {
	svc := &Service{
		stores: stores,
		clock:  clock.System{},
		tracer: tracer.NewNoop(),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.tx == nil {
		svc.tx = passthroughTx{stores: stores}
	}
	if svc.locker == nil {
		svc.locker = platformsync.NewShardedMutex()
	}
	return svc
}

func WithStoreTx(tx StoreTx) Option {
	return func(s *Service) {
		s.tx = tx
	}
}

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

// ChargePoints processes a top-up of amountWon through method and credits
// amountWon/10 points. The payment record and the wallet credit are written in
// one transaction under the reader's lock.
func (s *Service) ChargePoints(ctx context.Context, readerID id.ReaderID, amountWon int64, method models.PaymentMethod) (payment *models.Payment, err error) {
	if method == nil {
		return nil, dErrors.Validation("payment method is required")
	}
	if err := models.ValidateAmount(amountWon); err != nil {
		return nil, err
	}
	ctx, span := s.tracer.Start(ctx, tracer.SpanChargePoints,
		tracer.String(tracer.AttrReaderID, readerID.String()),
		tracer.String(tracer.AttrPaymentMethod, method.Name()),
		tracer.Int64(tracer.AttrAmountWon, amountWon),
	)
	defer func() { span.End(err) }()

	release, err := s.locker.Acquire(ctx, readerID.String())
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeTimeout, "could not acquire reader lock")
	}
	defer release()

	now := requesttime.Now(ctx, s.clock)
	var balance int64
	err = s.tx.RunInTx(ctx, func(ctx context.Context, st Stores) error {
		reader, err := st.Readers.FindByIDForUpdate(ctx, readerID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return dErrors.New(dErrors.CodeNotFound, "reader not found")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load reader")
		}

		if err := s.process(ctx, method, amountWon); err != nil {
			return err
		}

		payment, err = models.NewPayment(readerID, amountWon, method.Name(), now)
		if err != nil {
			return err
		}
		if err := st.Payments.Create(ctx, payment); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save payment")
		}
		if err := reader.Wallet.Credit(payment.Points); err != nil {
			return err
		}
		reader.UpdatedAt = now
		if err := st.Readers.Update(ctx, reader); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "reader was modified concurrently")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to save reader")
		}
		balance = reader.Balance()
		return nil
	})
	if err != nil {
		var domainErr *dErrors.Error
		if !errors.As(err, &domainErr) {
			err = dErrors.Wrap(err, dErrors.CodeInternal, "top-up transaction failed")
		}
		return nil, err
	}

	s.reportCharge(ctx, payment, balance)
	return payment, nil
}

func (s *Service) process(ctx context.Context, method models.PaymentMethod, amountWon int64) (err error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanPaymentProcessed, tracer.String(tracer.AttrPaymentMethod, method.Name()))
	defer func() { span.End(err) }()

	if err := method.Process(ctx, amountWon); err != nil {
		if s.metrics != nil {
			s.metrics.IncrementChargeFailure(method.Name())
		}
		if s.logger != nil {
			s.logger.WarnContext(ctx, "payment rejected", "method", method.Name(), "amount_won", amountWon, "error", err)
		}
		return dErrors.Wrap(err, dErrors.CodePaymentDeclined, "payment was not processed")
	}
	return nil
}

// PaymentHistory lists the reader's top-ups newest first.
func (s *Service) PaymentHistory(ctx context.Context, readerID id.ReaderID) ([]*models.Payment, error) {
	payments, err := s.stores.Payments.ListByReader(ctx, readerID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}
	if payments == nil {
		payments = []*models.Payment{}
	}
	return payments, nil
}

func (s *Service) reportCharge(ctx context.Context, p *models.Payment, balance int64) {
	if s.metrics != nil {
		s.metrics.ObserveCharge(p.Method, p.AmountWon, p.Points)
	}
	if s.auditor != nil {
		if err := s.auditor.Emit(ctx, audit.Event{
			Timestamp: p.CreatedAt,
			ReaderID:  p.ReaderID.String(),
			Action:    string(audit.EventPointsCharged),
			Kind:      p.Method,
			Points:    p.Points,
			Balance:   balance,
			Decision:  audit.DecisionGranted,
		}); err != nil && s.logger != nil {
			s.logger.ErrorContext(ctx, "failed to emit audit event", "action", string(audit.EventPointsCharged), "error", err)
		}
	}
	if s.logger != nil {
		s.logger.InfoContext(ctx, "points charged",
			"reader_id", p.ReaderID.String(),
			"amount_won", p.AmountWon,
			"points", p.Points,
			"method", p.Method,
			"balance", balance,
		)
	}
}

// passthroughTx runs fn on the shared stores. The reader is written last, so
// a failed top-up never credits the wallet.
type passthroughTx struct {
	stores Stores
}

const txTimeout = 5 * time.Second

func (t passthroughTx) RunInTx(ctx context.Context, fn func(ctx context.Context, stores Stores) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, txTimeout)
		defer cancel()
	}
	return fn(ctx, t.stores)
}
