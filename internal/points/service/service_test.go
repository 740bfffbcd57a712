package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks ReaderStore,PaymentStore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"toonpass/internal/audit"
	"toonpass/internal/points/metrics"
	"toonpass/internal/points/models"
	"toonpass/internal/points/service/mocks"
	"toonpass/internal/points/store"
	readermodels "toonpass/internal/reader/models"
	readerstore "toonpass/internal/reader/store"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/sentinel"
	"toonpass/pkg/testutil"
)

var t0 = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

type declinedMethod struct{}

func (declinedMethod) Name() string { return "declined_card" }

func (declinedMethod) Process(context.Context, int64) error { return errors.New("card declined") }

type ServiceSuite struct {
	suite.Suite
	ctx        context.Context
	clock      *clock.Frozen
	readers    *readerstore.InMemory
	payments   *store.InMemory
	auditStore *audit.InMemoryStore
	metrics    *metrics.Metrics
	service    *Service
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.clock = clock.NewFrozen(t0)
	s.readers = readerstore.NewInMemory()
	s.payments = store.NewInMemory()
	s.auditStore = audit.NewInMemoryStore()
	s.metrics = metrics.NewWithRegisterer(prometheus.NewRegistry())
	s.service = New(Stores{Readers: s.readers, Payments: s.payments},
		WithClock(s.clock),
		WithAuditPublisher(audit.NewPublisher(s.auditStore)),
		WithMetrics(s.metrics),
	)
}

func (s *ServiceSuite) newReader() id.ReaderID {
	r, err := readermodels.NewReader(id.ReaderID{}, "reader", t0)
	s.Require().NoError(err)
	s.Require().NoError(s.readers.Create(s.ctx, r))
	return r.ID
}

func (s *ServiceSuite) balance(readerID id.ReaderID) int64 {
	r, err := s.readers.FindByID(s.ctx, readerID)
	s.Require().NoError(err)
	return r.Balance()
}

func (s *ServiceSuite) TestChargeCreditsTenWonPerPoint() {
	readerID := s.newReader()

	p, err := s.service.ChargePoints(s.ctx, readerID, 10000, models.CreditCard{})
	s.Require().NoError(err)
	s.Equal(int64(1000), p.Points)
	s.Equal(models.MethodCreditCard, p.Method)
	s.Equal(t0, p.CreatedAt)
	s.Equal(readermodels.StartingPoints+1000, s.balance(readerID))

	events, err := s.auditStore.ListByReader(s.ctx, readerID.String())
	s.Require().NoError(err)
	s.Require().Len(events, 1)
	s.Equal(string(audit.EventPointsCharged), events[0].Action)
	s.Equal(readermodels.StartingPoints+1000, events[0].Balance)
	s.Equal(float64(1000), promtest.ToFloat64(s.metrics.PointsCredited))
}

func (s *ServiceSuite) TestHistoryNewestFirst() {
	readerID := s.newReader()
	_, err := s.service.ChargePoints(s.ctx, readerID, 1000, models.CreditCard{})
	s.Require().NoError(err)
	s.clock.Advance(time.Minute)
	_, err = s.service.ChargePoints(s.ctx, readerID, 50000, models.BankTransfer{})
	s.Require().NoError(err)

	history, err := s.service.PaymentHistory(s.ctx, readerID)
	s.Require().NoError(err)
	s.Require().Len(history, 2)
	s.Equal(int64(50000), history[0].AmountWon)
	s.Equal(models.MethodBankTransfer, history[0].Method)
	s.Equal(int64(1000), history[1].AmountWon)
	s.Equal(readermodels.StartingPoints+100+5000, s.balance(readerID))

	empty, err := s.service.PaymentHistory(s.ctx, id.NewReaderID())
	s.Require().NoError(err)
	s.NotNil(empty)
	s.Empty(empty)
}

func (s *ServiceSuite) TestRejectedCharges() {
	readerID := s.newReader()

	s.T().Run("amount not allowed", func(t *testing.T) {
		_, err := s.service.ChargePoints(s.ctx, readerID, 2000, models.CreditCard{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
	s.T().Run("missing method", func(t *testing.T) {
		_, err := s.service.ChargePoints(s.ctx, readerID, 1000, nil)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
	s.T().Run("unknown reader", func(t *testing.T) {
		_, err := s.service.ChargePoints(s.ctx, id.NewReaderID(), 1000, models.CreditCard{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	})
	s.T().Run("payment declined", func(t *testing.T) {
		_, err := s.service.ChargePoints(s.ctx, readerID, 1000, declinedMethod{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodePaymentDeclined))
		assert.Equal(t, float64(1), promtest.ToFloat64(s.metrics.ChargeFailures.WithLabelValues("declined_card")))
	})

	s.Equal(readermodels.StartingPoints, s.balance(readerID))
	history, err := s.service.PaymentHistory(s.ctx, readerID)
	s.Require().NoError(err)
	s.Empty(history)
}

func (s *ServiceSuite) TestConcurrentChargesAllLand() {
	readerID := s.newReader()
	const n = 25

	result := testutil.RunConcurrent(n, func(int) error {
		_, err := s.service.ChargePoints(s.ctx, readerID, 1000, models.CreditCard{})
		return err
	})

	s.Equal(int32(n), result.Successes)
	s.Equal(readermodels.StartingPoints+n*100, s.balance(readerID))
	history, err := s.service.PaymentHistory(s.ctx, readerID)
	s.Require().NoError(err)
	s.Len(history, n)
}

func TestChargePoints_StoreFailures(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db down")

	setup := func(t *testing.T) (*mocks.MockReaderStore, *mocks.MockPaymentStore, *Service, *readermodels.Reader) {
		ctrl := gomock.NewController(t)
		readers := mocks.NewMockReaderStore(ctrl)
		payments := mocks.NewMockPaymentStore(ctrl)
		reader := testutil.NewReaderBuilder().WithID(id.NewReaderID()).CreatedAt(t0).Build()
		return readers, payments, New(Stores{Readers: readers, Payments: payments}, WithClock(clock.NewFrozen(t0))), reader
	}

	t.Run("payment save fails before the wallet is written", func(t *testing.T) {
		readers, payments, svc, reader := setup(t)
		readers.EXPECT().FindByIDForUpdate(gomock.Any(), reader.ID).Return(reader, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(boom)
		_, err := svc.ChargePoints(ctx, reader.ID, 1000, models.CreditCard{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
		assert.ErrorIs(t, err, boom)
	})

	t.Run("stale reader maps to conflict", func(t *testing.T) {
		readers, payments, svc, reader := setup(t)
		readers.EXPECT().FindByIDForUpdate(gomock.Any(), reader.ID).Return(reader, nil)
		payments.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		readers.EXPECT().Update(gomock.Any(), gomock.Any()).Return(sentinel.ErrConflict)
		_, err := svc.ChargePoints(ctx, reader.ID, 1000, models.CreditCard{})
		assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
	})

	t.Run("history read fails", func(t *testing.T) {
		_, payments, svc, reader := setup(t)
		payments.EXPECT().ListByReader(gomock.Any(), reader.ID).Return(nil, boom)
		_, err := svc.PaymentHistory(ctx, reader.ID)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	})
}
