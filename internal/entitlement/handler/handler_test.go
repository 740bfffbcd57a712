package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"toonpass/internal/entitlement/handler/mocks"
	"toonpass/internal/entitlement/models"
	"toonpass/internal/entitlement/strategy"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
)

var now = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*mocks.MockService, chi.Router) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil)), clock.NewFrozen(now)).Register(r)
	return svc, r
}

func serve(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	r.ServeHTTP(rec, httptest.NewRequest(method, path, reader))
	return rec
}

func TestAccess(t *testing.T) {
	svc, r := setup(t)
	readerID, episodeID := id.NewReaderID(), id.NewEpisodeID()
	svc.EXPECT().CanAccess(gomock.Any(), readerID, episodeID).Return(true, nil)
	svc.EXPECT().RemainingRentalTime(gomock.Any(), readerID, episodeID).Return(4*time.Minute+300*time.Millisecond, nil)

	rec := serve(r, http.MethodGet, "/readers/"+readerID.String()+"/episodes/"+episodeID.String()+"/access", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp AccessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.CanAccess)
	assert.Equal(t, int64(241), resp.RemainingSeconds)
}

func TestGrant(t *testing.T) {
	readerID, episodeID := id.NewReaderID(), id.NewEpisodeID()
	base := "/readers/" + readerID.String() + "/episodes/" + episodeID.String()

	t.Run("rental granted", func(t *testing.T) {
		svc, r := setup(t)
		svc.EXPECT().GrantAccess(gomock.Any(), readerID, episodeID, strategy.Rental{}).Return(true, nil)
		rec := serve(r, http.MethodPost, base+"/rental", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp GrantResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Granted)
		assert.Equal(t, models.KindRental, resp.Kind)
	})

	t.Run("purchase denied", func(t *testing.T) {
		svc, r := setup(t)
		svc.EXPECT().GrantAccess(gomock.Any(), readerID, episodeID, strategy.Purchase{}).Return(false, nil)
		rec := serve(r, http.MethodPost, base+"/purchase", "")
		require.Equal(t, http.StatusPaymentRequired, rec.Code)
		var resp DeniedResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Granted)
		assert.Equal(t, ErrInsufficientPoints, resp.Error)
	})

	t.Run("service error", func(t *testing.T) {
		svc, r := setup(t)
		svc.EXPECT().GrantAccess(gomock.Any(), readerID, episodeID, strategy.Rental{}).
			Return(false, dErrors.New(dErrors.CodeNotFound, "episode not found"))
		rec := serve(r, http.MethodPost, base+"/rental", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad ids", func(t *testing.T) {
		_, r := setup(t)
		rec := serve(r, http.MethodPost, "/readers/nope/episodes/"+episodeID.String()+"/rental", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		rec = serve(r, http.MethodPost, "/readers/"+readerID.String()+"/episodes/nope/purchase", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestConvert(t *testing.T) {
	readerID, episodeID := id.NewReaderID(), id.NewEpisodeID()
	path := "/readers/" + readerID.String() + "/episodes/" + episodeID.String() + "/conversion"

	t.Run("converted", func(t *testing.T) {
		svc, r := setup(t)
		svc.EXPECT().ConvertRentalToPurchase(gomock.Any(), readerID, episodeID, int64(50), int64(100)).Return(true, nil)
		rec := serve(r, http.MethodPost, path, `{"rental_price":50,"buy_price":100}`)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("negative price rejected before the service", func(t *testing.T) {
		_, r := setup(t)
		rec := serve(r, http.MethodPost, path, `{"rental_price":-1,"buy_price":100}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestListRentals(t *testing.T) {
	svc, r := setup(t)
	readerID := id.NewReaderID()
	rental := models.NewRental(readerID, id.NewEpisodeID(), 50, now.Add(-3*time.Minute))
	rental.ID = id.NewRentalID()
	svc.EXPECT().GetActiveRentals(gomock.Any(), readerID).Return([]*models.Rental{rental}, nil)

	rec := serve(r, http.MethodGet, "/readers/"+readerID.String()+"/rentals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var resp RentalListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rentals, 1)
	assert.Equal(t, models.RentalActive, resp.Rentals[0].Status)
	assert.Equal(t, int64(420), resp.Rentals[0].RemainingSeconds)
	assert.Equal(t, rental.ID, resp.Rentals[0].ID)
}

func TestListPurchases(t *testing.T) {
	svc, r := setup(t)
	readerID := id.NewReaderID()
	svc.EXPECT().GetPurchases(gomock.Any(), readerID).Return(nil, errors.New("db down"))

	rec := serve(r, http.MethodGet, "/readers/"+readerID.String()+"/purchases", "")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRegisterLeavesReaderRouteReachable(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)
	r := chi.NewRouter()
	r.Get("/readers/{readerID}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	New(svc, slog.New(slog.DiscardHandler), clock.NewFrozen(now)).Register(r)

	readerID := id.NewReaderID()
	rec := serve(r, http.MethodGet, "/readers/"+readerID.String(), "")
	assert.Equal(t, http.StatusOK, rec.Code)

	svc.EXPECT().GetPurchases(gomock.Any(), readerID).Return(nil, nil)
	rec = serve(r, http.MethodGet, "/readers/"+readerID.String()+"/purchases", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
