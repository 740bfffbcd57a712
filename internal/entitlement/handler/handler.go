package handler

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"toonpass/internal/entitlement/models"
	"toonpass/internal/entitlement/strategy"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/clock"
	"toonpass/pkg/platform/httputil"
	"toonpass/pkg/platform/middleware/request"
	"toonpass/pkg/platform/middleware/requesttime"
)

// Service defines the entitlement operations exposed over HTTP.
type Service interface {
	CanAccess(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (bool, error)
	GrantAccess(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID, strat strategy.Strategy) (bool, error)
	ConvertRentalToPurchase(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID, rentalPrice, buyPrice int64) (bool, error)
	GetActiveRentals(ctx context.Context, readerID id.ReaderID) ([]*models.Rental, error)
	GetPurchases(ctx context.Context, readerID id.ReaderID) ([]*models.Purchase, error)
	RemainingRentalTime(ctx context.Context, readerID id.ReaderID, episodeID id.EpisodeID) (time.Duration, error)
}

// ErrInsufficientPoints is the error string of a 402 grant response.
const ErrInsufficientPoints = "insufficient_points"

type Handler struct {
	entitlements Service
	logger       *slog.Logger
	clock        clock.Clock
}

func New(entitlements Service, logger *slog.Logger, clk clock.Clock) *Handler {
	return &Handler{entitlements: entitlements, logger: logger, clock: clock.OrSystem(clk)}
}

// Register registers the entitlement routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	// Full paths, not a Route mount: GET /readers/{readerID} belongs to the
	// reader handler.
	r.Get("/readers/{readerID}/episodes/{episodeID}/access", h.handleAccess)
	r.Post("/readers/{readerID}/episodes/{episodeID}/rental", h.grant(strategy.Rental{}))
	r.Post("/readers/{readerID}/episodes/{episodeID}/purchase", h.grant(strategy.Purchase{}))
	r.Post("/readers/{readerID}/episodes/{episodeID}/conversion", h.handleConvert)
	r.Get("/readers/{readerID}/rentals", h.handleListRentals)
	r.Get("/readers/{readerID}/purchases", h.handleListPurchases)
}

type AccessResponse struct {
	CanAccess        bool  `json:"can_access"`
	RemainingSeconds int64 `json:"remaining_seconds"`
}

type GrantResponse struct {
	Granted bool        `json:"granted"`
	Kind    models.Kind `json:"kind"`
}

// DeniedResponse is written with 402 when the wallet cannot cover a grant.
type DeniedResponse struct {
	Granted bool        `json:"granted"`
	Kind    models.Kind `json:"kind"`
	Error   string      `json:"error"`
}

// ConvertRequest carries the prices the caller quoted to the reader.
type ConvertRequest struct {
	RentalPrice int64 `json:"rental_price"`
	BuyPrice    int64 `json:"buy_price"`
}

func (r *ConvertRequest) Normalize() {}

func (r *ConvertRequest) Validate() error {
	if r.RentalPrice < 0 || r.BuyPrice < 0 {
		return dErrors.Validation("prices cannot be negative")
	}
	return nil
}

type RentalResponse struct {
	ID               id.RentalID         `json:"id"`
	EpisodeID        id.EpisodeID        `json:"episode_id"`
	PricePaid        int64               `json:"price_paid"`
	RentedAt         time.Time           `json:"rented_at"`
	ExpiresAt        time.Time           `json:"expires_at"`
	Status           models.RentalStatus `json:"status"`
	RemainingSeconds int64               `json:"remaining_seconds"`
}

type RentalListResponse struct {
	Rentals []RentalResponse `json:"rentals"`
}

type PurchaseListResponse struct {
	Purchases []*models.Purchase `json:"purchases"`
}

func (h *Handler) handleAccess(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	readerID, episodeID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	allowed, err := h.entitlements.CanAccess(ctx, readerID, episodeID)
	if err != nil {
		h.logger.WarnContext(ctx, "access check failed", "request_id", request.GetRequestID(ctx), "error", err)
		httputil.WriteError(w, err)
		return
	}
	remaining, err := h.entitlements.RemainingRentalTime(ctx, readerID, episodeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, AccessResponse{CanAccess: allowed, RemainingSeconds: seconds(remaining)})
}

func (h *Handler) grant(strat strategy.Strategy) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		readerID, episodeID, ok := h.pathIDs(w, r)
		if !ok {
			return
		}
		granted, err := h.entitlements.GrantAccess(ctx, readerID, episodeID, strat)
		if err != nil {
			h.logger.WarnContext(ctx, "grant failed",
				"request_id", request.GetRequestID(ctx),
				"kind", string(strat.Kind()),
				"error", err,
			)
			httputil.WriteError(w, err)
			return
		}
		writeGrant(w, granted, strat.Kind())
	}
}

func (h *Handler) handleConvert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)
	readerID, episodeID, ok := h.pathIDs(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ConvertRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	converted, err := h.entitlements.ConvertRentalToPurchase(ctx, readerID, episodeID, req.RentalPrice, req.BuyPrice)
	if err != nil {
		h.logger.WarnContext(ctx, "conversion failed", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	writeGrant(w, converted, models.KindPurchase)
}

func writeGrant(w http.ResponseWriter, granted bool, kind models.Kind) {
	if !granted {
		httputil.WriteJSON(w, http.StatusPaymentRequired, DeniedResponse{Kind: kind, Error: ErrInsufficientPoints})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, GrantResponse{Granted: true, Kind: kind})
}

func (h *Handler) handleListRentals(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	rentals, err := h.entitlements.GetActiveRentals(ctx, readerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	now := requesttime.Now(ctx, h.clock)
	resp := RentalListResponse{Rentals: make([]RentalResponse, 0, len(rentals))}
	for _, rental := range rentals {
		resp.Rentals = append(resp.Rentals, RentalResponse{
			ID:               rental.ID,
			EpisodeID:        rental.EpisodeID,
			PricePaid:        rental.PricePaid,
			RentedAt:         rental.RentedAt,
			ExpiresAt:        rental.ExpiresAt,
			Status:           rental.Status(now),
			RemainingSeconds: seconds(rental.Remaining(now)),
		})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleListPurchases(w http.ResponseWriter, r *http.Request) {
	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	purchases, err := h.entitlements.GetPurchases(r.Context(), readerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PurchaseListResponse{Purchases: purchases})
}

func (h *Handler) pathIDs(w http.ResponseWriter, r *http.Request) (id.ReaderID, id.EpisodeID, bool) {
	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ReaderID{}, id.EpisodeID{}, false
	}
	episodeID, err := id.ParseEpisodeID(chi.URLParam(r, "episodeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return id.ReaderID{}, id.EpisodeID{}, false
	}
	return readerID, episodeID, true
}

// seconds rounds a partial second up so a live rental never reports zero.
func seconds(d time.Duration) int64 {
	if d <= 0 {
		return 0
	}
	return int64(math.Ceil(d.Seconds()))
}
