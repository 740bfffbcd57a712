package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"toonpass/internal/points/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/httputil"
	"toonpass/pkg/platform/middleware/request"
)

// Service defines the top-up operations exposed over HTTP.
type Service interface {
	ChargePoints(ctx context.Context, readerID id.ReaderID, amountWon int64, method models.PaymentMethod) (*models.Payment, error)
	PaymentHistory(ctx context.Context, readerID id.ReaderID) ([]*models.Payment, error)
}

type Handler struct {
	points Service
	logger *slog.Logger
}

func New(points Service, logger *slog.Logger) *Handler {
	return &Handler{points: points, logger: logger}
}

// Register registers the points routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/readers/{readerID}/points/charges", h.handleCharge)
	r.Get("/readers/{readerID}/points/charges", h.handleHistory)
}

type HistoryResponse struct {
	Payments []*models.Payment `json:"payments"`
}

func (h *Handler) handleCharge(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.ChargeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	method, err := models.ParseMethod(req.Method)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	payment, err := h.points.ChargePoints(ctx, readerID, req.Amount, method)
	if err != nil {
		h.logger.WarnContext(ctx, "top-up failed", "request_id", requestID, "reader_id", readerID.String(), "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, payment)
}

func (h *Handler) handleHistory(w http.ResponseWriter, r *http.Request) {
	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	payments, err := h.points.PaymentHistory(r.Context(), readerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, HistoryResponse{Payments: payments})
}
