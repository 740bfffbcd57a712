package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"toonpass/internal/reader/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/httputil"
	"toonpass/pkg/platform/middleware/request"
)

// Service defines the reader operations exposed over HTTP.
type Service interface {
	Register(ctx context.Context, nickname string) (*models.Reader, error)
	Get(ctx context.Context, readerID id.ReaderID) (*models.Reader, error)
}

type Handler struct {
	readers Service
	logger  *slog.Logger
}

func New(readers Service, logger *slog.Logger) *Handler {
	return &Handler{readers: readers, logger: logger}
}

// Register registers the reader routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/readers", h.handleRegister)
	r.Get("/readers/{readerID}", h.handleGet)
}

// ReaderResponse flattens the wallet for clients.
type ReaderResponse struct {
	ID        id.ReaderID `json:"id"`
	Nickname  string      `json:"nickname"`
	Points    int64       `json:"points"`
	CreatedAt time.Time   `json:"created_at"`
}

func toResponse(r *models.Reader) ReaderResponse {
	return ReaderResponse{ID: r.ID, Nickname: r.Nickname, Points: r.Balance(), CreatedAt: r.CreatedAt}
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	reader, err := h.readers.Register(ctx, req.Nickname)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to register reader", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, toResponse(reader))
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	reader, err := h.readers.Get(r.Context(), readerID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, toResponse(reader))
}
