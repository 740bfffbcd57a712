package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"toonpass/internal/audit"
	id "toonpass/pkg/domain"
	dErrors "toonpass/pkg/domain-errors"
	"toonpass/pkg/platform/httputil"
	"toonpass/pkg/platform/middleware/request"
)

// Trail reads a reader's recorded events.
type Trail interface {
	List(ctx context.Context, readerID string) ([]audit.Event, error)
}

type Handler struct {
	trail  Trail
	logger *slog.Logger
}

func New(trail Trail, logger *slog.Logger) *Handler {
	return &Handler{trail: trail, logger: logger}
}

// Register registers the audit trail route with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/readers/{readerID}/audit", h.handleList)
}

type TrailResponse struct {
	Events []audit.Event `json:"events"`
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	readerID, err := id.ParseReaderID(chi.URLParam(r, "readerID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	events, err := h.trail.List(ctx, readerID.String())
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list audit events", "request_id", request.GetRequestID(ctx), "error", err)
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list audit events"))
		return
	}
	if events == nil {
		events = []audit.Event{}
	}
	httputil.WriteJSON(w, http.StatusOK, TrailResponse{Events: events})
}
