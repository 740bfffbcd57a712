package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"toonpass/internal/catalog/models"
	id "toonpass/pkg/domain"
	"toonpass/pkg/platform/httputil"
	"toonpass/pkg/platform/middleware/request"
)

// Service defines the catalog operations exposed over HTTP.
type Service interface {
	CreateEpisode(ctx context.Context, req *models.CreateEpisodeRequest) (*models.Episode, error)
	GetEpisode(ctx context.Context, episodeID id.EpisodeID) (*models.Episode, error)
	ListEpisodes(ctx context.Context, webtoonID id.WebtoonID) ([]*models.Episode, error)
	UpdatePrices(ctx context.Context, episodeID id.EpisodeID, rentPrice, buyPrice int64) (*models.Episode, error)
}

// Handler handles catalog endpoints.
type Handler struct {
	catalog Service
	logger  *slog.Logger
}

func New(catalog Service, logger *slog.Logger) *Handler {
	return &Handler{catalog: catalog, logger: logger}
}

// Register registers the catalog routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/episodes", h.handleCreateEpisode)
	r.Get("/episodes/{episodeID}", h.handleGetEpisode)
	r.Put("/episodes/{episodeID}/prices", h.handleUpdatePrices)
	r.Get("/webtoons/{webtoonID}/episodes", h.handleListEpisodes)
}

func (h *Handler) handleCreateEpisode(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.CreateEpisodeRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	ep, err := h.catalog.CreateEpisode(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to create episode", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ep)
}

func (h *Handler) handleGetEpisode(w http.ResponseWriter, r *http.Request) {
	episodeID, err := id.ParseEpisodeID(chi.URLParam(r, "episodeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	ep, err := h.catalog.GetEpisode(r.Context(), episodeID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ep)
}

func (h *Handler) handleListEpisodes(w http.ResponseWriter, r *http.Request) {
	webtoonID, err := id.ParseWebtoonID(chi.URLParam(r, "webtoonID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	eps, err := h.catalog.ListEpisodes(r.Context(), webtoonID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if eps == nil {
		eps = []*models.Episode{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"episodes": eps})
}

func (h *Handler) handleUpdatePrices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := request.GetRequestID(ctx)

	episodeID, err := id.ParseEpisodeID(chi.URLParam(r, "episodeID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UpdatePricesRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	ep, err := h.catalog.UpdatePrices(ctx, episodeID, *req.RentPrice, *req.BuyPrice)
	if err != nil {
		h.logger.WarnContext(ctx, "failed to update prices", "request_id", requestID, "error", err)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ep)
}
