package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"solestore/internal/promotions/models"
	"solestore/pkg/platform/httputil"
	"solestore/pkg/requestcontext"
)

// Service defines the promotion operations the handler needs.
type Service interface {
	ListActive(ctx context.Context) ([]models.Promotion, error)
	Create(ctx context.Context, p models.Promotion) (models.Promotion, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/api/promotions", h.HandleList)
}

func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/api/promotions", h.HandleCreate)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	promotions, err := h.service.ListActive(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if promotions == nil {
		promotions = []models.Promotion{}
	}
	httputil.WriteJSON(w, http.StatusOK, promotions)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.Promotion](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	created, err := h.service.Create(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "promotion created",
		"request_id", requestID,
		"promotion_id", created.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, created)
}
