package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"solestore/internal/catalog/models"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/httputil"
	"solestore/pkg/requestcontext"
)

// Service defines the catalog operations the handler needs.
type Service interface {
	List(ctx context.Context) ([]models.Sneaker, error)
	Get(ctx context.Context, id int64) (models.Sneaker, error)
	Create(ctx context.Context, sneaker models.Sneaker) (int64, error)
	Update(ctx context.Context, sneaker models.Sneaker) error
	Delete(ctx context.Context, id int64) error
}

// Handler wires catalog endpoints to the catalog service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public read endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/sneakers", h.HandleList)
	r.Get("/api/sneakers/{id}", h.HandleGet)
}

// RegisterAdmin mounts the admin CRUD endpoints; the router wraps these in
// RequireAuth and RequireAdmin.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Post("/api/sneakers", h.HandleCreate)
	r.Put("/api/sneakers/{id}", h.HandleUpdate)
	r.Delete("/api/sneakers/{id}", h.HandleDelete)
}

func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	sneakers, err := h.service.List(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sneakers)
}

func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, ok := sneakerID(w, r)
	if !ok {
		return
	}
	sneaker, err := h.service.Get(r.Context(), id)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, sneaker)
}

func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.Sneaker](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	id, err := h.service.Create(ctx, req)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "sneaker created",
		"request_id", requestID,
		"sneaker_id", id,
		"user_id", requestcontext.UserID(ctx),
	)
	httputil.WriteJSON(w, http.StatusCreated, map[string]int64{"id": id})
}

func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id, ok := sneakerID(w, r)
	if !ok {
		return
	}

	req, ok := httputil.DecodeAndPrepare[models.Sneaker](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	req.ID = id

	if err := h.service.Update(ctx, req); err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"message": "Sneaker updated successfully"})
}

func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := sneakerID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func sneakerID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid sneaker id"))
		return 0, false
	}
	return id, true
}
