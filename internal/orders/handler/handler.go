package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"solestore/internal/orders/models"
	ordersservice "solestore/internal/orders/service"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/httputil"
	"solestore/pkg/requestcontext"
)

// Service defines the order operations the handler needs.
type Service interface {
	Create(ctx context.Context, userID uuid.UUID, params ordersservice.CreateParams) (uuid.UUID, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Order, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, next models.Status) error
}

// Handler wires order endpoints to the order service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the authenticated order endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/orders", h.HandleCreate)
	r.Get("/api/orders", h.HandleList)
}

// RegisterAdmin mounts the admin-only order endpoints.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Patch("/api/orders/{id}/status", h.HandleUpdateStatus)
}

// HandleCreate handles POST /api/orders.
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[CreateOrderRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	userID := requestcontext.UserID(ctx)
	orderID, err := h.service.Create(ctx, userID, ordersservice.CreateParams{
		Items:           req.Items,
		Total:           req.Total,
		ShippingAddress: req.ShippingAddress,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, map[string]any{"id": orderID})
}

// HandleList handles GET /api/orders; returns only the caller's orders.
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	orders, err := h.service.ListByUser(ctx, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}
	httputil.WriteJSON(w, http.StatusOK, orders)
}

// HandleUpdateStatus handles PATCH /api/orders/{id}/status.
func (h *Handler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid order id"))
		return
	}

	req, ok := httputil.DecodeAndPrepare[UpdateStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	if err := h.service.UpdateStatus(ctx, orderID, req.Status); err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "order status updated",
		"request_id", requestID,
		"order_id", orderID,
		"status", req.Status,
	)
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"id": orderID, "status": req.Status})
}
