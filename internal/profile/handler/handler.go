package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"solestore/internal/auth/models"
	profileservice "solestore/internal/profile/service"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/httputil"
	"solestore/pkg/requestcontext"
)

// Service defines the profile operations the handler needs.
type Service interface {
	Get(ctx context.Context, userID uuid.UUID) (models.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, params profileservice.UpdateParams) (models.Profile, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the authenticated profile endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/profile", h.HandleGet)
	r.Put("/api/profile", h.HandleUpdate)
}

// UpdateProfileRequest is the PUT /api/profile body.
type UpdateProfileRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone,omitempty"`
}

func (r *UpdateProfileRequest) Validate() error {
	var details []string
	if strings.TrimSpace(r.FirstName) == "" {
		details = append(details, "First name is required")
	}
	if strings.TrimSpace(r.LastName) == "" {
		details = append(details, "Last name is required")
	}
	if len(details) > 0 {
		return dErrors.New(dErrors.CodeValidation, "Validation failed").WithDetails(details...)
	}
	return nil
}

// HandleGet handles GET /api/profile.
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	profile, err := h.service.Get(ctx, requestcontext.UserID(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}

// HandleUpdate handles PUT /api/profile.
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[UpdateProfileRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	userID := requestcontext.UserID(ctx)
	profile, err := h.service.Update(ctx, userID, profileservice.UpdateParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "profile updated",
		"request_id", requestID,
		"user_id", userID,
	)
	httputil.WriteJSON(w, http.StatusOK, profile)
}
