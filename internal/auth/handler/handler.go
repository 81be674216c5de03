package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"solestore/internal/auth/models"
	authservice "solestore/internal/auth/service"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/httputil"
	"solestore/pkg/requestcontext"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Register(ctx context.Context, params authservice.RegisterParams) (authservice.AuthResult, error)
	Login(ctx context.Context, email, password string) (authservice.AuthResult, error)
	UserByID(ctx context.Context, id uuid.UUID) (models.Profile, error)
}

// Handler wires auth endpoints to the auth service.
type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the public auth endpoints.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/register", h.HandleRegister)
	r.Post("/api/auth/login", h.HandleLogin)
}

// RegisterProtected mounts endpoints that require a valid bearer token.
func (h *Handler) RegisterProtected(r chi.Router) {
	r.Get("/api/auth/validate", h.HandleValidate)
}

// authResponse is the wire shape for register and login replies.
type authResponse struct {
	Token string         `json:"token"`
	User  models.Profile `json:"user"`
}

// HandleRegister handles POST /api/auth/register.
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Register(ctx, authservice.RegisterParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		if !dErrors.Is(err, dErrors.CodeBadRequest) {
			h.logger.ErrorContext(ctx, "registration failed", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "user registered",
		"request_id", requestID,
		"user_id", result.User.ID,
	)
	httputil.WriteJSON(w, http.StatusCreated, authResponse{Token: result.Token, User: result.User})
}

// HandleLogin handles POST /api/auth/login.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	result, err := h.service.Login(ctx, req.Email, req.Password)
	if err != nil {
		if dErrors.Is(err, dErrors.CodeInternal) {
			h.logger.ErrorContext(ctx, "login failed", "request_id", requestID, "error", err)
		}
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, authResponse{Token: result.Token, User: result.User})
}

// HandleValidate handles GET /api/auth/validate. RequireAuth has already
// verified the token; this re-reads the user row as the source of truth.
func (h *Handler) HandleValidate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID := requestcontext.UserID(ctx)
	profile, err := h.service.UserByID(ctx, userID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, profile)
}
