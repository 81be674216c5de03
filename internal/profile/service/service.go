// Package service reads and updates the authenticated user's profile. It
// reuses the auth user store; email and admin flag are not editable here.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"solestore/internal/auth/models"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/sentinel"
)

// UserStore is the subset of the auth store the profile service needs.
type UserStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phone string) error
}

type Service struct {
	store  UserStore
	logger *slog.Logger
}

func NewService(store UserStore, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// UpdateParams carries the editable profile fields.
type UpdateParams struct {
	FirstName string
	LastName  string
	Phone     string
}

// Get returns the caller's profile.
func (s *Service) Get(ctx context.Context, userID uuid.UUID) (models.Profile, error) {
	user, err := s.store.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Profile{}, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		s.logger.ErrorContext(ctx, "profile fetch failed", "user_id", userID, "error", err)
		return models.Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to fetch profile")
	}
	return models.ProfileOf(user), nil
}

// Update writes the editable fields and returns the fresh profile.
func (s *Service) Update(ctx context.Context, userID uuid.UUID, params UpdateParams) (models.Profile, error) {
	err := s.store.UpdateProfile(ctx, userID, params.FirstName, params.LastName, params.Phone)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Profile{}, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		s.logger.ErrorContext(ctx, "profile update failed", "user_id", userID, "error", err)
		return models.Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "Failed to update profile")
	}
	return s.Get(ctx, userID)
}
