package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"solestore/internal/auth/models"
	"solestore/internal/auth/secrets"
	"solestore/internal/platform/metrics"
	dErrors "solestore/pkg/domain-errors"
	"solestore/pkg/platform/sentinel"
)

// UserStore is the persistence boundary the auth service depends on.
type UserStore interface {
	Create(ctx context.Context, user models.User) error
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phone string) error
	HasAdmin(ctx context.Context) (bool, error)
}

// TokenSigner issues access tokens for authenticated users.
type TokenSigner interface {
	Sign(userID uuid.UUID) (string, error)
}

// Service owns registration, login and token-backed user lookup. It keeps
// orchestration out of handlers and never exposes password hashes.
type Service struct {
	users   UserStore
	tokens  TokenSigner
	logger  *slog.Logger
	metrics *metrics.Metrics
}

func NewService(users UserStore, tokens TokenSigner, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		users:   users,
		tokens:  tokens,
		logger:  logger,
		metrics: m,
	}
}

// RegisterParams carries the already-validated registration input.
type RegisterParams struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
	Phone     string
}

// AuthResult pairs an access token with the user it authenticates.
type AuthResult struct {
	Token string
	User  models.Profile
}

// Register creates a new account and signs a token for it.
func (s *Service) Register(ctx context.Context, params RegisterParams) (AuthResult, error) {
	hash, err := secrets.Hash(params.Password)
	if err != nil {
		return AuthResult{}, err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        params.Email,
		PasswordHash: hash,
		FirstName:    params.FirstName,
		LastName:     params.LastName,
		Phone:        params.Phone,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return AuthResult{}, dErrors.New(dErrors.CodeBadRequest, "Email already registered")
		}
		s.logger.ErrorContext(ctx, "user creation failed", "error", err)
		return AuthResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}

	tok, err := s.tokens.Sign(user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "token signing failed", "error", err, "user_id", user.ID)
		return AuthResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue token")
	}

	s.metrics.UsersRegistered.Inc()
	return AuthResult{Token: tok, User: models.ProfileOf(user)}, nil
}

// Login authenticates by email and password. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, email, password string) (AuthResult, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return AuthResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		s.logger.ErrorContext(ctx, "user lookup failed", "error", err)
		return AuthResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "login failed")
	}

	if err := secrets.Verify(password, user.PasswordHash); err != nil {
		if dErrors.Is(err, dErrors.CodeUnauthorized) {
			return AuthResult{}, dErrors.New(dErrors.CodeUnauthorized, "invalid credentials")
		}
		s.logger.ErrorContext(ctx, "password verification failed", "error", err, "user_id", user.ID)
		return AuthResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "login failed")
	}

	tok, err := s.tokens.Sign(user.ID)
	if err != nil {
		s.logger.ErrorContext(ctx, "token signing failed", "error", err, "user_id", user.ID)
		return AuthResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "login failed")
	}

	return AuthResult{Token: tok, User: models.ProfileOf(user)}, nil
}

// UserByID re-fetches the user record backing a validated token. The store
// row, not the claim set, is the source of truth.
func (s *Service) UserByID(ctx context.Context, id uuid.UUID) (models.Profile, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return models.Profile{}, dErrors.New(dErrors.CodeNotFound, "User not found")
		}
		return models.Profile{}, dErrors.Wrap(err, dErrors.CodeInternal, "user lookup failed")
	}
	return models.ProfileOf(user), nil
}

// SeedAdmin creates the bootstrap administrator account once, if no admin
// exists yet.
func (s *Service) SeedAdmin(ctx context.Context, email, password string) error {
	exists, err := s.users.HasAdmin(ctx)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	hash, err := secrets.Hash(password)
	if err != nil {
		return err
	}
	admin := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		FirstName:    "Admin",
		LastName:     "User",
		IsAdmin:      true,
		CreatedAt:    time.Now(),
	}
	if err := s.users.Create(ctx, admin); err != nil {
		// Lost a race with another instance seeding the same account.
		if errors.Is(err, sentinel.ErrConflict) {
			return nil
		}
		return err
	}
	s.logger.InfoContext(ctx, "bootstrap admin created", "email", email)
	return nil
}
