package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solestore/internal/auth/service"
	"solestore/internal/auth/store"
	"solestore/internal/auth/token"
	"solestore/internal/platform/metrics"
	dErrors "solestore/pkg/domain-errors"
)

func newAuthService() (*service.Service, *token.Service) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tokens := token.NewService("test-signing-key", "solestore", time.Hour)
	return service.NewService(store.NewMemory(), tokens, logger, metrics.NewForTest()), tokens
}

func registerParams() service.RegisterParams {
	return service.RegisterParams{
		Email:     "a@b.com",
		Password:  "Aa1!aaaa",
		FirstName: "Alice",
		LastName:  "Baker",
	}
}

func TestRegister_IssuesUsableToken(t *testing.T) {
	svc, tokens := newAuthService()

	result, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", result.User.Email)
	assert.False(t, result.User.IsAdmin)

	userID, err := tokens.UserID(result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, userID)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerParams())
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeBadRequest))
	assert.Contains(t, err.Error(), "Email already registered")
}

func TestLogin(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	registered, err := svc.Register(ctx, registerParams())
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, "a@b.com", "Aa1!aaaa")
		require.NoError(t, err)
		assert.Equal(t, registered.User.ID, result.User.ID)
		assert.NotEmpty(t, result.Token)
	})

	// Unknown email and wrong password must be indistinguishable.
	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "a@b.com", "Wrong1!aa")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "invalid credentials")
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@b.com", "Aa1!aaaa")
		require.Error(t, err)
		assert.True(t, dErrors.Is(err, dErrors.CodeUnauthorized))
		assert.Contains(t, err.Error(), "invalid credentials")
	})
}

func TestSeedAdmin_Idempotent(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "admin123"))
	require.NoError(t, svc.SeedAdmin(ctx, "admin@example.com", "admin123"))

	result, err := svc.Login(ctx, "admin@example.com", "admin123")
	require.NoError(t, err)
	assert.True(t, result.User.IsAdmin)
}

func TestUserByID_NotFound(t *testing.T) {
	svc, _ := newAuthService()

	result, err := svc.Register(context.Background(), registerParams())
	require.NoError(t, err)

	profile, err := svc.UserByID(context.Background(), result.User.ID)
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", profile.Email)

	_, err = svc.UserByID(context.Background(), uuid.New())
	require.Error(t, err)
	assert.True(t, dErrors.Is(err, dErrors.CodeNotFound))
}
