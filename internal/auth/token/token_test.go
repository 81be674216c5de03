package token

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "solestore/pkg/domain-errors"
)

var tokenService = NewService(
	"test-signing-key",
	"solestore-test",
	time.Hour,
)
var userID = uuid.New()

func Test_Sign(t *testing.T) {
	tok, err := tokenService.Sign(userID)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := tokenService.Validate(tok)
	require.NoError(t, err)
	assert.NotNil(t, claims)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func Test_Validate_InvalidToken(t *testing.T) {
	_, err := tokenService.Validate("invalid-token-string")
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_Validate_ExpiredToken(t *testing.T) {
	expired := NewService("test-signing-key", "solestore-test", -time.Hour)

	tok, err := expired.Sign(userID)
	require.NoError(t, err)

	_, err = expired.Validate(tok)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "token has expired"))
}

func Test_Validate_WrongKey(t *testing.T) {
	other := NewService("another-signing-key", "solestore-test", time.Hour)

	tok, err := other.Sign(userID)
	require.NoError(t, err)

	_, err = tokenService.Validate(tok)
	require.ErrorIs(t, err, dErrors.New(dErrors.CodeUnauthorized, "invalid token"))
}

func Test_UserID(t *testing.T) {
	tok, err := tokenService.Sign(userID)
	require.NoError(t, err)

	got, err := tokenService.UserID(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, got)
}
