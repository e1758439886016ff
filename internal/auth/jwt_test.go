package auth_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vlemaire/flashdeck/internal/auth"
)

const testSecret = "test-secret-that-is-long-enough-for-hmac"

func newTestService(t *testing.T) *auth.JWTService {
	t.Helper()
	svc, err := auth.NewJWTService(testSecret, 15*time.Minute, 24*time.Hour)
	require.NoError(t, err)
	return svc
}

func TestNewJWTService_RejectsShortSecret(t *testing.T) {
	_, err := auth.NewJWTService("short", time.Minute, time.Hour)
	assert.Error(t, err)
}

func TestTokenPair_RoundTrip(t *testing.T) {
	svc := newTestService(t)

	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	assert.NotEqual(t, pair.AccessToken, pair.RefreshToken)

	userID, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)

	userID, err = svc.ValidateRefreshToken(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidate_WrongTokenType(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType, "refresh token must not authenticate requests")

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrWrongTokenType)
}

func TestValidate_TamperedToken(t *testing.T) {
	svc := newTestService(t)
	pair, err := svc.GenerateTokenPair("user-123")
	require.NoError(t, err)

	tampered := pair.AccessToken[:len(pair.AccessToken)-2] + "xx"
	_, err = svc.ValidateAccessToken(tampered)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)

	_, err = svc.ValidateAccessToken("not.a.jwt")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestValidate_DifferentKey(t *testing.T) {
	svc := newTestService(t)
	other, err := auth.NewJWTService(strings.Repeat("z", 32), time.Minute, time.Hour)
	require.NoError(t, err)

	pair, err := other.GenerateTokenPair("user-123")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}
