package auth

import (
	"testing"
	"time"

	"github.com/edipub/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService(accessTTL time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-0123456789abcdef0123456789",
		AccessTokenExpiration:  accessTTL,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "edipub-test",
		MaxRefreshCount:        2,
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "pdg@edipub.ga",
		Role:   "PDG",
	})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", pair.TokenType)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "pdg@edipub.ga", claims.Email)
	assert.Equal(t, "PDG", claims.Role)

	parsed, err := claims.GetUserUUID()
	require.NoError(t, err)
	assert.Equal(t, userID, parsed)
	assert.Greater(t, claims.GetRemainingTTL(), time.Duration(0))
}

func TestJWTService_TokenTypeMismatch(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)

	_, err = svc.ValidateRefreshToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidTokenType)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	svc := newTestJWTService(-1 * time.Minute)

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	other := NewJWTService(config.JWTConfig{
		Secret:                 "another-secret-0123456789abcdef01234",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "edipub-test",
	})

	pair, err := other.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_RefreshTokenPair(t *testing.T) {
	svc := newTestJWTService(15 * time.Minute)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "auteur@edipub.ga",
		Role:   "AUTEUR",
	})
	require.NoError(t, err)

	t.Run("refresh reflects the current role", func(t *testing.T) {
		refreshed, err := svc.RefreshTokenPair(pair.RefreshToken, "auteur@edipub.ga", "CONCEPTEUR")
		require.NoError(t, err)

		claims, err := svc.ValidateAccessToken(refreshed.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "CONCEPTEUR", claims.Role)
		assert.Equal(t, userID.String(), claims.UserID)
	})

	t.Run("refresh count is capped", func(t *testing.T) {
		current := pair.RefreshToken
		for i := 0; i < 2; i++ {
			refreshed, err := svc.RefreshTokenPair(current, "auteur@edipub.ga", "AUTEUR")
			require.NoError(t, err)
			current = refreshed.RefreshToken
		}

		_, err := svc.RefreshTokenPair(current, "auteur@edipub.ga", "AUTEUR")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})

	t.Run("access token cannot be used to refresh", func(t *testing.T) {
		_, err := svc.RefreshTokenPair(pair.AccessToken, "auteur@edipub.ga", "AUTEUR")
		assert.ErrorIs(t, err, ErrInvalidTokenType)
	})
}
