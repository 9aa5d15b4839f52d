package auth

import (
	"testing"
	"time"

	"backoffice/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = "access-secret"
	cfg.SecretKey.Refresh = "refresh-secret"
	cfg.Auth = &config.AuthConfig{
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	userID := uuid.New()
	access, refresh, err := svc.GenerateTokens(userID, "agent")
	require.NoError(t, err)
	require.NotEmpty(t, access)
	require.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	claims, err := svc.ValidateAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "agent", claims.Role)
	assert.Equal(t, "access", claims.Type)

	refreshClaims, err := svc.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, userID, refreshClaims.UserID)
	assert.Equal(t, "refresh", refreshClaims.Type)
	assert.Empty(t, refreshClaims.Role)
}

func TestJWTService_RejectsWrongTokenType(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	access, refresh, err := svc.GenerateTokens(uuid.New(), "manager")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(refresh)
	assert.Error(t, err)

	_, err = svc.ValidateRefreshToken(access)
	assert.Error(t, err)
}

func TestJWTService_RejectsTamperedToken(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	access, _, err := svc.GenerateTokens(uuid.New(), "ceo")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access + "x")
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	// Built directly to sidestep the constructor's TTL validation; a negative
	// TTL mints tokens that are already past their expiry.
	svc := &jwtService{
		accessSecret:  "access-secret",
		refreshSecret: "refresh-secret",
		accessTTL:     -time.Minute,
		refreshTTL:    -time.Minute,
	}

	access, _, err := svc.GenerateTokens(uuid.New(), "agent")
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(access)
	assert.Error(t, err)
}

func TestJWTService_MissingSecrets(t *testing.T) {
	cfg := testConfig()
	cfg.SecretKey.Refresh = ""

	_, err := NewJWTService(cfg)
	assert.Error(t, err)
}

func TestJWTService_HashTokenDeterministic(t *testing.T) {
	svc, err := NewJWTService(testConfig())
	require.NoError(t, err)

	h1 := svc.HashToken("some-token")
	h2 := svc.HashToken("some-token")
	assert.Equal(t, h1, h2)
	assert.Len(t, h1, 64)
	assert.NotEqual(t, h1, svc.HashToken("another-token"))
}
