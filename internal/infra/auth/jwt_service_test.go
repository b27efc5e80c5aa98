package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"freshfarm/config"
	"freshfarm/internal/domain/entity"
	"freshfarm/internal/domain/service"
)

func newTokenConfig(secret string, ttl time.Duration) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Access = secret
	cfg.Auth = &config.AuthConfig{AccessTokenTTL: ttl}

	return cfg
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig("test-secret", time.Hour))
	require.NoError(t, err)

	userID := uuid.New()
	token, err := svc.GenerateToken(userID, entity.RoleFarmer)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, entity.RoleFarmer, claims.Role)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	issuer, err := NewJWTService(newTokenConfig("secret-a", time.Hour))
	require.NoError(t, err)
	verifier, err := NewJWTService(newTokenConfig("secret-b", time.Hour))
	require.NoError(t, err)

	token, err := issuer.GenerateToken(uuid.New(), entity.RoleBuyer)
	require.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig("test-secret", -time.Minute))
	require.NoError(t, err)

	token, err := svc.GenerateToken(uuid.New(), entity.RoleBuyer)
	require.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsGarbage(t *testing.T) {
	svc, err := NewJWTService(newTokenConfig("test-secret", time.Hour))
	require.NoError(t, err)

	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)
}

func TestNewJWTService_RequiresSecret(t *testing.T) {
	_, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
}

var _ service.TokenService = (*jwtService)(nil)
