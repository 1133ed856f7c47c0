package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agrotrade/internal/config"
	entity "agrotrade/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	cfg := config.JWT{Secret: "test-secret", TTLHours: 1}
	user := &entity.User{Username: "buyer1", Role: entity.RoleBuyer}

	token, err := GenerateToken(user, cfg)
	require.NoError(t, err)

	claims, err := ValidateToken(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "buyer1", claims.Username)
	assert.Equal(t, entity.RoleBuyer, claims.Role)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	user := &entity.User{Username: "buyer1", Role: entity.RoleBuyer}
	token, err := GenerateToken(user, config.JWT{Secret: "one", TTLHours: 1})
	require.NoError(t, err)

	_, err = ValidateToken(token, config.JWT{Secret: "two", TTLHours: 1})
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("pass123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("pass123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}
