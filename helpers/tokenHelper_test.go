package helpers

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	SECRET_KEY = "test-secret"

	token, refreshToken, err := GenerateAllTokens("alice@example.com", "Alice", "user-1", "customer")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.NotEmpty(t, refreshToken)

	claims, msg := ValidateToken(token)
	require.Empty(t, msg)
	require.NotNil(t, claims)
	assert.Equal(t, "alice@example.com", claims.Email)
	assert.Equal(t, "Alice", claims.Name)
	assert.Equal(t, "user-1", claims.Uid)
	assert.Equal(t, "customer", claims.Role)
}

func TestValidateRefreshTokenCarriesOnlyUid(t *testing.T) {
	SECRET_KEY = "test-secret"

	_, refreshToken, err := GenerateAllTokens("alice@example.com", "Alice", "user-1", "customer")
	require.NoError(t, err)

	claims, msg := ValidateToken(refreshToken)
	require.Empty(t, msg)
	assert.Equal(t, "user-1", claims.Uid)
	assert.Empty(t, claims.Email)
	assert.Empty(t, claims.Role)
}

func TestValidateTokenGarbage(t *testing.T) {
	SECRET_KEY = "test-secret"

	claims, msg := ValidateToken("not-a-token")
	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	SECRET_KEY = "test-secret"
	token, _, err := GenerateAllTokens("alice@example.com", "Alice", "user-1", "customer")
	require.NoError(t, err)

	SECRET_KEY = "another-secret"
	claims, msg := ValidateToken(token)
	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}

func TestValidateTokenExpired(t *testing.T) {
	SECRET_KEY = "test-secret"

	claim := SignedDetails{
		Email: "alice@example.com",
		Uid:   "user-1",
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claim).SignedString([]byte(SECRET_KEY))
	require.NoError(t, err)

	claims, msg := ValidateToken(expired)
	assert.Nil(t, claims)
	assert.NotEmpty(t, msg)
}
