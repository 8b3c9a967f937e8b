package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	token, err := GenerateToken("64f000000000000000000001", "seller")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, role, err := ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "64f000000000000000000001", userID)
	assert.Equal(t, "seller", role)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	_, _, err := ParseToken("not-a-token")
	assert.Error(t, err)
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret-one")
	token, err := GenerateToken("64f000000000000000000001", "buyer")
	require.NoError(t, err)

	t.Setenv("JWT_SECRET", "secret-two")
	_, _, err = ParseToken(token)
	assert.Error(t, err)
}

func TestParseTokenRejectsExpired(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": "64f000000000000000000001",
		"role":   "buyer",
		"exp":    time.Now().Add(-time.Hour).Unix(),
	})
	tokenString, err := expired.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = ParseToken(tokenString)
	assert.Error(t, err)
}

func TestParseTokenRequiresUserID(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	anonymous := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"role": "buyer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	tokenString, err := anonymous.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = ParseToken(tokenString)
	assert.Error(t, err)
}
