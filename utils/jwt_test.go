package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zapcontacts/config"
)

func signTestToken(t *testing.T, key string, claims *Claims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(key))
	require.NoError(t, err)
	return signed
}

func TestParseJWTToken(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-signing-key"

	signed := signTestToken(t, "test-signing-key", &Claims{
		UserID:    42,
		SessionID: "session-abc",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	})

	claims, err := ParseJWTToken(signed)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "session-abc", claims.SessionID)
}

func TestParseJWTTokenRejectsWrongKey(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-signing-key"

	signed := signTestToken(t, "another-key", &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(15 * time.Minute)),
		},
	})

	_, err := ParseJWTToken(signed)
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsExpired(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-signing-key"

	signed := signTestToken(t, "test-signing-key", &Claims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})

	_, err := ParseJWTToken(signed)
	assert.Error(t, err)
}

func TestParseJWTTokenRejectsGarbage(t *testing.T) {
	config.AppConfig.EncryptionKey = "test-signing-key"

	_, err := ParseJWTToken("not.a.token")
	assert.Error(t, err)
}
