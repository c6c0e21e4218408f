package jwthelper

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSigningKey = "test-signing-key"

func TestGenerateAndParseToken(t *testing.T) {
	token, err := GenerateToken(testSigningKey, 42, "curl/8.0")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseToken(testSigningKey, token)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "curl/8.0", claims.UserAgent)
	assert.NotNil(t, claims.ExpiresAt)
}

func TestParseToken_WrongKey(t *testing.T) {
	token, err := GenerateToken(testSigningKey, 42, "")
	require.NoError(t, err)

	_, err = ParseToken("another-key", token)
	assert.Error(t, err)
}

func TestParseToken_WrongSigningMethod(t *testing.T) {
	// Tokens signed with anything but HMAC must be rejected, "none" included.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{UserID: 42})
	token, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = ParseToken(testSigningKey, token)
	assert.Error(t, err)
}

func TestParseToken_Garbage(t *testing.T) {
	_, err := ParseToken(testSigningKey, "not.a.token")
	assert.Error(t, err)
}
