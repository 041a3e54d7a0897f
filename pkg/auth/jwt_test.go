package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := CreateAccessToken("secret", "user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	claims, err := ParseValidate("secret", token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Sub)
	assert.Equal(t, "user@example.com", claims.Email)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := CreateAccessToken("secret", "user-1", "user@example.com", time.Hour)
	require.NoError(t, err)

	_, err = ParseValidate("other-secret", token)
	assert.Error(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := CreateAccessToken("secret", "user-1", "user@example.com", -time.Minute)
	require.NoError(t, err)

	_, err = ParseValidate("secret", token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	_, err := ParseValidate("secret", "not-a-token")
	assert.Error(t, err)
}
