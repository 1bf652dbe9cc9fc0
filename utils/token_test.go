package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokens() *TokenManager {
	return NewTokenManager("access-secret", "refresh-secret", 15*time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	m := newTestTokens()

	token, err := m.GenerateAccessToken("42", "jane@example.com", "u-42")
	require.NoError(t, err)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.ID)
	assert.Equal(t, "jane@example.com", claims.Email)
	assert.Equal(t, "u-42", claims.UserID)
}

func TestAccessAndRefreshSecretsAreSeparate(t *testing.T) {
	m := newTestTokens()

	access, err := m.GenerateAccessToken("1", "a@b.co", "u-1")
	require.NoError(t, err)
	refresh, err := m.GenerateRefreshToken("1", "a@b.co", "u-1")
	require.NoError(t, err)

	_, err = m.ValidateRefreshToken(access)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ValidateAccessToken(refresh)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.ValidateRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestExpiredTokenRejected(t *testing.T) {
	m := NewTokenManager("access-secret", "refresh-secret", -time.Minute, time.Hour)

	token, err := m.GenerateAccessToken("1", "a@b.co", "u-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTamperedTokenRejected(t *testing.T) {
	m := newTestTokens()

	token, err := m.GenerateAccessToken("1", "a@b.co", "u-1")
	require.NoError(t, err)

	other := NewTokenManager("another-secret", "refresh-secret", 15*time.Minute, time.Hour)
	forged, err := other.GenerateAccessToken("1", "a@b.co", "u-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ValidateAccessToken(token + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
	_, err = m.ValidateAccessToken("")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
