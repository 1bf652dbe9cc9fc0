package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPasswordHasherBcrypt(t *testing.T) {
	h := NewPasswordHasher(HasherBcrypt, 4)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", hash)
	assert.True(t, h.Verify(hash, "secret123"))
	assert.False(t, h.Verify(hash, "secret124"))
}

func TestPasswordHasherArgon2(t *testing.T) {
	h := NewPasswordHasher(HasherArgon2, 0)

	hash, err := h.Hash("secret123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2"))
	assert.True(t, h.Verify(hash, "secret123"))
	assert.False(t, h.Verify(hash, "wrong"))
}

func TestPasswordHasherVerifiesEitherAlgorithm(t *testing.T) {
	legacy, err := NewPasswordHasher(HasherBcrypt, 4).Hash("pw-legacy")
	require.NoError(t, err)

	current := NewPasswordHasher(HasherArgon2, 0)
	assert.True(t, current.Verify(legacy, "pw-legacy"))
	assert.False(t, current.Verify("not-a-hash", "pw-legacy"))
}

func TestRandomHexAndHashToken(t *testing.T) {
	a, err := RandomHex(32)
	require.NoError(t, err)
	b, err := RandomHex(32)
	require.NoError(t, err)

	assert.Len(t, a, 64)
	assert.NotEqual(t, a, b)
	assert.Equal(t, HashToken(a), HashToken(a))
	assert.NotEqual(t, a, HashToken(a))
}
