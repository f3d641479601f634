package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndCompare(t *testing.T) {
	digest, err := Hash("password123", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)

	assert.True(t, Compare("password123", digest))
	assert.False(t, Compare("password124", digest))
}

func TestHash_IsSalted(t *testing.T) {
	a, err := Hash("9876543210", bcrypt.MinCost)
	require.NoError(t, err)
	b, err := Hash("9876543210", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestCompare_MalformedDigest(t *testing.T) {
	assert.False(t, Compare("password123", "not-a-bcrypt-digest"))
	assert.False(t, Compare("password123", ""))
}

func TestHash_TooLong(t *testing.T) {
	_, err := Hash(strings.Repeat("a", 73), bcrypt.MinCost)
	assert.Error(t, err)
}
