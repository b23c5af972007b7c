package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	require.NotEqual(t, "correct horse battery staple", hash)

	require.True(t, CheckPasswordHash("correct horse battery staple", hash))
	require.False(t, CheckPasswordHash("wrong password", hash))
}

func TestHashPasswordSalted(t *testing.T) {
	h1, err := HashPassword("password123!")
	require.NoError(t, err)
	h2, err := HashPassword("password123!")
	require.NoError(t, err)
	require.NotEqual(t, h1, h2)
}
