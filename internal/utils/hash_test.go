package utils

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashTokenDeterministic(t *testing.T) {
	require.Equal(t, HashToken("abc123"), HashToken("abc123"))
	require.NotEqual(t, HashToken("abc123"), HashToken("abc124"))
	require.NotEqual(t, "abc123", HashToken("abc123"))
}

func TestRandomStringLengthAndCharset(t *testing.T) {
	for _, n := range []int{6, 48} {
		s := RandomString(n)
		require.Len(t, s, n)
		for _, r := range s {
			require.Contains(t, "0123456789abcdef", string(r))
		}
	}
}

func TestRandomNumericString(t *testing.T) {
	s := RandomNumericString(6)
	require.Len(t, s, 6)
	_, err := strconv.Atoi(s)
	require.NoError(t, err)
}
