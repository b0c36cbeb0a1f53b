package shared

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMakeRandAlphanumericString_Length(t *testing.T) {
	tests := []struct {
		name   string
		length int
	}{
		{"salt sized", 16},
		{"token sized", 64},
		{"empty", 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := MakeRandAlphanumericString(tt.length)
			require.NoError(t, err)
			require.Len(t, s, tt.length)
		})
	}
}

func TestMakeRandAlphanumericString_Charset(t *testing.T) {
	s, err := MakeRandAlphanumericString(256)
	require.NoError(t, err)
	for _, r := range s {
		require.True(t, strings.ContainsRune(alphanumeric, r), "unexpected character %q", r)
	}
}

func TestMakeRandAlphanumericString_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		s, err := MakeRandAlphanumericString(64)
		require.NoError(t, err)
		require.False(t, seen[s], "duplicate token generated")
		seen[s] = true
	}
}
