package forth

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_ParseNumber(t *testing.T) {
	for _, tc := range []struct {
		tok  string
		base int
		val  int
		ok   bool
	}{
		{"123", 10, 123, true},
		{"-123", 10, -123, true},
		{"$ff", 10, 255, true},
		{"0x1A", 10, 26, true},
		{"017", 10, 15, true},
		{"#10", 16, 10, true},
		{"ff", 16, 255, true},
		{"ff", 10, 0, false},
		{"", 10, 0, false},
		{"z", 36, 35, true},
	} {
		v, ok := parseNumber(tc.tok, tc.base)
		require.Equal(t, tc.ok, ok, "token %q base %d", tc.tok, tc.base)
		if tc.ok {
			require.Equal(t, tc.val, v, "token %q base %d", tc.tok, tc.base)
		}
	}
}

func Test_ParseCharLiteral(t *testing.T) {
	v, ok := parseCharLiteral("'A'")
	require.True(t, ok)
	require.Equal(t, int('A'), v)

	v, ok = parseCharLiteral("<ESC>")
	require.True(t, ok)
	require.Equal(t, 0x1b, v)

	_, ok = parseCharLiteral("nope")
	require.False(t, ok)
}
