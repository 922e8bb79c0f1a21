package slug

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	require.Equal(t, "red-trail-shoe", Make("  Red Trail_Shoe!! ", "image"))
	require.Equal(t, "image", Make("?!", "image"))
	require.Equal(t, "image", Make("", "image"))

	long := Make(strings.Repeat("ab ", 40), "image")
	require.LessOrEqual(t, len(long), 48)
	require.False(t, strings.HasSuffix(long, "-"))
}
