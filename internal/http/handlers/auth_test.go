package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeReturnTo(t *testing.T) {
	cases := map[string]string{
		"":                         "",
		"/admin/products?page=2":   "/admin/products?page=2",
		"admin/products":           "",
		"//evil.example":           "",
		`/\evil.example`:           "",
		"/redirect?u=https://evil": "",
		"https://evil.example/":    "",
	}
	for in, want := range cases {
		require.Equal(t, want, normalizeReturnTo(in), in)
	}
}
