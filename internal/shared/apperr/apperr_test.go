package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{InvalidErr("bad", nil), http.StatusBadRequest},
		{UnauthorizedErr("no"), http.StatusUnauthorized},
		{ForbiddenErr("stale form"), http.StatusForbidden},
		{NotFoundErr("gone"), http.StatusNotFound},
		{UpstreamErr("down", errors.New("dial")), http.StatusBadGateway},
		{Wrap(errors.New("boom")), http.StatusInternalServerError},
		{errors.New("plain"), http.StatusInternalServerError},
		{fmt.Errorf("ctx: %w", NotFoundErr("gone")), http.StatusNotFound},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, HTTPStatus(tc.err), tc.err.Error())
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Wrap(errors.New("dsn password leaked"))
	require.Equal(t, defaultPublicMsg, PublicMessage(err))
	require.Equal(t, defaultPublicMsg, PublicMessage(errors.New("raw")))
	require.Equal(t, "down", PublicMessage(UpstreamErr("down", errors.New("dial"))))
}
