package auth_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"catalogadmin.dev/app/internal/catalogapi"
	"catalogadmin.dev/app/internal/catalogapi/catalogfake"
	"catalogadmin.dev/app/internal/modules/auth"
)

func newAuth(t *testing.T, maxTTL time.Duration) (*catalogfake.Server, *auth.MemoryStore, *auth.Service) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := catalogfake.New(catalogfake.Config{
		APIPath:  "shop",
		Username: "admin@example.com",
		Password: "secret",
	})
	srv := httptest.NewServer(fake.Handler())
	t.Cleanup(srv.Close)

	client := catalogapi.New(catalogapi.Config{BaseURL: srv.URL, APIPath: "shop"})
	store := auth.NewMemoryStore()
	return fake, store, auth.NewService(client, store, nil, maxTTL)
}

func TestService_SignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("OpensSession", func(t *testing.T) {
		_, store, svc := newAuth(t, 0)

		sess, err := svc.SignIn(ctx, " admin@example.com ", "secret")
		require.NoError(t, err)
		require.NotEmpty(t, sess.ID)
		require.NotEmpty(t, sess.Token)
		require.Equal(t, "admin@example.com", sess.Username)

		stored, err := store.Get(ctx, sess.ID)
		require.NoError(t, err)
		require.Equal(t, sess.Token, stored.Token)
	})

	t.Run("CapsLifetime", func(t *testing.T) {
		_, _, svc := newAuth(t, time.Hour)

		sess, err := svc.SignIn(ctx, "admin@example.com", "secret")
		require.NoError(t, err)
		require.WithinDuration(t, time.Now().Add(time.Hour), sess.ExpiresAt, time.Minute)
	})

	t.Run("RejectsBadCredentials", func(t *testing.T) {
		_, _, svc := newAuth(t, 0)

		_, err := svc.SignIn(ctx, "admin@example.com", "nope")
		require.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})
}

func TestService_ResumeAndVerify(t *testing.T) {
	ctx := context.Background()

	t.Run("ResumeUnknown", func(t *testing.T) {
		_, _, svc := newAuth(t, 0)
		_, err := svc.Resume(ctx, "missing")
		require.ErrorIs(t, err, auth.ErrSessionNotFound)
		_, err = svc.Resume(ctx, "")
		require.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("ResumeExpiredDeletes", func(t *testing.T) {
		_, store, svc := newAuth(t, 0)
		require.NoError(t, store.Create(ctx, auth.Session{
			ID:        "old",
			Token:     "t",
			ExpiresAt: time.Now().Add(-time.Minute),
		}))

		_, err := svc.Resume(ctx, "old")
		require.ErrorIs(t, err, auth.ErrSessionExpired)

		_, err = store.Get(ctx, "old")
		require.ErrorIs(t, err, auth.ErrSessionNotFound)
	})

	t.Run("VerifyRevokedTokenDropsSession", func(t *testing.T) {
		fake, store, svc := newAuth(t, 0)
		sess, err := svc.SignIn(ctx, "admin@example.com", "secret")
		require.NoError(t, err)

		require.NoError(t, svc.Verify(ctx, sess))

		fake.RevokeAll()
		require.ErrorIs(t, svc.Verify(ctx, sess), auth.ErrSessionInvalid)

		_, err = store.Get(ctx, sess.ID)
		require.ErrorIs(t, err, auth.ErrSessionNotFound)
	})
}

func TestService_SignOut(t *testing.T) {
	ctx := context.Background()
	_, store, svc := newAuth(t, 0)

	sess, err := svc.SignIn(ctx, "admin@example.com", "secret")
	require.NoError(t, err)

	require.NoError(t, svc.SignOut(ctx, sess.ID))
	_, err = store.Get(ctx, sess.ID)
	require.ErrorIs(t, err, auth.ErrSessionNotFound)

	// second sign-out is harmless
	require.NoError(t, svc.SignOut(ctx, sess.ID))
}

func TestService_Sweep(t *testing.T) {
	ctx := context.Background()
	_, store, svc := newAuth(t, 0)

	require.NoError(t, store.Create(ctx, auth.Session{ID: "a", ExpiresAt: time.Now().Add(-time.Second)}))
	require.NoError(t, store.Create(ctx, auth.Session{ID: "b", ExpiresAt: time.Now().Add(time.Hour)}))

	n, err := svc.Sweep(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = store.Get(ctx, "b")
	require.NoError(t, err)
}

// failingDelete keeps sessions but cannot remove them.
type failingDelete struct {
	*auth.MemoryStore
}

func (failingDelete) Delete(context.Context, string) error {
	return errors.New("db down")
}

func TestService_ResumeExpiredLogsDeleteFailure(t *testing.T) {
	ctx := context.Background()
	store := failingDelete{auth.NewMemoryStore()}
	require.NoError(t, store.Create(ctx, auth.Session{
		ID:        "old",
		Token:     "t",
		ExpiresAt: time.Now().Add(-time.Minute),
	}))

	var logs bytes.Buffer
	l := slog.New(slog.NewTextHandler(&logs, nil))
	svc := auth.NewService(nil, store, l, 0)

	_, err := svc.Resume(ctx, "old")
	require.ErrorIs(t, err, auth.ErrSessionExpired)
	require.Contains(t, logs.String(), "session_delete_failed")
	require.Contains(t, logs.String(), "db down")
}
