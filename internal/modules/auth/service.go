package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"catalogadmin.dev/app/internal/catalogapi"
)

// Remote is the slice of the catalog API used for sign-in.
type Remote interface {
	SignIn(ctx context.Context, username, password string) (catalogapi.SignInResult, error)
	Check(ctx context.Context, token string) error
	SignOut(ctx context.Context, token string) error
}

type Service struct {
	remote Remote
	store  Store
	log    *slog.Logger
	maxTTL time.Duration
	now    func() time.Time
}

// NewService: maxTTL caps the session lifetime below the token expiry
// (0 = token expiry only).
func NewService(remote Remote, store Store, l *slog.Logger, maxTTL time.Duration) *Service {
	if l == nil {
		l = slog.Default()
	}
	return &Service{remote: remote, store: store, log: l, maxTTL: maxTTL, now: time.Now}
}

// SignIn exchanges credentials for a remote token and opens a session.
func (s *Service) SignIn(ctx context.Context, username, password string) (Session, error) {
	username = strings.TrimSpace(username)
	res, err := s.remote.SignIn(ctx, username, password)
	if err != nil {
		var apiErr *catalogapi.APIError
		if errors.As(err, &apiErr) && apiErr.Status < 500 {
			return Session{}, fmt.Errorf("%w: %s", ErrInvalidCredentials, apiErr.Message)
		}
		return Session{}, fmt.Errorf("sign in: %w", err)
	}

	now := s.now()
	exp := res.ExpiresAt
	if s.maxTTL > 0 && (exp.IsZero() || exp.After(now.Add(s.maxTTL))) {
		exp = now.Add(s.maxTTL)
	}

	sess := Session{
		ID:        uuid.NewString(),
		Username:  username,
		RemoteUID: res.UID,
		Token:     res.Token,
		ExpiresAt: exp,
		CreatedAt: now,
	}
	if err := s.store.Create(ctx, sess); err != nil {
		return Session{}, fmt.Errorf("store session: %w", err)
	}

	s.log.LogAttrs(ctx, slog.LevelInfo, "session_opened",
		slog.String("session_id", sess.ID),
		slog.String("username", username),
		slog.Time("expires_at", exp),
	)
	return sess, nil
}

// Resume loads a session by id. Expired sessions are removed.
func (s *Service) Resume(ctx context.Context, id string) (Session, error) {
	if id == "" {
		return Session{}, ErrSessionNotFound
	}
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		return Session{}, err
	}
	if sess.Expired(s.now()) {
		if err := s.store.Delete(ctx, id); err != nil {
			s.log.LogAttrs(ctx, slog.LevelWarn, "session_delete_failed",
				slog.String("session_id", id),
				slog.Any("err", err),
			)
		}
		return Session{}, ErrSessionExpired
	}
	return sess, nil
}

// Verify asks the catalog service whether the session token is still
// accepted. A rejected session is removed.
func (s *Service) Verify(ctx context.Context, sess Session) error {
	err := s.remote.Check(ctx, sess.Token)
	if err == nil {
		return nil
	}
	if errors.Is(err, catalogapi.ErrUnauthorized) {
		s.Invalidate(ctx, sess.ID)
		return ErrSessionInvalid
	}
	return fmt.Errorf("verify session: %w", err)
}

// Invalidate drops a session after the catalog service rejected its token.
func (s *Service) Invalidate(ctx context.Context, id string) {
	if err := s.store.Delete(ctx, id); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "session_delete_failed",
			slog.String("session_id", id),
			slog.Any("err", err),
		)
		return
	}
	s.log.LogAttrs(ctx, slog.LevelInfo, "session_invalidated", slog.String("session_id", id))
}

// SignOut ends the session locally; the remote sign-out is best effort.
func (s *Service) SignOut(ctx context.Context, id string) error {
	sess, err := s.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return nil
		}
		return err
	}
	if err := s.remote.SignOut(ctx, sess.Token); err != nil {
		s.log.LogAttrs(ctx, slog.LevelWarn, "remote_signout_failed",
			slog.String("session_id", id),
			slog.Any("err", err),
		)
	}
	return s.store.Delete(ctx, id)
}

// Sweep removes expired sessions.
func (s *Service) Sweep(ctx context.Context) (int64, error) {
	return s.store.DeleteExpired(ctx, s.now())
}
