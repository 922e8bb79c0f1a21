package middleware

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/http/sessioncookie"
	"catalogadmin.dev/app/internal/modules/auth"
)

const CtxKeySession = "console_session"

// SessionCfg holds configuration for session middleware.
type SessionCfg struct {
	Auth   *auth.Service
	Cookie *sessioncookie.Codec
	Logger *slog.Logger
}

// SessionMiddleware resolves the session cookie to a stored session and
// puts it on the context. Unknown or expired sessions clear the cookie.
func SessionMiddleware(cfg SessionCfg) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := cfg.Cookie.SessionID(c)
		if !ok {
			c.Next()
			return
		}

		sess, err := cfg.Auth.Resume(c.Request.Context(), id)
		if err != nil {
			if !errors.Is(err, auth.ErrSessionNotFound) && !errors.Is(err, auth.ErrSessionExpired) && cfg.Logger != nil {
				cfg.Logger.LogAttrs(c.Request.Context(), slog.LevelError, "session_load_failed",
					slog.String("request_id", GetRequestID(c)),
					slog.Any("err", err),
				)
			}
			cfg.Cookie.Clear(c)
			c.Next()
			return
		}

		c.Set(CtxKeySession, sess)
		c.Next()
	}
}

// CurrentSession returns the signed-in session, if any.
func CurrentSession(c *gin.Context) (auth.Session, bool) {
	v, ok := c.Get(CtxKeySession)
	if !ok {
		return auth.Session{}, false
	}
	sess, ok := v.(auth.Session)
	if !ok || sess.ID == "" {
		return auth.Session{}, false
	}
	return sess, true
}
