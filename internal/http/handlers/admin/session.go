package admin

import (
	"errors"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/catalogapi"
	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/internal/http/middleware"
	"catalogadmin.dev/app/internal/http/sessioncookie"
	"catalogadmin.dev/app/internal/modules/auth"
	"catalogadmin.dev/app/internal/shared/apperr"
)

// Gate ends the console session when the catalog service stops accepting
// its token.
type Gate struct {
	Auth   *auth.Service
	Flash  *flash.Codec
	Cookie *sessioncookie.Codec
}

// token returns the signed-in operator's session. RequireAuth runs first,
// so a miss here is a routing mistake.
func token(c *gin.Context) (auth.Session, bool) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Error(apperr.UnauthorizedErr("Please sign in to continue."))
		return auth.Session{}, false
	}
	return sess, true
}

// Rejected handles a remote 401/403: the session is dropped and the
// operator is sent back to sign in. It reports whether err was such a
// rejection.
func (g Gate) Rejected(c *gin.Context, sess auth.Session, err error) bool {
	if !errors.Is(err, catalogapi.ErrUnauthorized) {
		return false
	}
	g.Auth.Invalidate(c.Request.Context(), sess.ID)
	g.Cookie.Clear(c)
	middleware.DenySession(c, g.Flash, "Your session has ended. Please sign in again.")
	return true
}
