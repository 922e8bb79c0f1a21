package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/shared/apperr"
	"catalogadmin.dev/app/internal/shared/hmacsig"
)

const (
	CtxKeyCSRF     = "csrf_token"
	CSRFFormField  = "csrf_token"
	HeaderCSRF     = "X-CSRF-Token"
	csrfSignPrefix = "csrf:"
)

// CSRFToken is the form token bound to one session id.
func CSRFToken(secret []byte, sessionID string) string {
	return hmacsig.Sign(secret, csrfSignPrefix+sessionID)
}

// CSRF runs after SessionMiddleware. Signed-in requests get a token on the
// context; their unsafe requests must echo it in the csrf_token field or
// the X-CSRF-Token header.
func CSRF(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := CurrentSession(c)
		if !ok {
			c.Next()
			return
		}
		want := CSRFToken(secret, sess.ID)
		c.Set(CtxKeyCSRF, want)

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		got := c.GetHeader(HeaderCSRF)
		if got == "" && c.ContentType() == gin.MIMEPOSTForm {
			got = c.PostForm(CSRFFormField)
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			Fail(c, apperr.ForbiddenErr("This form has expired. Reload the page and try again."))
			return
		}
		c.Next()
	}
}

func GetCSRFToken(c *gin.Context) string {
	return c.GetString(CtxKeyCSRF)
}
