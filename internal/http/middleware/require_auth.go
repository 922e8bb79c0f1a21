package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/pkg/view"
)

// RequireAuth stops requests without a console session: JSON clients get
// 401, pages are sent to the login form with a return_to back here.
func RequireAuth(flashCodec *flash.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentSession(c); ok {
			c.Next()
			return
		}
		DenySession(c, flashCodec, "Please sign in to continue.")
	}
}

// DenySession aborts with 401 for JSON clients or redirects to the login
// page with msg as a warning flash. GET requests keep their URL as
// return_to; a form post cannot be replayed, so it does not.
func DenySession(c *gin.Context, flashCodec *flash.Codec, msg string) {
	if WantsJSON(c) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"error":      msg,
			"request_id": GetRequestID(c),
		})
		return
	}

	loc := "/login"
	if c.Request.Method == http.MethodGet {
		loc += "?return_to=" + url.QueryEscape(c.Request.URL.RequestURI())
	}
	SetFlashCookie(c, flashCodec, view.Flash{Kind: view.FlashWarning, Message: msg})
	c.Redirect(http.StatusFound, loc)
	c.Abort()
}
