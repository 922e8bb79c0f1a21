package render

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/internal/http/middleware"
	"catalogadmin.dev/app/pkg/view"
)

// Page renders one of the embedded html/template pages by file name.
func Page(c *gin.Context, status int, name string, data any) {
	c.HTML(status, name, data)
}

// RedirectWithFlash is the post/redirect/get step: msg is shown once on the
// next page.
func RedirectWithFlash(c *gin.Context, codec *flash.Codec, location string, kind view.FlashKind, msg string) {
	middleware.SetFlashCookie(c, codec, view.Flash{Kind: kind, Message: msg})
	c.Redirect(http.StatusFound, location)
}
