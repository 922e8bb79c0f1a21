package sessioncookie

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/shared/hmacsig"
)

var ErrInvalid = errors.New("invalid session cookie")

type Codec struct {
	Secret     []byte
	CookieName string
	Secure     bool
}

func New(secret []byte, name string, secure bool) *Codec {
	return &Codec{Secret: secret, CookieName: name, Secure: secure}
}

// value format: sessionID.base64(hmac(sessionID))
func (c *Codec) Encode(sessionID string) string {
	return hmacsig.Seal(c.Secret, sessionID)
}

func (c *Codec) Decode(v string) (string, error) {
	id, ok := hmacsig.Open(c.Secret, v)
	if !ok || id == "" {
		return "", ErrInvalid
	}
	return id, nil
}

// SessionID reads the cookie. A tampered cookie is cleared.
func (c *Codec) SessionID(ctx *gin.Context) (string, bool) {
	v, err := ctx.Cookie(c.CookieName)
	if err != nil || v == "" {
		return "", false
	}
	id, err := c.Decode(v)
	if err != nil {
		c.Clear(ctx)
		return "", false
	}
	return id, true
}

// Set writes the cookie so that it expires together with the session.
func (c *Codec) Set(ctx *gin.Context, sessionID string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if maxAge <= 0 {
		c.Clear(ctx)
		return
	}
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, c.Encode(sessionID), maxAge, "/", "", c.Secure, true)
}

func (c *Codec) Clear(ctx *gin.Context) {
	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(c.CookieName, "", -1, "/", "", c.Secure, true)
}
