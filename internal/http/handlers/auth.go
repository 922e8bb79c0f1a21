package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/internal/http/middleware"
	"catalogadmin.dev/app/internal/http/render"
	"catalogadmin.dev/app/internal/http/sessioncookie"
	"catalogadmin.dev/app/internal/http/validation"
	"catalogadmin.dev/app/internal/modules/auth"
	"catalogadmin.dev/app/internal/shared/apperr"
	"catalogadmin.dev/app/pkg/view"
)

const productsPath = "/admin/products"

// normalizeReturnTo validates and sanitizes the return_to parameter.
// Open redirect protection: only relative paths are accepted.
func normalizeReturnTo(s string) string {
	if s == "" || s[0] != '/' {
		return ""
	}
	// protocol-relative "//evil.com"
	if len(s) >= 2 && (s[1] == '/' || s[1] == '\\') {
		return ""
	}
	if containsScheme(s) {
		return ""
	}
	return s
}

func containsScheme(s string) bool {
	for i := 0; i+2 < len(s); i++ {
		if s[i] == ':' && s[i+1] == '/' && s[i+2] == '/' {
			return true
		}
	}
	return false
}

// AuthHandlers serves the landing redirect, login and logout.
type AuthHandlers struct {
	auth   *auth.Service
	flash  *flash.Codec
	cookie *sessioncookie.Codec
	log    *slog.Logger
}

func NewAuthHandlers(svc *auth.Service, flashCodec *flash.Codec, cookie *sessioncookie.Codec, l *slog.Logger) *AuthHandlers {
	if l == nil {
		l = slog.Default()
	}
	return &AuthHandlers{auth: svc, flash: flashCodec, cookie: cookie, log: l}
}

// Landing checks the session against the catalog service and sends the
// operator to the product list or to the login page.
func (h *AuthHandlers) Landing(c *gin.Context) {
	sess, ok := middleware.CurrentSession(c)
	if !ok {
		c.Redirect(http.StatusFound, "/login")
		return
	}

	err := h.auth.Verify(c.Request.Context(), sess)
	switch {
	case err == nil:
		c.Redirect(http.StatusFound, productsPath)
	case errors.Is(err, auth.ErrSessionInvalid):
		h.cookie.Clear(c)
		render.RedirectWithFlash(c, h.flash, "/login", view.FlashWarning, "Your session has ended. Please sign in again.")
	default:
		c.Error(apperr.UpstreamErr("The catalog service is not reachable right now.", err))
	}
}

type loginInput struct {
	Username string `form:"username" binding:"required,email"`
	Password string `form:"password" binding:"required"`
}

func (h *AuthHandlers) LoginGet(c *gin.Context) {
	returnTo := normalizeReturnTo(c.Query("return_to"))
	if _, ok := middleware.CurrentSession(c); ok {
		c.Redirect(http.StatusFound, orDefault(returnTo, productsPath))
		return
	}
	h.renderLogin(c, http.StatusOK, view.LoginPage{ReturnTo: returnTo})
}

func (h *AuthHandlers) LoginPost(c *gin.Context) {
	returnTo := normalizeReturnTo(c.PostForm("return_to"))

	var in loginInput
	if err := c.ShouldBind(&in); err != nil {
		h.renderLogin(c, http.StatusBadRequest, view.LoginPage{
			ReturnTo:    returnTo,
			Form:        view.LoginForm{Username: in.Username},
			FieldErrors: validation.FromBindError(err, &in),
		})
		return
	}

	sess, err := h.auth.SignIn(c.Request.Context(), in.Username, in.Password)
	if err != nil {
		status, alert := http.StatusUnauthorized, "Incorrect email or password."
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			h.log.LogAttrs(c.Request.Context(), slog.LevelError, "sign_in_failed",
				slog.String("request_id", middleware.GetRequestID(c)),
				slog.Any("err", err),
			)
			status, alert = http.StatusBadGateway, "Sign-in is unavailable right now. Please try again."
		}
		h.renderLogin(c, status, view.LoginPage{
			ReturnTo: returnTo,
			Form:     view.LoginForm{Username: in.Username},
			Alert:    alert,
		})
		return
	}

	h.cookie.Set(c, sess.ID, sess.ExpiresAt)
	render.RedirectWithFlash(c, h.flash, orDefault(returnTo, productsPath), view.FlashSuccess, "Signed in.")
}

func (h *AuthHandlers) LogoutPost(c *gin.Context) {
	if sess, ok := middleware.CurrentSession(c); ok {
		if err := h.auth.SignOut(c.Request.Context(), sess.ID); err != nil {
			h.log.LogAttrs(c.Request.Context(), slog.LevelWarn, "sign_out_failed",
				slog.String("request_id", middleware.GetRequestID(c)),
				slog.String("session_id", sess.ID),
				slog.Any("err", err),
			)
		}
	}
	h.cookie.Clear(c)
	render.RedirectWithFlash(c, h.flash, "/login", view.FlashInfo, "Signed out.")
}

func (h *AuthHandlers) renderLogin(c *gin.Context, status int, page view.LoginPage) {
	page.Title = "Sign in"
	page.Flash = middleware.GetFlash(c)
	render.Page(c, status, "login.html", page)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
