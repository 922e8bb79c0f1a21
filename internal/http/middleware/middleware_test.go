package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/internal/modules/auth"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, GetRequestID(c)) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, "abc-123", w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "bad id\r\n")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.NotEqual(t, "bad id\r\n", w.Body.String())
	require.Len(t, w.Body.String(), 36)
	require.Equal(t, w.Body.String(), w.Header().Get(HeaderRequestID))
}

func TestDenySession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	codec := flash.NewCodec([]byte("0123456789abcdef"), "flash", false)
	r := gin.New()
	r.Use(RequireAuth(codec))
	r.GET("/admin/products", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/admin/products/editor", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin/products?page=3", nil))
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/login?return_to=%2Fadmin%2Fproducts%3Fpage%3D3", w.Header().Get("Location"))
	require.True(t, strings.Contains(w.Header().Get("Set-Cookie"), "flash="))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/admin/products/editor", nil))
	require.Equal(t, "/login", w.Header().Get("Location"))

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/products", nil)
	req.Header.Set("Accept", "application/json")
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCSRF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	secret := []byte("0123456789abcdef")
	r := gin.New()
	r.Use(ErrorHandler(discardLogger()), func(c *gin.Context) {
		if c.GetHeader("X-Test-Session") != "" {
			c.Set(CtxKeySession, auth.Session{ID: c.GetHeader("X-Test-Session")})
		}
	}, CSRF(secret))
	r.GET("/form", func(c *gin.Context) { c.String(http.StatusOK, GetCSRFToken(c)) })
	r.POST("/form", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	post := func(session string, form url.Values, header string) int {
		req := httptest.NewRequest(http.MethodPost, "/form", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.Header.Set("Accept", "application/json")
		if session != "" {
			req.Header.Set("X-Test-Session", session)
		}
		if header != "" {
			req.Header.Set(HeaderCSRF, header)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	req := httptest.NewRequest(http.MethodGet, "/form", nil)
	req.Header.Set("X-Test-Session", "s1")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, CSRFToken(secret, "s1"), w.Body.String())

	// anonymous posts are left to RequireAuth
	require.Equal(t, http.StatusNoContent, post("", url.Values{}, ""))

	require.Equal(t, http.StatusForbidden, post("s1", url.Values{}, ""))
	require.Equal(t, http.StatusForbidden, post("s1", url.Values{CSRFFormField: {CSRFToken(secret, "s2")}}, ""))
	require.Equal(t, http.StatusNoContent, post("s1", url.Values{CSRFFormField: {CSRFToken(secret, "s1")}}, ""))
	require.Equal(t, http.StatusNoContent, post("s1", url.Values{}, CSRFToken(secret, "s1")))
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
