package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/internal/http/handlers"
	"catalogadmin.dev/app/internal/http/handlers/admin"
	"catalogadmin.dev/app/internal/http/middleware"
	"catalogadmin.dev/app/internal/http/sessioncookie"
	"catalogadmin.dev/app/internal/modules/auth"
	"catalogadmin.dev/app/internal/modules/products"
	"catalogadmin.dev/app/internal/shared/apperr"
	"catalogadmin.dev/app/internal/storage"
	"catalogadmin.dev/app/templates"
)

// Deps are the services the console routes are built from.
type Deps struct {
	Auth     *auth.Service
	Products *products.Service
	Flash    *flash.Codec
	Session  *sessioncookie.Codec
	Storage  storage.FactoryResult

	MaxUploadBytes int64
}

func NewRouter(logger *slog.Logger, d Deps) (*gin.Engine, error) {
	tpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}

	r := gin.New()
	r.SetHTMLTemplate(tpl)

	// ErrorHandler sits outside Recovery so it renders the error a panic
	// leaves behind.
	r.Use(
		middleware.RequestID(),
		middleware.Logger(logger, "/healthz"),
		middleware.ErrorHandler(logger),
		middleware.Recovery(logger),
		middleware.FlashMiddleware(d.Flash),
		middleware.SessionMiddleware(middleware.SessionCfg{
			Auth:   d.Auth,
			Cookie: d.Session,
			Logger: logger,
		}),
		middleware.CSRF(d.Session.Secret),
	)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	if d.Storage.LocalDir != "" && d.Storage.URLPrefix != "" {
		r.Static(d.Storage.URLPrefix, d.Storage.LocalDir)
	}

	authH := handlers.NewAuthHandlers(d.Auth, d.Flash, d.Session, logger)
	r.GET("/", authH.Landing)
	r.GET("/login", authH.LoginGet)
	r.POST("/login", authH.LoginPost)
	r.POST("/logout", authH.LogoutPost)

	gate := admin.Gate{Auth: d.Auth, Flash: d.Flash, Cookie: d.Session}
	productsH := admin.NewProductsHandler(d.Products, gate, logger)

	adm := r.Group("/admin", middleware.RequireAuth(d.Flash))
	{
		adm.GET("/products", productsH.List)
		adm.GET("/products/new", productsH.New)
		adm.GET("/products/:id/edit", productsH.Edit)
		adm.GET("/products/:id/delete", productsH.ConfirmDelete)
		adm.POST("/products/editor", productsH.EditorPost)
		adm.POST("/products/:id/delete", productsH.Delete)

		if d.Storage.Storage != nil {
			uploadsH := admin.NewUploadsHandler(d.Storage.Storage, d.MaxUploadBytes, logger)
			adm.POST("/uploads", uploadsH.Post)
		}
	}

	api := r.Group("/api/editor", middleware.RequireAuth(d.Flash))
	{
		api.POST("/images", admin.Images)
		api.POST("/payload", admin.Payload)
	}

	r.NoRoute(func(c *gin.Context) {
		middleware.Fail(c, apperr.NotFoundErr("Page not found."))
	})

	return r, nil
}
