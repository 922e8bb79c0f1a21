package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"catalogadmin.dev/app/internal/catalogapi"
	"catalogadmin.dev/app/internal/config"
	apphttp "catalogadmin.dev/app/internal/http"
	"catalogadmin.dev/app/internal/http/flash"
	"catalogadmin.dev/app/internal/http/sessioncookie"
	"catalogadmin.dev/app/internal/modules/auth"
	"catalogadmin.dev/app/internal/modules/products"
	"catalogadmin.dev/app/internal/storage"
)

func main() {
	// .env is optional; production uses real env vars
	_ = godotenv.Load()

	cfg := config.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel(),
	}))

	if err := run(cfg, logger); err != nil {
		logger.Error("server_exit", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if cfg.Server.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openSessionStore(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	files, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	catalog := catalogapi.New(catalogapi.Config{
		BaseURL: cfg.Catalog.BaseURL,
		APIPath: cfg.Catalog.APIPath,
		Timeout: cfg.Catalog.Timeout,
		Logger:  logger,
	})
	authSvc := auth.NewService(catalog, store, logger, cfg.Session.MaxTTL)
	productSvc := products.NewService(catalog, logger)

	secret := []byte(cfg.Session.Secret)
	router, err := apphttp.NewRouter(logger, apphttp.Deps{
		Auth:           authSvc,
		Products:       productSvc,
		Flash:          flash.NewCodec(secret, cfg.Session.FlashCookie, cfg.Session.Secure),
		Session:        sessioncookie.New(secret, cfg.Session.CookieName, cfg.Session.Secure),
		Storage:        files,
		MaxUploadBytes: cfg.Storage.MaxUploadBytes,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server_started",
			slog.String("addr", cfg.Server.Addr),
			slog.String("env", cfg.Server.AppEnv),
			slog.String("storage", files.Driver),
			slog.Bool("db_sessions", cfg.Database.UseDB()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		sweepSessions(gctx, authSvc, cfg.Session.SweepInterval, logger)
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("server_shutting_down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("server_stopped")
	return nil
}

// openSessionStore uses MySQL when DB_DSN is set and an in-memory store
// otherwise.
func openSessionStore(dbCfg config.DatabaseConfig, logger *slog.Logger) (auth.Store, func(), error) {
	if !dbCfg.UseDB() {
		logger.Warn("session_store_memory", slog.String("hint", "set DB_DSN to keep sessions across restarts"))
		return auth.NewMemoryStore(), func() {}, nil
	}

	db, err := gorm.Open(mysql.Open(dbCfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, nil, fmt.Errorf("connect database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return auth.NewGormStore(db), func() { _ = sqlDB.Close() }, nil
}

func sweepSessions(ctx context.Context, svc *auth.Service, every time.Duration, logger *slog.Logger) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := svc.Sweep(ctx)
			if err != nil {
				logger.Warn("session_sweep_failed", slog.Any("err", err))
				continue
			}
			if n > 0 {
				logger.Info("session_sweep", slog.Int64("removed", n))
			}
		}
	}
}
