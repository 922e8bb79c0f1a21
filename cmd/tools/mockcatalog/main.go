package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"catalogadmin.dev/app/internal/catalogapi/catalogfake"
	"catalogadmin.dev/app/internal/modules/products"
)

func main() {
	_ = godotenv.Load()

	addr := flag.String("addr", ":9090", "Listen address")
	apiPath := flag.String("api-path", envOr("CATALOG_API_PATH", "demo"), "API path segment")
	username := flag.String("username", "admin@example.com", "Accepted sign-in email")
	password := flag.String("password", "admin", "Accepted sign-in password")
	seed := flag.Int("seed", 12, "Number of demo products to create")
	flag.Parse()

	gin.SetMode(gin.ReleaseMode)
	fake := catalogfake.New(catalogfake.Config{
		APIPath:  *apiPath,
		Username: *username,
		Password: *password,
	})
	for i := 1; i <= *seed; i++ {
		fake.Seed(demoProduct(i))
	}

	srv := &http.Server{Addr: *addr, Handler: fake.Handler(), ReadHeaderTimeout: 5 * time.Second}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Printf("Mock catalog on %s (path %q, sign in as %s / %s)\n", *addr, *apiPath, *username, *password)
		fmt.Printf("Point the console at it: CATALOG_API_BASE=http://localhost%s CATALOG_API_PATH=%s\n", *addr, *apiPath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}
}

func demoProduct(i int) products.Product {
	origin := float64(100 * i)
	price := origin * 0.8
	return products.Product{
		Title:       fmt.Sprintf("Demo product %d", i),
		Category:    []string{"shoes", "bags", "hats"}[i%3],
		Unit:        "pcs",
		OriginPrice: &origin,
		Price:       &price,
		Description: "Seeded by mockcatalog.",
		IsEnabled:   products.Flag(i%2 == 0),
		ImageURL:    products.PlaceholderImageURL,
		ImagesURL:   []string{},
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
