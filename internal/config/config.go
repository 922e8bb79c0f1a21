package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	Database DatabaseConfig
	Storage  StorageConfig
}

type ServerConfig struct {
	Addr            string
	AppEnv          string
	ShutdownTimeout time.Duration
}

type LogConfig struct {
	Level string
}

type CatalogConfig struct {
	BaseURL string
	APIPath string
	Timeout time.Duration
}

type SessionConfig struct {
	CookieName    string
	FlashCookie   string
	Secret        string
	Secure        bool
	MaxTTL        time.Duration
	SweepInterval time.Duration
}

type DatabaseConfig struct {
	DSN string
}

type StorageConfig struct {
	Driver         string
	LocalDir       string
	LocalURLPrefix string
	S3Region       string
	S3Bucket       string
	S3Prefix       string
	S3PublicBase   string
	MaxUploadBytes int64
}

// UseDB reports whether sessions live in MySQL. Without DB_DSN the console
// keeps sessions in memory.
func (d DatabaseConfig) UseDB() bool { return d.DSN != "" }

func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			AppEnv:          getEnv("APP_ENV", "dev"),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 20*time.Second),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			BaseURL: getEnv("CATALOG_API_BASE", ""),
			APIPath: getEnv("CATALOG_API_PATH", ""),
			Timeout: getEnvDuration("CATALOG_API_TIMEOUT", 10*time.Second),
		},
		Session: SessionConfig{
			CookieName:    getEnv("SESSION_COOKIE", "catalog_admin_session"),
			FlashCookie:   getEnv("FLASH_COOKIE", "catalog_admin_flash"),
			Secret:        getEnv("SESSION_SECRET", ""),
			Secure:        getEnvBool("COOKIE_SECURE", false),
			MaxTTL:        getEnvDuration("SESSION_MAX_TTL", 24*time.Hour),
			SweepInterval: getEnvDuration("SESSION_SWEEP_INTERVAL", 10*time.Minute),
		},
		Database: DatabaseConfig{
			DSN: getEnv("DB_DSN", ""),
		},
		Storage: StorageConfig{
			Driver:         getEnv("STORAGE_DRIVER", "local"),
			LocalDir:       getEnv("LOCAL_UPLOAD_DIR", "./storage/uploads"),
			LocalURLPrefix: getEnv("LOCAL_UPLOAD_URL_PREFIX", "/uploads"),
			S3Region:       getEnv("S3_REGION", ""),
			S3Bucket:       getEnv("S3_BUCKET", ""),
			S3Prefix:       getEnv("S3_PREFIX", "uploads"),
			S3PublicBase:   getEnv("S3_PUBLIC_BASE_URL", ""),
			MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 5<<20)),
		},
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Catalog.BaseURL == "" {
		errs = append(errs, errors.New("CATALOG_API_BASE is required"))
	}
	if c.Catalog.APIPath == "" {
		errs = append(errs, errors.New("CATALOG_API_PATH is required"))
	}
	if len(c.Session.Secret) < 16 {
		errs = append(errs, errors.New("SESSION_SECRET must be at least 16 characters"))
	}
	if c.Database.UseDB() {
		if err := checkDSN(c.Database.DSN); err != nil {
			errs = append(errs, err)
		}
	}
	switch c.Storage.Driver {
	case "local":
	case "s3":
		if c.Storage.S3Region == "" || c.Storage.S3Bucket == "" || c.Storage.S3PublicBase == "" {
			errs = append(errs, errors.New("S3_REGION, S3_BUCKET and S3_PUBLIC_BASE_URL are required when STORAGE_DRIVER=s3"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_DRIVER: %q", c.Storage.Driver))
	}
	return errors.Join(errs...)
}

// LogLevel maps LOG_LEVEL onto slog.
func (c *Config) LogLevel() slog.Level {
	switch strings.ToLower(c.Log.Level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// session expiry is compared against DATETIME columns
func checkDSN(dsn string) error {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return fmt.Errorf("DB_DSN: %w", err)
	}
	if !cfg.ParseTime {
		return errors.New("DB_DSN must set parseTime=true")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
