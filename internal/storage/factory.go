package storage

import (
	"context"
	"fmt"

	"catalogadmin.dev/app/internal/config"
)

type FactoryResult struct {
	Driver  string
	Storage Storage

	// set for the local driver; the router serves LocalDir under URLPrefix
	LocalDir  string
	URLPrefix string
}

func Open(ctx context.Context, cfg config.StorageConfig) (FactoryResult, error) {
	switch cfg.Driver {
	case "", "local":
		return FactoryResult{
			Driver:    "local",
			Storage:   NewLocal(cfg.LocalDir, cfg.LocalURLPrefix),
			LocalDir:  cfg.LocalDir,
			URLPrefix: cfg.LocalURLPrefix,
		}, nil

	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" || cfg.S3PublicBase == "" {
			return FactoryResult{}, fmt.Errorf("S3 config missing: S3_REGION, S3_BUCKET, S3_PUBLIC_BASE_URL required")
		}
		s, err := NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicBase,
		})
		if err != nil {
			return FactoryResult{}, err
		}
		return FactoryResult{Driver: "s3", Storage: s}, nil

	default:
		return FactoryResult{}, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.Driver)
	}
}
