package storage

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"catalogadmin.dev/app/internal/shared/slug"
)

var ErrUnsupportedType = errors.New("unsupported image type")

type PutInput struct {
	Filename    string
	ContentType string
	Size        int64
}

type PutResult struct {
	Key string
	URL string
}

// Storage keeps uploaded product images and returns the public URL that
// goes into a product's image fields.
type Storage interface {
	Put(ctx context.Context, r io.Reader, in PutInput) (PutResult, error)
	Delete(ctx context.Context, key string) error
}

var imageExts = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
	"image/gif":  ".gif",
}

// ImageExt returns the file extension for an accepted image content type.
func ImageExt(contentType string) (string, error) {
	ext, ok := imageExts[contentType]
	if !ok {
		return "", ErrUnsupportedType
	}
	return ext, nil
}

// objectName is "<slugged filename>-<uuid><ext>", e.g. "red-shoe-3f2c...png".
func objectName(filename, ext string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return slug.Make(base, "image") + "-" + uuid.NewString() + ext
}
