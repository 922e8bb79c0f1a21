package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"catalogadmin.dev/app/internal/config"
)

func TestLocal_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	l := NewLocal(dir, "/uploads/")

	res, err := l.Put(context.Background(), strings.NewReader("png-bytes"), PutInput{
		Filename:    "shoe.PNG",
		ContentType: "image/png",
	})
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(res.URL, "/uploads/"))
	require.True(t, strings.HasPrefix(res.Key, "shoe-"))
	require.True(t, strings.HasSuffix(res.Key, ".png"))

	b, err := os.ReadFile(filepath.Join(dir, res.Key))
	require.NoError(t, err)
	require.Equal(t, "png-bytes", string(b))

	require.NoError(t, l.Delete(context.Background(), "../"+res.Key))
	_, err = os.Stat(filepath.Join(dir, res.Key))
	require.True(t, os.IsNotExist(err))
}

func TestLocal_RejectsNonImages(t *testing.T) {
	l := NewLocal(t.TempDir(), "/uploads")
	_, err := l.Put(context.Background(), strings.NewReader("<html>"), PutInput{ContentType: "text/html"})
	require.ErrorIs(t, err, ErrUnsupportedType)
}

func TestOpen(t *testing.T) {
	res, err := Open(context.Background(), config.StorageConfig{Driver: "local", LocalDir: "x", LocalURLPrefix: "/u"})
	require.NoError(t, err)
	require.Equal(t, "local", res.Driver)
	require.Equal(t, "x", res.LocalDir)

	_, err = Open(context.Background(), config.StorageConfig{Driver: "s3"})
	require.Error(t, err)

	_, err = Open(context.Background(), config.StorageConfig{Driver: "ftp"})
	require.Error(t, err)
}
