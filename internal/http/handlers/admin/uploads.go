package admin

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalogadmin.dev/app/internal/http/middleware"
	"catalogadmin.dev/app/internal/shared/apperr"
	"catalogadmin.dev/app/internal/storage"
)

type UploadsHandler struct {
	Storage  storage.Storage
	MaxBytes int64
	Log      *slog.Logger
}

func NewUploadsHandler(s storage.Storage, maxBytes int64, l *slog.Logger) *UploadsHandler {
	if l == nil {
		l = slog.Default()
	}
	return &UploadsHandler{Storage: s, MaxBytes: maxBytes, Log: l}
}

// Post stores one image (multipart field "file") and returns the URL to put
// into an image field.
func (h *UploadsHandler) Post(c *gin.Context) {
	if h.MaxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxBytes)
	}

	fh, err := c.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			c.Error(apperr.InvalidErr("The image is too large.", nil))
			return
		}
		c.Error(apperr.InvalidErr("Choose an image to upload.", map[string]string{"file": "This field is required."}))
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.Error(apperr.Wrap(err))
		return
	}
	defer f.Close()

	ct, err := sniff(f, fh.Header.Get("Content-Type"))
	if err != nil {
		c.Error(apperr.Wrap(err))
		return
	}

	res, err := h.Storage.Put(c.Request.Context(), f, storage.PutInput{
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	})
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedType) {
			c.Error(apperr.InvalidErr("Only PNG, JPEG, WebP or GIF images can be uploaded.", nil))
			return
		}
		c.Error(apperr.Wrap(err))
		return
	}

	h.Log.LogAttrs(c.Request.Context(), slog.LevelInfo, "image_uploaded",
		slog.String("request_id", middleware.GetRequestID(c)),
		slog.String("key", res.Key),
		slog.Int64("size", fh.Size),
	)
	c.JSON(http.StatusCreated, gin.H{"success": true, "imageUrl": res.URL})
}

// sniff trusts the bytes over the declared type and rewinds the file.
func sniff(f io.ReadSeeker, declared string) (string, error) {
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ct := http.DetectContentType(head[:n])
	if ct == "application/octet-stream" && declared != "" {
		if mt, _, err := mime.ParseMediaType(declared); err == nil {
			return mt, nil
		}
	}
	return ct, nil
}
