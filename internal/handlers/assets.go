package handlers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/blob"
	"devfolio/internal/contextutil"
)

// BlobReader reads stored uploads.
type BlobReader interface {
	Get(ctx context.Context, key string) ([]byte, error)
}

// UploadsHandler serves uploaded images from the blob store.
type UploadsHandler struct {
	blobs BlobReader
}

// NewUploadsHandler creates a new UploadsHandler.
func NewUploadsHandler(blobs BlobReader) *UploadsHandler {
	return &UploadsHandler{blobs: blobs}
}

// ServeHTTP handles GET /uploads/*.
func (h *UploadsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	key := strings.TrimPrefix(path.Clean("/"+chi.URLParam(r, "*")), "/")
	if key == "" || !strings.HasPrefix(key, blob.ImagePrefix) {
		http.NotFound(w, r)
		return
	}

	data, err := h.blobs.Get(ctx, key)
	if errors.Is(err, blob.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		logger.ErrorContext(ctx, "failed to read upload", "key", key, "error", err)
		http.Error(w, "failed to read upload", http.StatusInternalServerError)
		return
	}

	contentType := mime.TypeByExtension(path.Ext(key))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000, immutable")
	http.ServeContent(w, r, path.Base(key), time.Time{}, bytes.NewReader(data))
}

// CSSWriter writes a stylesheet.
type CSSWriter interface {
	HighlightCSS(w io.Writer) error
}

// StylesheetHandler serves a stylesheet generated once at startup.
type StylesheetHandler struct {
	css []byte
}

// NewHighlightCSSHandler renders the code highlighting stylesheet.
func NewHighlightCSSHandler(src CSSWriter) (*StylesheetHandler, error) {
	var buf bytes.Buffer
	if err := src.HighlightCSS(&buf); err != nil {
		return nil, err
	}
	return &StylesheetHandler{css: buf.Bytes()}, nil
}

// ServeHTTP implements http.Handler.
func (h *StylesheetHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(h.css)
}
