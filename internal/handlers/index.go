package handlers

import (
	"context"
	"net/http"

	"devfolio/internal/contextutil"
	"devfolio/internal/importer"
)

// Importer imports the content directory.
type Importer interface {
	ImportAll(ctx context.Context) (importer.Stats, error)
}

// ImportHandler handles HTTP requests for re-importing markdown posts.
type ImportHandler struct {
	importer Importer
}

// NewImportHandler creates a new ImportHandler. A nil importer means no
// content directory is configured.
func NewImportHandler(imp Importer) *ImportHandler {
	return &ImportHandler{importer: imp}
}

// ImportResponse represents the response from the import endpoint.
type ImportResponse struct {
	Message string `json:"message"`
	Status  string `json:"status"`
}

// ServeHTTP starts an import in the background and returns immediately.
func (h *ImportHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.importer == nil {
		writeError(w, http.StatusConflict, "No content directory configured")
		return
	}

	logger.InfoContext(ctx, "import triggered via API")

	// The import outlives the request.
	go func() {
		importCtx := contextutil.DetachedContext(ctx)
		stats, err := h.importer.ImportAll(importCtx)
		if err != nil {
			logger.ErrorContext(importCtx, "import completed with errors", "stats", stats.String(), "error", err)
			return
		}
		logger.InfoContext(importCtx, "import completed successfully", "stats", stats.String())
	}()

	writeJSON(ctx, w, http.StatusAccepted, ImportResponse{
		Message: "Import started. Check server logs for progress.",
		Status:  "accepted",
	})
}
