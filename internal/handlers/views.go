package handlers

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"devfolio/internal/contextutil"
	"devfolio/internal/service"
)

// UpdateViewsHandler refreshes stored view counts. It is called by a
// scheduler presenting the cron secret as a bearer token.
type UpdateViewsHandler struct {
	updater service.ViewUpdater
	secret  string
}

// NewUpdateViewsHandler creates a new UpdateViewsHandler. An empty secret
// rejects every request.
func NewUpdateViewsHandler(updater service.ViewUpdater, secret string) *UpdateViewsHandler {
	return &UpdateViewsHandler{updater: updater, secret: secret}
}

// UpdateViewsResponse is the body of a successful view refresh.
type UpdateViewsResponse struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	Updated    int    `json:"updated"`
	TotalPosts int    `json:"totalPosts"`
}

// ServeHTTP handles GET /api/update-views.
func (h *UpdateViewsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if !bearerMatches(r, h.secret) {
		logger.WarnContext(ctx, "unauthorized view update request")
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	result, err := h.updater.UpdateAll(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update views")
		return
	}

	writeJSON(ctx, w, http.StatusOK, UpdateViewsResponse{
		Success:    true,
		Message:    result.Message(),
		Updated:    result.Updated,
		TotalPosts: result.Total,
	})
}

// bearerMatches reports whether r carries "Bearer <token>". An empty token
// never matches.
func bearerMatches(r *http.Request, token string) bool {
	if token == "" {
		return false
	}
	presented, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(presented), []byte(token)) == 1
}
