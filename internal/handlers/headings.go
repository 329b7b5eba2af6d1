package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/markdown"
	"devfolio/internal/service"
)

// HeadingsHandler serves the outline of a post as JSON.
type HeadingsHandler struct {
	blog service.BlogService
}

// NewHeadingsHandler creates a new HeadingsHandler.
func NewHeadingsHandler(blog service.BlogService) *HeadingsHandler {
	return &HeadingsHandler{blog: blog}
}

// HeadingsResponse is the body of GET /api/posts/{slug}/headings.
type HeadingsResponse struct {
	Slug     string             `json:"slug"`
	Headings []markdown.Heading `json:"headings"`
}

// ServeHTTP handles HTTP requests for a post outline.
func (h *HeadingsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	slug := chi.URLParam(r, "slug")

	headings, err := h.blog.Headings(ctx, slug)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load headings")
		return
	}
	if headings == nil {
		headings = []markdown.Heading{}
	}
	writeJSON(ctx, w, http.StatusOK, HeadingsResponse{Slug: slug, Headings: headings})
}
