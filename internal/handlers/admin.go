package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/contextutil"
	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/storage"
)

// maxJSONBody bounds admin JSON request bodies.
const maxJSONBody = 2 << 20

// AdminHandler exposes the editor API.
type AdminHandler struct {
	admin service.AdminService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(admin service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

// StatusRequest is the body of PUT /api/admin/posts/{id}/status.
type StatusRequest struct {
	Status storage.PostStatus `json:"status"`
}

// PreviewRequest is the body of POST /api/admin/preview.
type PreviewRequest struct {
	Content string `json:"content"`
}

// PreviewResponse carries rendered markdown.
type PreviewResponse struct {
	HTML     string             `json:"html"`
	Headings []markdown.Heading `json:"headings"`
}

// UploadResponse carries the public URL of an uploaded image.
type UploadResponse struct {
	URL string `json:"url"`
}

// DashboardResponse summarises the blog.
type DashboardResponse struct {
	Counts storage.StatusCounts `json:"counts"`
	Recent []storage.Post       `json:"recent"`
}

// decodeJSON reads a bounded JSON body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ctx := r.Context()
	if err := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody)).Decode(v); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	d, err := h.admin.Dashboard(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load dashboard")
		return
	}
	recent := d.Recent
	if recent == nil {
		recent = []storage.Post{}
	}
	writeJSON(ctx, w, http.StatusOK, DashboardResponse{Counts: d.Counts, Recent: recent})
}

// ListPosts handles GET /api/admin/posts?status=.
func (h *AdminHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	posts, err := h.admin.ListPosts(ctx, storage.PostStatus(r.URL.Query().Get("status")))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to list posts")
		return
	}
	if posts == nil {
		posts = []storage.Post{}
	}
	writeJSON(ctx, w, http.StatusOK, posts)
}

// GetPost handles GET /api/admin/posts/{id}.
func (h *AdminHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	post, err := h.admin.GetPost(ctx, chi.URLParam(r, "id"))
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load post")
		return
	}
	writeJSON(ctx, w, http.StatusOK, post)
}

// CreatePost handles POST /api/admin/posts.
func (h *AdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in service.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := h.admin.CreatePost(ctx, in)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to create post")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, post)
}

// UpdatePost handles PUT /api/admin/posts/{id}.
func (h *AdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in service.PostInput
	if !decodeJSON(w, r, &in) {
		return
	}
	post, err := h.admin.UpdatePost(ctx, chi.URLParam(r, "id"), in)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update post")
		return
	}
	writeJSON(ctx, w, http.StatusOK, post)
}

// DeletePost handles DELETE /api/admin/posts/{id}.
func (h *AdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.admin.DeletePost(ctx, chi.URLParam(r, "id")); err != nil {
		handleServiceError(w, ctx, err, "Failed to delete post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SetStatus handles PUT /api/admin/posts/{id}/status.
func (h *AdminHandler) SetStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req StatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if err := h.admin.SetStatus(ctx, chi.URLParam(r, "id"), req.Status); err != nil {
		handleServiceError(w, ctx, err, "Failed to change status")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Profile handles GET /api/admin/profile.
func (h *AdminHandler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	profile, err := h.admin.Profile(ctx)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to load profile")
		return
	}
	writeJSON(ctx, w, http.StatusOK, profile)
}

// UpdateProfile handles PUT /api/admin/profile.
func (h *AdminHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var in service.ProfileInput
	if !decodeJSON(w, r, &in) {
		return
	}
	profile, err := h.admin.UpdateProfile(ctx, in)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to update profile")
		return
	}
	writeJSON(ctx, w, http.StatusOK, profile)
}

// UploadImage handles POST /api/admin/uploads with a multipart "file" field.
func (h *AdminHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, service.MaxImageSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "invalid upload", "error", err)
		writeError(w, http.StatusBadRequest, "Missing or oversized file")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	data, err := io.ReadAll(file)
	if err != nil {
		logger.WarnContext(ctx, "failed to read upload", "error", err)
		writeError(w, http.StatusBadRequest, "Failed to read file")
		return
	}

	url, err := h.admin.UploadImage(ctx, header.Filename, data)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to upload image")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, UploadResponse{URL: url})
}

// Preview handles POST /api/admin/preview.
func (h *AdminHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req PreviewRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	doc, err := h.admin.Preview(ctx, req.Content)
	if err != nil {
		handleServiceError(w, ctx, err, "Failed to render preview")
		return
	}
	writeJSON(ctx, w, http.StatusOK, PreviewResponse{HTML: doc.HTML, Headings: doc.Headings})
}
