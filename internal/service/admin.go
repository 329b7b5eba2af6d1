package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_image_store.go -package=mocks devfolio/internal/service ImageStore
//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_admin_service.go -package=mocks devfolio/internal/service AdminService

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"

	"devfolio/internal/blob"
	"devfolio/internal/contextutil"
	"devfolio/internal/markdown"
	"devfolio/internal/storage"
)

// MaxImageSize is the largest accepted image upload in bytes.
const MaxImageSize = 5 << 20

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true, ".svg": true,
}

// ImageStore persists uploaded images.
// This interface is defined from the service layer's perspective (consumer-first).
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte) error
}

// PostInput is the editable content of a post as submitted by the editor.
type PostInput struct {
	Title           string             `json:"title"`
	Slug            string             `json:"slug"`
	Content         string             `json:"content"`
	MetaDescription string             `json:"meta_description"`
	OGImageURL      string             `json:"og_image_url"`
	Tags            string             `json:"tags"` // comma separated
	Status          storage.PostStatus `json:"status"`
}

// ProfileInput is the editable author profile.
type ProfileInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	AvatarURL   string `json:"avatar_url"`
}

// Dashboard summarises the blog for the admin landing page.
type Dashboard struct {
	Counts storage.StatusCounts
	Recent []storage.Post
}

// DashboardRecent is the number of recent posts on the dashboard.
const DashboardRecent = 5

// AdminService manages posts and the author profile.
type AdminService interface {
	Dashboard(ctx context.Context) (Dashboard, error)
	ListPosts(ctx context.Context, status storage.PostStatus) ([]storage.Post, error)
	GetPost(ctx context.Context, id string) (*storage.Post, error)
	CreatePost(ctx context.Context, in PostInput) (*storage.Post, error)
	UpdatePost(ctx context.Context, id string, in PostInput) (*storage.Post, error)
	DeletePost(ctx context.Context, id string) error
	SetStatus(ctx context.Context, id string, status storage.PostStatus) error
	Profile(ctx context.Context) (*storage.Profile, error)
	UpdateProfile(ctx context.Context, in ProfileInput) (*storage.Profile, error)
	// UploadImage stores an image and returns its public URL.
	UploadImage(ctx context.Context, filename string, data []byte) (string, error)
	// Preview renders markdown exactly as the post page would.
	Preview(ctx context.Context, source string) (markdown.Document, error)
}

type adminService struct {
	posts    storage.PostStore
	profiles storage.ProfileStore
	images   ImageStore
	engine   *markdown.Engine
	baseURL  string
}

// NewAdminService creates a new AdminService. Uploaded image URLs are
// rooted at baseURL.
func NewAdminService(posts storage.PostStore, profiles storage.ProfileStore, images ImageStore, engine *markdown.Engine, baseURL string) AdminService {
	return &adminService{
		posts:    posts,
		profiles: profiles,
		images:   images,
		engine:   engine,
		baseURL:  baseURL,
	}
}

func (s *adminService) Dashboard(ctx context.Context) (Dashboard, error) {
	counts, err := s.posts.CountByStatus(ctx)
	if err != nil {
		return Dashboard{}, WrapError(err, "failed to count posts")
	}
	recent, err := s.posts.List(ctx, storage.ListOptions{OrderBy: storage.OrderCreated, Limit: DashboardRecent})
	if err != nil {
		return Dashboard{}, WrapError(err, "failed to list recent posts")
	}
	return Dashboard{Counts: counts, Recent: recent}, nil
}

func (s *adminService) ListPosts(ctx context.Context, status storage.PostStatus) ([]storage.Post, error) {
	if status != "" && !status.Valid() {
		return nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	posts, err := s.posts.List(ctx, storage.ListOptions{Status: status, OrderBy: storage.OrderCreated})
	if err != nil {
		return nil, WrapError(err, "failed to list posts")
	}
	return posts, nil
}

func (s *adminService) GetPost(ctx context.Context, id string) (*storage.Post, error) {
	post, err := s.posts.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err, "failed to load post")
	}
	return post, nil
}

// normalize validates in and fills the derived fields.
func normalize(in PostInput) (PostInput, []string, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.Slug = strings.TrimSpace(in.Slug)
	if in.Title == "" {
		return in, nil, &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if in.Slug == "" {
		in.Slug = PostSlug(in.Title)
	}
	if in.Slug == "" {
		return in, nil, &ValidationError{Field: "slug", Message: "cannot be empty"}
	}
	if !ValidSlug(in.Slug) {
		return in, nil, &ValidationError{Field: "slug", Message: "may only contain lowercase letters, digits and single hyphens"}
	}
	if in.Status == "" {
		in.Status = storage.StatusDraft
	}
	if !in.Status.Valid() {
		return in, nil, &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", in.Status)}
	}
	return in, splitTags(in.Tags), nil
}

func (s *adminService) CreatePost(ctx context.Context, in PostInput) (*storage.Post, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in, tags, err := normalize(in)
	if err != nil {
		logger.WarnContext(ctx, "invalid post input", "error", err)
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, in.Slug, ""); err != nil {
		return nil, err
	}

	post := &storage.Post{
		Title:           in.Title,
		Slug:            in.Slug,
		Content:         in.Content,
		MetaDescription: in.MetaDescription,
		OGImageURL:      in.OGImageURL,
		Status:          in.Status,
		Tags:            tags,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		if errors.Is(err, storage.ErrSlugTaken) {
			return nil, fmt.Errorf("slug %q: %w", in.Slug, ErrConflict)
		}
		logger.ErrorContext(ctx, "failed to create post", "slug", in.Slug, "error", err)
		return nil, WrapError(err, "failed to create post")
	}

	logger.InfoContext(ctx, "post created", "id", post.ID, "slug", post.Slug, "status", post.Status)
	return post, nil
}

func (s *adminService) UpdatePost(ctx context.Context, id string, in PostInput) (*storage.Post, error) {
	logger := contextutil.LoggerFromContext(ctx)

	in, tags, err := normalize(in)
	if err != nil {
		logger.WarnContext(ctx, "invalid post input", "error", err)
		return nil, err
	}
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Slug != post.Slug {
		if err := s.ensureSlugFree(ctx, in.Slug, post.ID); err != nil {
			return nil, err
		}
	}

	post.Title = in.Title
	post.Slug = in.Slug
	post.Content = in.Content
	post.MetaDescription = in.MetaDescription
	post.OGImageURL = in.OGImageURL
	post.Status = in.Status
	post.Tags = tags
	if err := s.posts.Update(ctx, post); err != nil {
		switch {
		case errors.Is(err, storage.ErrSlugTaken):
			return nil, fmt.Errorf("slug %q: %w", in.Slug, ErrConflict)
		case errors.Is(err, storage.ErrNotFound):
			return nil, ErrNotFound
		}
		logger.ErrorContext(ctx, "failed to update post", "id", id, "error", err)
		return nil, WrapError(err, "failed to update post")
	}

	logger.InfoContext(ctx, "post updated", "id", post.ID, "slug", post.Slug)
	return post, nil
}

// ensureSlugFree fails with ErrConflict if another post than exceptID uses slug.
func (s *adminService) ensureSlugFree(ctx context.Context, slug, exceptID string) error {
	existing, err := s.posts.GetBySlug(ctx, slug)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return nil
	case err != nil:
		return WrapError(err, "failed to check slug")
	case existing.ID != exceptID:
		return fmt.Errorf("slug %q: %w", slug, ErrConflict)
	}
	return nil
}

func (s *adminService) DeletePost(ctx context.Context, id string) error {
	if err := s.posts.Delete(ctx, id); err != nil {
		return storeError(err, "failed to delete post")
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "post deleted", "id", id)
	return nil
}

func (s *adminService) SetStatus(ctx context.Context, id string, status storage.PostStatus) error {
	if !status.Valid() {
		return &ValidationError{Field: "status", Message: fmt.Sprintf("unknown status %q", status)}
	}
	return storeError(s.posts.SetStatus(ctx, id, status), "failed to change post status")
}

func (s *adminService) Profile(ctx context.Context) (*storage.Profile, error) {
	profile, err := s.profiles.Get(ctx)
	if err != nil {
		return nil, storeError(err, "failed to load profile")
	}
	return profile, nil
}

func (s *adminService) UpdateProfile(ctx context.Context, in ProfileInput) (*storage.Profile, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, &ValidationError{Field: "name", Message: "cannot be empty"}
	}
	profile := &storage.Profile{
		Name:        name,
		Description: strings.TrimSpace(in.Description),
		AvatarURL:   strings.TrimSpace(in.AvatarURL),
	}
	if err := s.profiles.Upsert(ctx, profile); err != nil {
		return nil, WrapError(err, "failed to update profile")
	}
	return profile, nil
}

func (s *adminService) UploadImage(ctx context.Context, filename string, data []byte) (string, error) {
	logger := contextutil.LoggerFromContext(ctx)

	if len(data) == 0 {
		return "", &ValidationError{Field: "file", Message: "cannot be empty"}
	}
	if len(data) > MaxImageSize {
		return "", &ValidationError{Field: "file", Message: fmt.Sprintf("exceeds %d bytes", MaxImageSize)}
	}
	if !imageExtensions[strings.ToLower(path.Ext(filename))] {
		return "", &ValidationError{Field: "file", Message: "unsupported image type"}
	}

	key := blob.ImageKey(filename)
	if err := s.images.Put(ctx, key, data); err != nil {
		logger.ErrorContext(ctx, "failed to store image", "key", key, "error", err)
		return "", WrapError(err, "failed to store image")
	}

	logger.InfoContext(ctx, "image uploaded", "key", key, "size", len(data))
	return blob.PublicURL(s.baseURL, key), nil
}

func (s *adminService) Preview(ctx context.Context, source string) (markdown.Document, error) {
	doc, err := s.engine.Document(source)
	if err != nil {
		return markdown.Document{}, WrapError(err, "failed to render preview")
	}
	return doc, nil
}
