package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_blog_service.go -package=mocks devfolio/internal/service BlogService

import (
	"context"
	"errors"

	"devfolio/internal/contextutil"
	"devfolio/internal/markdown"
	"devfolio/internal/storage"
)

// AllTag selects every published post in ListPosts and leads the tag bar.
const AllTag = "all"

// PopularLimit is the number of posts in the popular posts box.
const PopularLimit = 5

// PostPage is everything the post page needs.
type PostPage struct {
	Post     storage.Post
	Document markdown.Document
	Prev     *storage.Post // older neighbour, may be nil
	Next     *storage.Post // newer neighbour, may be nil
	Author   *storage.Profile
}

// BlogService serves the public blog.
type BlogService interface {
	// ListPosts returns published posts, newest first, optionally filtered
	// by tag. An empty tag or AllTag means no filter.
	ListPosts(ctx context.Context, tag string) ([]storage.Post, error)
	// Tags returns AllTag followed by every tag of a published post.
	Tags(ctx context.Context) ([]string, error)
	// PopularPosts returns the most viewed published posts.
	PopularPosts(ctx context.Context, limit int) ([]storage.Post, error)
	// PostPage renders the published post with the given slug.
	PostPage(ctx context.Context, slug string) (*PostPage, error)
	// Headings returns the outline of the published post with the given slug.
	Headings(ctx context.Context, slug string) ([]markdown.Heading, error)
}

type blogService struct {
	posts    storage.PostStore
	profiles storage.ProfileStore
	engine   *markdown.Engine
}

// NewBlogService creates a new BlogService.
func NewBlogService(posts storage.PostStore, profiles storage.ProfileStore, engine *markdown.Engine) BlogService {
	return &blogService{
		posts:    posts,
		profiles: profiles,
		engine:   engine,
	}
}

func (s *blogService) ListPosts(ctx context.Context, tag string) ([]storage.Post, error) {
	opts := storage.ListOptions{Status: storage.StatusPublished, OrderBy: storage.OrderPublished}
	if tag != AllTag {
		opts.Tag = tag
	}
	posts, err := s.posts.List(ctx, opts)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list posts", "tag", tag, "error", err)
		return nil, WrapError(err, "failed to list posts")
	}
	return posts, nil
}

func (s *blogService) Tags(ctx context.Context) ([]string, error) {
	tags, err := s.posts.Tags(ctx)
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list tags", "error", err)
		return nil, WrapError(err, "failed to list tags")
	}
	return append([]string{AllTag}, tags...), nil
}

func (s *blogService) PopularPosts(ctx context.Context, limit int) ([]storage.Post, error) {
	if limit <= 0 {
		limit = PopularLimit
	}
	posts, err := s.posts.List(ctx, storage.ListOptions{
		Status:  storage.StatusPublished,
		OrderBy: storage.OrderViews,
		Limit:   limit,
	})
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to list popular posts", "error", err)
		return nil, WrapError(err, "failed to list popular posts")
	}
	return posts, nil
}

func (s *blogService) PostPage(ctx context.Context, slug string) (*PostPage, error) {
	logger := contextutil.LoggerFromContext(ctx)

	post, err := s.publishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}

	doc, err := s.engine.Document(post.Content)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render post", "slug", slug, "error", err)
		return nil, WrapError(err, "failed to render post")
	}

	page := &PostPage{Post: *post, Document: doc}

	// Navigation and author box are optional; the post still renders without them.
	if post.PublishedAt != nil {
		page.Prev, page.Next, err = s.posts.Adjacent(ctx, post.Slug, *post.PublishedAt)
		if err != nil {
			logger.WarnContext(ctx, "failed to load adjacent posts", "slug", slug, "error", err)
			page.Prev, page.Next = nil, nil
		}
	}
	author, err := s.profiles.Get(ctx)
	switch {
	case err == nil:
		page.Author = author
	case !errors.Is(err, storage.ErrNotFound):
		logger.WarnContext(ctx, "failed to load author profile", "error", err)
	}

	return page, nil
}

func (s *blogService) Headings(ctx context.Context, slug string) ([]markdown.Heading, error) {
	post, err := s.publishedPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.engine.Headings(post.Content), nil
}

// publishedPost loads a post by slug, hiding drafts and archived posts.
func (s *blogService) publishedPost(ctx context.Context, slug string) (*storage.Post, error) {
	post, err := s.posts.GetBySlug(ctx, slug)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to load post", "slug", slug, "error", err)
		return nil, WrapError(err, "failed to load post")
	}
	if post.Status != storage.StatusPublished {
		return nil, ErrNotFound
	}
	return post, nil
}
