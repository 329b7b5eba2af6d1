package handlers

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"

	"devfolio/internal/content"
	"devfolio/internal/contextutil"
	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/storage"
	"devfolio/internal/toc"
	"devfolio/internal/web"
)

// RecentPostsOnHome is the number of posts listed on the landing page.
const RecentPostsOnHome = 3

// pageError renders the not found page for ErrNotFound and a plain 500
// otherwise.
func pageError(w http.ResponseWriter, ctx context.Context, renderer PageRenderer, err error) {
	logger := contextutil.LoggerFromContext(ctx)
	if errors.Is(err, service.ErrNotFound) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusNotFound)
		data := notFoundPage{Meta: web.NewMeta("Not found", "")}
		if rerr := renderer.Render(w, web.PageNotFound, data); rerr != nil {
			logger.ErrorContext(ctx, "failed to render not found page", "error", rerr)
		}
		return
	}
	logger.ErrorContext(ctx, "failed to build page", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderPage writes a 200 HTML page.
func renderPage(w http.ResponseWriter, ctx context.Context, renderer PageRenderer, page string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderer.Render(w, page, data); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render page", "page", page, "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

type notFoundPage struct {
	Meta    web.Meta
	Message string
}

// HomeHandler serves the portfolio landing page.
type HomeHandler struct {
	portfolio *content.Portfolio
	blog      service.BlogService
	renderer  PageRenderer
}

// NewHomeHandler creates a new HomeHandler.
func NewHomeHandler(portfolio *content.Portfolio, blog service.BlogService, renderer PageRenderer) *HomeHandler {
	return &HomeHandler{portfolio: portfolio, blog: blog, renderer: renderer}
}

type homePage struct {
	Meta        web.Meta
	Portfolio   *content.Portfolio
	RecentPosts []storage.Post
}

// ServeHTTP renders the landing page. A blog failure only empties the
// recent posts list.
func (h *HomeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	posts, err := h.blog.ListPosts(ctx, service.AllTag)
	if err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "recent posts unavailable", "error", err)
		posts = nil
	}
	if len(posts) > RecentPostsOnHome {
		posts = posts[:RecentPostsOnHome]
	}

	data := homePage{
		Meta:        web.NewMeta(h.portfolio.Profile.Name, h.portfolio.Profile.Headline),
		Portfolio:   h.portfolio,
		RecentPosts: posts,
	}
	renderPage(w, ctx, h.renderer, web.PageHome, data)
}

// BlogHandler serves the post index with the tag bar and popular posts.
type BlogHandler struct {
	blog     service.BlogService
	renderer PageRenderer
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(blog service.BlogService, renderer PageRenderer) *BlogHandler {
	return &BlogHandler{blog: blog, renderer: renderer}
}

type blogPage struct {
	Meta      web.Meta
	Tags      []string
	ActiveTag string
	Posts     []storage.Post
	Popular   []storage.Post
}

// ServeHTTP renders /blog?tag=.
func (h *BlogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	tag := strings.TrimSpace(r.URL.Query().Get("tag"))
	if tag == "" {
		tag = service.AllTag
	}

	posts, err := h.blog.ListPosts(ctx, tag)
	if err != nil {
		pageError(w, ctx, h.renderer, err)
		return
	}
	tags, err := h.blog.Tags(ctx)
	if err != nil {
		logger.WarnContext(ctx, "tags unavailable", "error", err)
		tags = []string{service.AllTag}
	}
	popular, err := h.blog.PopularPosts(ctx, service.PopularLimit)
	if err != nil {
		logger.WarnContext(ctx, "popular posts unavailable", "error", err)
		popular = nil
	}

	title := "Blog"
	if tag != service.AllTag {
		title = "Posts tagged " + tag
	}
	data := blogPage{
		Meta:      web.NewMeta(title, "Notes on software development."),
		Tags:      tags,
		ActiveTag: tag,
		Posts:     posts,
		Popular:   popular,
	}
	renderPage(w, ctx, h.renderer, web.PageBlog, data)
}

// TagRedirectHandler redirects /blog/tags/{tag} to the filtered index.
type TagRedirectHandler struct{}

// ServeHTTP implements http.Handler.
func (TagRedirectHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")
	if decoded, err := url.PathUnescape(tag); err == nil {
		tag = decoded
	}
	target := "/blog"
	if tag != "" {
		target += "?tag=" + url.QueryEscape(tag)
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// PostHandler serves a rendered post with its outline.
type PostHandler struct {
	blog     service.BlogService
	renderer PageRenderer
	outline  toc.PageData
}

// NewPostHandler creates a new PostHandler. outline carries the tracker
// configuration; its headings are filled per post.
func NewPostHandler(blog service.BlogService, renderer PageRenderer, outline toc.PageData) *PostHandler {
	return &PostHandler{blog: blog, renderer: renderer, outline: outline}
}

type postPage struct {
	Meta       web.Meta
	Post       storage.Post
	Body       template.HTML
	DesktopTOC template.HTML
	MobileTOC  template.HTML
	Author     *storage.Profile
	Prev       *storage.Post
	Next       *storage.Post
	TOCData    toc.PageData
}

// ServeHTTP renders /blog/{slug}.
func (h *PostHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	slug := chi.URLParam(r, "slug")
	page, err := h.blog.PostPage(ctx, slug)
	if err != nil {
		pageError(w, ctx, h.renderer, err)
		return
	}

	headings := page.Document.Headings
	if headings == nil {
		headings = []markdown.Heading{}
	}
	activeID := ""
	if len(headings) > 0 {
		activeID = headings[0].ID
	}

	// The outline never takes the page down with it.
	desktop, err := toc.Outline(headings, toc.OutlineOptions{ActiveID: activeID})
	if err != nil {
		logger.WarnContext(ctx, "failed to render outline", "slug", slug, "error", err)
		desktop = ""
	}
	mobile, err := toc.Outline(headings, toc.OutlineOptions{Mobile: true, ActiveID: activeID})
	if err != nil {
		logger.WarnContext(ctx, "failed to render mobile outline", "slug", slug, "error", err)
		mobile = ""
	}

	outline := h.outline
	outline.Headings = headings

	meta := web.NewMeta(page.Post.Title, page.Post.MetaDescription)
	meta.OGImage = page.Post.OGImageURL
	meta.TOC = len(headings) > 0

	data := postPage{
		Meta:       meta,
		Post:       page.Post,
		Body:       template.HTML(page.Document.HTML),
		DesktopTOC: desktop,
		MobileTOC:  mobile,
		Author:     page.Author,
		Prev:       page.Prev,
		Next:       page.Next,
		TOCData:    outline,
	}
	renderPage(w, ctx, h.renderer, web.PagePost, data)
}

// NotFoundHandler renders the not found page.
type NotFoundHandler struct {
	renderer PageRenderer
}

// NewNotFoundHandler creates a new NotFoundHandler.
func NewNotFoundHandler(renderer PageRenderer) *NotFoundHandler {
	return &NotFoundHandler{renderer: renderer}
}

// ServeHTTP implements http.Handler.
func (h *NotFoundHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	pageError(w, r.Context(), h.renderer, service.ErrNotFound)
}
