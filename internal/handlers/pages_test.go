package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"devfolio/internal/content"
	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/service/mocks"
	"devfolio/internal/storage"
	"devfolio/internal/toc"
)

func publishedPost(slug, title string) storage.Post {
	at := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	return storage.Post{ID: slug, Slug: slug, Title: title, Status: storage.StatusPublished, PublishedAt: &at}
}

func TestHomeHandler(t *testing.T) {
	ctrl := gomock.NewController(t)
	blog := mocks.NewMockBlogService(ctrl)
	blog.EXPECT().ListPosts(gomock.Any(), service.AllTag).Return([]storage.Post{
		publishedPost("d", "Four"), publishedPost("c", "Three"), publishedPost("b", "Two"), publishedPost("a", "One"),
	}, nil)

	portfolio, err := content.Load("")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHomeHandler(portfolio, blog, newRenderer(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, portfolio.Profile.Name, doc.Find(".hero h1").Text())
	assert.Equal(t, RecentPostsOnHome, doc.Find("#recent-posts li").Length())
	assert.Equal(t, len(portfolio.Projects), doc.Find("article.project").Length())
}

func TestHomeHandler_BlogDown(t *testing.T) {
	ctrl := gomock.NewController(t)
	blog := mocks.NewMockBlogService(ctrl)
	blog.EXPECT().ListPosts(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	portfolio, err := content.Load("")
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	NewHomeHandler(portfolio, blog, newRenderer(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "No posts yet.")
}

func TestBlogHandler(t *testing.T) {
	tests := []struct {
		name      string
		query     string
		wantTag   string
		wantTitle string
	}{
		{name: "all posts", query: "", wantTag: service.AllTag, wantTitle: "Blog"},
		{name: "tag filter", query: "?tag=go", wantTag: "go", wantTitle: "Posts tagged go"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			blog := mocks.NewMockBlogService(ctrl)
			blog.EXPECT().ListPosts(gomock.Any(), tt.wantTag).Return([]storage.Post{publishedPost("hello", "Hello")}, nil)
			blog.EXPECT().Tags(gomock.Any()).Return([]string{service.AllTag, "go", "web"}, nil)
			blog.EXPECT().PopularPosts(gomock.Any(), service.PopularLimit).Return(nil, errors.New("ignored"))

			rec := httptest.NewRecorder()
			NewBlogHandler(blog, newRenderer(t)).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blog"+tt.query, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			doc, err := goquery.NewDocumentFromReader(rec.Body)
			require.NoError(t, err)
			assert.Equal(t, tt.wantTitle, doc.Find("title").Text())
			assert.Equal(t, tt.wantTag, doc.Find(".tag-bar a.active").Text())
			assert.Equal(t, 3, doc.Find(".tag-bar a").Length())
			assert.Equal(t, 1, doc.Find(".post-card").Length())
			assert.Zero(t, doc.Find(".popular").Length())
		})
	}
}

func TestTagRedirectHandler(t *testing.T) {
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/blog/tags/c%2B%2B", nil), map[string]string{"tag": "c%2B%2B"})
	rec := httptest.NewRecorder()

	TagRedirectHandler{}.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/blog?tag=c%2B%2B", rec.Header().Get("Location"))
}

func TestPostHandler(t *testing.T) {
	engine := markdown.New()
	doc, err := engine.Document("## Intro\n\nHello\n\n### Intro\n\n## Setup\n")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	blog := mocks.NewMockBlogService(ctrl)
	prev := publishedPost("older", "Older")
	blog.EXPECT().PostPage(gomock.Any(), "hello").Return(&service.PostPage{
		Post:     publishedPost("hello", "Hello"),
		Document: doc,
		Prev:     &prev,
	}, nil)

	outline := toc.PageData{Policy: toc.PolicyReferenceLine, HeaderOffset: 80}
	req := withURLParams(httptest.NewRequest(http.MethodGet, "/blog/hello", nil), map[string]string{"slug": "hello"})
	rec := httptest.NewRecorder()

	NewPostHandler(blog, newRenderer(t), outline).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	page, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	var bodyIDs []string
	page.Find(".post-body h2, .post-body h3").Each(func(_ int, s *goquery.Selection) {
		bodyIDs = append(bodyIDs, s.AttrOr("id", ""))
	})
	var outlineIDs []string
	page.Find(".post-toc [data-toc-id]").Each(func(_ int, s *goquery.Selection) {
		outlineIDs = append(outlineIDs, s.AttrOr("data-toc-id", ""))
	})
	assert.Equal(t, []string{"intro", "intro-2", "setup"}, bodyIDs)
	assert.Equal(t, bodyIDs, outlineIDs)
	assert.Equal(t, "intro", page.Find(".post-toc a.active").AttrOr("data-toc-id", ""))
	assert.Equal(t, 3, page.Find(".toc-mobile [data-toc-id]").Length())
	assert.Equal(t, 1, page.Find(".post-nav a.prev").Length())
	assert.Zero(t, page.Find(".post-nav a.next").Length())

	var data toc.PageData
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(page.Find(`script[id="`+toc.DataElementID+`"]`).Text())), &data))
	assert.Equal(t, float64(80), data.HeaderOffset)
	assert.Equal(t, doc.Headings, data.Headings)
}

func TestPostHandler_HeadingCannotShadowOutlineData(t *testing.T) {
	doc, err := markdown.New().Document("## TOC data\n\n## Toc Data\n")
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	blog := mocks.NewMockBlogService(ctrl)
	blog.EXPECT().PostPage(gomock.Any(), "meta").Return(&service.PostPage{
		Post:     publishedPost("meta", "Meta"),
		Document: doc,
	}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/blog/meta", nil), map[string]string{"slug": "meta"})
	rec := httptest.NewRecorder()
	NewPostHandler(blog, newRenderer(t), toc.PageData{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	page, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)

	owners := page.Find(`[id="` + toc.DataElementID + `"]`)
	require.Equal(t, 1, owners.Length())
	assert.Equal(t, "script", goquery.NodeName(owners))

	var data toc.PageData
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(owners.Text())), &data))
	assert.Equal(t, []string{"toc-data", "toc-data-2"}, []string{data.Headings[0].ID, data.Headings[1].ID})
}

func TestPostHandler_NoHeadings(t *testing.T) {
	ctrl := gomock.NewController(t)
	blog := mocks.NewMockBlogService(ctrl)
	blog.EXPECT().PostPage(gomock.Any(), "plain").Return(&service.PostPage{
		Post:     publishedPost("plain", "Plain"),
		Document: markdown.Document{HTML: "<p>just text</p>"},
	}, nil)

	req := withURLParams(httptest.NewRequest(http.MethodGet, "/blog/plain", nil), map[string]string{"slug": "plain"})
	rec := httptest.NewRecorder()
	NewPostHandler(blog, newRenderer(t), toc.PageData{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	page, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	assert.Equal(t, toc.DefaultEmptyText, page.Find(".toc-empty").Text())
	assert.Zero(t, page.Find(".toc-mobile").Length())
	assert.Zero(t, page.Find(`script[src="/static/wasm_exec.js"]`).Length())
}

func TestPostHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown slug", service.ErrNotFound, http.StatusNotFound},
		{"storage failure", errors.New("disk"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			blog := mocks.NewMockBlogService(ctrl)
			blog.EXPECT().PostPage(gomock.Any(), "x").Return(nil, tt.err)

			req := withURLParams(httptest.NewRequest(http.MethodGet, "/blog/x", nil), map[string]string{"slug": "x"})
			rec := httptest.NewRecorder()
			NewPostHandler(blog, newRenderer(t), toc.PageData{}).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusNotFound {
				assert.Contains(t, rec.Body.String(), "Page not found")
			}
		})
	}
}
