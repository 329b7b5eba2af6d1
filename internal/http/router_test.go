package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/mock/gomock"

	"devfolio/internal/blob"
	"devfolio/internal/content"
	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/service/mocks"
	"devfolio/internal/storage"
	"devfolio/internal/web"
)

type okPinger struct{}

func (okPinger) PingContext(context.Context) error { return nil }

type noBlobs struct{}

func (noBlobs) Get(context.Context, string) ([]byte, error) { return nil, blob.ErrNotFound }

type routerMocks struct {
	blog  *mocks.MockBlogService
	admin *mocks.MockAdminService
	views *mocks.MockViewUpdater
}

func newTestRouter(t *testing.T) (http.Handler, routerMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := routerMocks{
		blog:  mocks.NewMockBlogService(ctrl),
		admin: mocks.NewMockAdminService(ctrl),
		views: mocks.NewMockViewUpdater(ctrl),
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("web.NewRenderer() error = %v", err)
	}
	portfolio, err := content.Load("")
	if err != nil {
		t.Fatalf("content.Load() error = %v", err)
	}

	staticDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(staticDir, "toc.wasm"), []byte("\x00asm"), 0644); err != nil {
		t.Fatalf("Failed to create file: %v", err)
	}

	router, err := NewRouter(&Deps{
		Blog:       m.blog,
		Admin:      m.admin,
		Views:      m.views,
		Portfolio:  portfolio,
		Renderer:   renderer,
		Highlight:  markdown.New(),
		Blobs:      noBlobs{},
		DB:         okPinger{},
		AdminToken: "admin-token",
		CronSecret: "cron-secret",
		StaticDir:  staticDir,
	})
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	return router, m
}

func TestNewRouter(t *testing.T) {
	router, _ := newTestRouter(t)
	if router == nil {
		t.Fatal("NewRouter() returned nil")
	}
}

func TestRouter_Routes(t *testing.T) {
	router, m := newTestRouter(t)
	m.blog.EXPECT().ListPosts(gomock.Any(), service.AllTag).Return([]storage.Post{}, nil).AnyTimes()
	m.blog.EXPECT().Tags(gomock.Any()).Return([]string{service.AllTag}, nil).AnyTimes()
	m.blog.EXPECT().PopularPosts(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
	m.blog.EXPECT().PostPage(gomock.Any(), "missing").Return(nil, service.ErrNotFound)
	m.blog.EXPECT().Headings(gomock.Any(), "hello").Return(nil, nil)
	m.admin.EXPECT().Dashboard(gomock.Any()).Return(service.Dashboard{}, nil)
	m.views.EXPECT().UpdateAll(gomock.Any()).Return(service.ViewUpdateResult{}, nil)

	tests := []struct {
		name       string
		method     string
		path       string
		header     map[string]string
		wantStatus int
	}{
		{name: "GET root serves HTML", method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{name: "blog index", method: http.MethodGet, path: "/blog", wantStatus: http.StatusOK},
		{name: "tag redirect", method: http.MethodGet, path: "/blog/tags/go", wantStatus: http.StatusFound},
		{name: "unknown post", method: http.MethodGet, path: "/blog/missing", wantStatus: http.StatusNotFound},
		{name: "unknown route", method: http.MethodGet, path: "/nowhere", wantStatus: http.StatusNotFound},
		{name: "headings api", method: http.MethodGet, path: "/api/posts/hello/headings", wantStatus: http.StatusOK},
		{name: "health", method: http.MethodGet, path: "/api/health", wantStatus: http.StatusOK},
		{name: "highlight stylesheet", method: http.MethodGet, path: "/static/highlight.css", wantStatus: http.StatusOK},
		{name: "static bundle", method: http.MethodGet, path: "/static/toc.wasm", wantStatus: http.StatusOK},
		{name: "embedded assets", method: http.MethodGet, path: "/assets/site.css", wantStatus: http.StatusOK},
		{name: "missing upload", method: http.MethodGet, path: "/uploads/blog-images/x.png", wantStatus: http.StatusNotFound},
		{name: "cron without secret", method: http.MethodGet, path: "/api/update-views", wantStatus: http.StatusUnauthorized},
		{
			name:       "cron with secret",
			method:     http.MethodGet,
			path:       "/api/update-views",
			header:     map[string]string{"Authorization": "Bearer cron-secret"},
			wantStatus: http.StatusOK,
		},
		{name: "admin without token", method: http.MethodGet, path: "/api/admin/dashboard", wantStatus: http.StatusUnauthorized},
		{
			name:       "admin with token",
			method:     http.MethodGet,
			path:       "/api/admin/dashboard",
			header:     map[string]string{"Authorization": "Bearer admin-token"},
			wantStatus: http.StatusOK,
		},
		{
			name:       "import without content dir",
			method:     http.MethodPost,
			path:       "/api/admin/import",
			header:     map[string]string{"Authorization": "Bearer admin-token"},
			wantStatus: http.StatusConflict,
		},
		{name: "method not allowed", method: http.MethodDelete, path: "/api/health", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("Router %s %s status = %v, want %v", tt.method, tt.path, w.Code, tt.wantStatus)
			}
		})
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	router, _ := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("Router should apply CORS middleware")
	}
}
