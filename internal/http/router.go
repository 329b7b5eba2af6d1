package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"devfolio/internal/content"
	"devfolio/internal/handlers"
	"devfolio/internal/service"
	"devfolio/internal/toc"
	"devfolio/internal/web"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	Blog      service.BlogService
	Admin     service.AdminService
	Views     service.ViewUpdater
	Importer  handlers.Importer // nil when no content directory is configured
	Portfolio *content.Portfolio
	Renderer  handlers.PageRenderer
	Highlight handlers.CSSWriter
	Blobs     handlers.BlobReader
	DB        handlers.Pinger
	Outline   toc.PageData

	AdminToken string
	CronSecret string
	// StaticDir serves build artifacts such as the outline tracker bundle.
	StaticDir string
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) (http.Handler, error) {
	highlightCSS, err := handlers.NewHighlightCSSHandler(deps.Highlight)
	if err != nil {
		return nil, fmt.Errorf("failed to render highlight stylesheet: %w", err)
	}

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(CORS)

	r.NotFound(handlers.NewNotFoundHandler(deps.Renderer).ServeHTTP)

	// Pages
	r.Method(http.MethodGet, "/", handlers.NewHomeHandler(deps.Portfolio, deps.Blog, deps.Renderer))
	r.Route("/blog", func(r chi.Router) {
		r.Method(http.MethodGet, "/", handlers.NewBlogHandler(deps.Blog, deps.Renderer))
		r.Method(http.MethodGet, "/tags/{tag}", handlers.TagRedirectHandler{})
		r.Method(http.MethodGet, "/{slug}", handlers.NewPostHandler(deps.Blog, deps.Renderer, deps.Outline))
	})

	// Assets
	r.Method(http.MethodGet, "/static/highlight.css", highlightCSS)
	if deps.StaticDir != "" {
		r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.Dir(deps.StaticDir))))
	}
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServerFS(web.Assets())))
	r.Method(http.MethodGet, "/uploads/*", handlers.NewUploadsHandler(deps.Blobs))

	// API
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(healthChecks(deps)))
		r.Method(http.MethodGet, "/update-views", handlers.NewUpdateViewsHandler(deps.Views, deps.CronSecret))
		r.Method(http.MethodGet, "/posts/{slug}/headings", handlers.NewHeadingsHandler(deps.Blog))

		admin := handlers.NewAdminHandler(deps.Admin)
		r.Route("/admin", func(r chi.Router) {
			r.Use(RequireBearer(deps.AdminToken))
			r.Get("/dashboard", admin.Dashboard)
			r.Get("/posts", admin.ListPosts)
			r.Post("/posts", admin.CreatePost)
			r.Get("/posts/{id}", admin.GetPost)
			r.Put("/posts/{id}", admin.UpdatePost)
			r.Delete("/posts/{id}", admin.DeletePost)
			r.Put("/posts/{id}/status", admin.SetStatus)
			r.Get("/profile", admin.Profile)
			r.Put("/profile", admin.UpdateProfile)
			r.Post("/uploads", admin.UploadImage)
			r.Post("/preview", admin.Preview)
			r.Method(http.MethodPost, "/import", handlers.NewImportHandler(deps.Importer))
		})
	})

	return r, nil
}

// healthChecks names the stores probed by /api/health. The blob store is
// included when it can be pinged.
func healthChecks(deps *Deps) map[string]handlers.Pinger {
	checks := map[string]handlers.Pinger{"database": deps.DB}
	if p, ok := deps.Blobs.(handlers.Pinger); ok {
		checks["blobs"] = p
	}
	return checks
}
