package main

import (
	"context"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"

	"devfolio/internal/analytics"
	"devfolio/internal/blob"
	"devfolio/internal/config"
	"devfolio/internal/content"
	"devfolio/internal/http"
	"devfolio/internal/importer"
	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/storage"
	"devfolio/internal/web"
)

// Outline tracker bundle served from STATIC_DIR (default ./web/static).
//go:generate sh -c "mkdir -p ../../web/static && GOOS=js GOARCH=wasm go build -o ../../web/static/toc.wasm ../tocwasm && cp \"$(go env GOROOT)/lib/wasm/wasm_exec.js\" ../../web/static/"

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	postRepo := storage.NewPostRepo(db)
	profileRepo := storage.NewProfileRepo(db)

	blobs, err := blob.Open(cfg.BlobPath, logger)
	if err != nil {
		log.Fatalf("Failed to open blob store: %v", err)
	}
	defer func() {
		_ = blobs.Close()
	}()
	slog.Info("Blob store initialized", "path", cfg.BlobPath)

	if _, err := cfg.TOCPolicyValue(); err != nil {
		log.Fatalf("Invalid outline configuration: %v", err)
	}

	engine := markdown.New(
		markdown.WithHighlightStyle(cfg.HighlightStyle),
		markdown.WithLogger(logger),
	)

	portfolio, err := content.Load(cfg.PortfolioPath)
	if err != nil {
		log.Fatalf("Failed to load portfolio: %v", err)
	}

	renderer, err := web.NewRenderer()
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}

	ga := analytics.NewGAClient(cfg.GAEndpoint, cfg.GAPropertyID, cfg.GAAccessToken, cfg.GAStartDate)
	if cfg.GAPropertyID == "" {
		slog.Warn("GA_PROPERTY_ID not set, view updates will fail")
	}

	deps := &http.Deps{
		Blog:       service.NewBlogService(postRepo, profileRepo, engine),
		Admin:      service.NewAdminService(postRepo, profileRepo, blobs, engine, cfg.BaseURL),
		Views:      service.NewViewUpdater(ga, postRepo, cfg.ViewUpdateConcurrency),
		Portfolio:  portfolio,
		Renderer:   renderer,
		Highlight:  engine,
		Blobs:      blobs,
		DB:         db,
		Outline:    cfg.TOCPageData(),
		AdminToken: cfg.AdminToken,
		CronSecret: cfg.CronSecret,
		StaticDir:  cfg.StaticDir,
	}
	if cfg.AdminToken == "" {
		slog.Warn("ADMIN_TOKEN not set, admin API is disabled")
	}

	var pipeline *importer.Pipeline
	if cfg.ContentDir != "" {
		pipeline = importer.NewPipeline(importer.NewScanner(cfg.ContentDir), postRepo)
		deps.Importer = pipeline
	}

	router, err := http.NewRouter(deps)
	if err != nil {
		log.Fatalf("Failed to create router: %v", err)
	}

	// Import content in background after router is ready
	if pipeline != nil {
		go func() {
			slog.Info("Starting background import", "dir", cfg.ContentDir)
			stats, err := pipeline.ImportAll(context.Background())
			if err != nil {
				slog.Error("Import completed with errors", "stats", stats.String(), "error", err)
			} else {
				slog.Info("Import completed successfully", "stats", stats.String())
			}
		}()
	}

	addr := ":" + cfg.APIPort
	slog.Info("Starting API server", "addr", addr, "base_url", cfg.BaseURL)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("API server failed to start: %v", err)
	}
}
