package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"devfolio/internal/analytics"
	"devfolio/internal/markdown"
	"devfolio/internal/service"
	"devfolio/internal/toc"
)

// Config holds all configuration for the application.
type Config struct {
	APIPort       string
	BaseURL       string
	DBPath        string
	BlobPath      string
	ContentDir    string
	StaticDir     string
	PortfolioPath string

	LogLevel  slog.Level
	LogFormat string

	AdminToken string
	CronSecret string

	GAPropertyID  string
	GAAccessToken string
	GAStartDate   string
	GAEndpoint    string

	ViewUpdateConcurrency int
	HighlightStyle        string

	TOCPolicy       string
	TOCHeaderOffset float64
	TOCTopMargin    float64
	TOCBottomMargin float64
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent, it will be loaded automatically.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	loadDotEnv()

	cfg := &Config{
		APIPort:        getEnv("API_PORT", "9000"),
		BaseURL:        strings.TrimRight(getEnv("BASE_URL", "http://localhost:9000"), "/"),
		DBPath:         getEnv("DB_PATH", "./data/devfolio.db"),
		BlobPath:       getEnv("BLOB_PATH", "./data/blobs"),
		ContentDir:     getEnv("CONTENT_DIR", ""),
		StaticDir:      getEnv("STATIC_DIR", "./web/static"),
		PortfolioPath:  getEnv("PORTFOLIO_PATH", ""),
		LogFormat:      strings.ToLower(getEnv("LOG_FORMAT", "text")),
		AdminToken:     getEnv("ADMIN_TOKEN", ""),
		CronSecret:     getEnv("CRON_SECRET", ""),
		GAPropertyID:   getEnv("GA_PROPERTY_ID", ""),
		GAAccessToken:  getEnv("GA_ACCESS_TOKEN", ""),
		GAStartDate:    getEnv("GA_START_DATE", analytics.DefaultStartDate),
		GAEndpoint:     getEnv("GA_ENDPOINT", analytics.DefaultEndpoint),
		HighlightStyle: getEnv("HIGHLIGHT_STYLE", markdown.DefaultHighlightStyle),
		TOCPolicy:      getEnv("TOC_POLICY", toc.PolicyReferenceLine),
	}

	if err := cfg.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	concurrency, err := strconv.Atoi(getEnv("VIEW_UPDATE_CONCURRENCY", strconv.Itoa(service.DefaultViewConcurrency)))
	if err != nil {
		return nil, fmt.Errorf("VIEW_UPDATE_CONCURRENCY must be a valid integer: %w", err)
	}
	if concurrency <= 0 {
		return nil, fmt.Errorf("VIEW_UPDATE_CONCURRENCY must be greater than 0")
	}
	cfg.ViewUpdateConcurrency = concurrency

	if cfg.TOCHeaderOffset, err = getFloat("TOC_HEADER_OFFSET", toc.DefaultHeaderOffset); err != nil {
		return nil, err
	}
	if cfg.TOCTopMargin, err = getFloat("TOC_TOP_MARGIN", 0.1); err != nil {
		return nil, err
	}
	if cfg.TOCBottomMargin, err = getFloat("TOC_BOTTOM_MARGIN", 0.8); err != nil {
		return nil, err
	}
	if _, err := cfg.TOCPolicyValue(); err != nil {
		return nil, fmt.Errorf("TOC_POLICY: %w", err)
	}

	// Create data directories for the database and blob store
	for _, dir := range []string{filepath.Dir(cfg.DBPath), cfg.BlobPath} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// TOCPolicyValue builds the outline highlight policy.
func (c *Config) TOCPolicyValue() (toc.Policy, error) {
	return toc.ParsePolicy(c.TOCPolicy, c.TOCHeaderOffset, c.TOCTopMargin, c.TOCBottomMargin)
}

// TOCPageData returns the tracker settings post pages hand to the browser.
// Headings are filled in per page.
func (c *Config) TOCPageData() toc.PageData {
	return toc.PageData{
		Policy:       c.TOCPolicy,
		HeaderOffset: c.TOCHeaderOffset,
		TopMargin:    c.TOCTopMargin,
		BottomMargin: c.TOCBottomMargin,
	}
}

// loadDotEnv loads .env from the working directory, then the nearest parent
// that has one. Errors are ignored; the file is optional.
func loadDotEnv() {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err != nil {
		return
	}
	dir := wd
	for i := 0; i < 5; i++ { // Limit search depth
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getFloat(key string, defaultValue float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}
