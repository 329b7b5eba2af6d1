package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"devfolio/internal/toc"
)

var envVars = []string{
	"API_PORT", "BASE_URL", "DB_PATH", "BLOB_PATH", "CONTENT_DIR", "STATIC_DIR", "PORTFOLIO_PATH",
	"LOG_LEVEL", "LOG_FORMAT", "ADMIN_TOKEN", "CRON_SECRET",
	"GA_PROPERTY_ID", "GA_ACCESS_TOKEN", "GA_START_DATE", "GA_ENDPOINT",
	"VIEW_UPDATE_CONCURRENCY", "HIGHLIGHT_STYLE",
	"TOC_POLICY", "TOC_HEADER_OFFSET", "TOC_TOP_MARGIN", "TOC_BOTTOM_MARGIN",
}

// clearEnv unsets every config variable for the duration of the test and
// points the data paths at a temporary directory.
func clearEnv(t *testing.T) string {
	t.Helper()
	for _, key := range envVars {
		t.Setenv(key, "")
		_ = os.Unsetenv(key)
	}
	dir := t.TempDir()
	t.Setenv("DB_PATH", filepath.Join(dir, "db", "devfolio.db"))
	t.Setenv("BLOB_PATH", filepath.Join(dir, "blobs"))
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.APIPort != "9000" {
		t.Errorf("APIPort = %q, want 9000", cfg.APIPort)
	}
	if cfg.BaseURL != "http://localhost:9000" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "text" {
		t.Errorf("logging = %v/%q, want info/text", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.ViewUpdateConcurrency != 4 {
		t.Errorf("ViewUpdateConcurrency = %d, want 4", cfg.ViewUpdateConcurrency)
	}
	if cfg.GAStartDate != "2025-03-01" {
		t.Errorf("GAStartDate = %q", cfg.GAStartDate)
	}
	if cfg.HighlightStyle != "github" {
		t.Errorf("HighlightStyle = %q", cfg.HighlightStyle)
	}
	if cfg.TOCPolicy != toc.PolicyReferenceLine || cfg.TOCHeaderOffset != 96 {
		t.Errorf("toc = %q/%v", cfg.TOCPolicy, cfg.TOCHeaderOffset)
	}
	if data := cfg.TOCPageData(); data.Policy != cfg.TOCPolicy || data.HeaderOffset != 96 || data.Headings != nil {
		t.Errorf("TOCPageData() = %+v", data)
	}
	if cfg.AdminToken != "" || cfg.CronSecret != "" || cfg.ContentDir != "" {
		t.Error("secrets and content dir should default to empty")
	}

	for _, sub := range []string{"db", "blobs"} {
		if info, err := os.Stat(filepath.Join(dir, sub)); err != nil || !info.IsDir() {
			t.Errorf("data directory %s was not created", sub)
		}
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		wantErr     bool
		checkConfig func(*Config) bool
	}{
		{
			name: "overrides",
			env: map[string]string{
				"API_PORT":                "8080",
				"BASE_URL":                "https://blog.example.com/",
				"LOG_LEVEL":               "debug",
				"LOG_FORMAT":              "JSON",
				"VIEW_UPDATE_CONCURRENCY": "8",
				"TOC_POLICY":              "intersection-band",
				"TOC_TOP_MARGIN":          "0.2",
				"TOC_BOTTOM_MARGIN":       "0.5",
			},
			checkConfig: func(cfg *Config) bool {
				p, err := cfg.TOCPolicyValue()
				return cfg.APIPort == "8080" &&
					cfg.BaseURL == "https://blog.example.com" &&
					cfg.LogLevel == slog.LevelDebug &&
					cfg.LogFormat == "json" &&
					cfg.ViewUpdateConcurrency == 8 &&
					err == nil && p == toc.IntersectionBand{TopMargin: 0.2, BottomMargin: 0.5}
			},
		},
		{name: "bad log level", env: map[string]string{"LOG_LEVEL": "loud"}, wantErr: true},
		{name: "bad log format", env: map[string]string{"LOG_FORMAT": "xml"}, wantErr: true},
		{name: "non-numeric concurrency", env: map[string]string{"VIEW_UPDATE_CONCURRENCY": "many"}, wantErr: true},
		{name: "zero concurrency", env: map[string]string{"VIEW_UPDATE_CONCURRENCY": "0"}, wantErr: true},
		{name: "bad header offset", env: map[string]string{"TOC_HEADER_OFFSET": "tall"}, wantErr: true},
		{name: "unknown policy", env: map[string]string{"TOC_POLICY": "magic"}, wantErr: true},
		{
			name:    "band without room",
			env:     map[string]string{"TOC_POLICY": "intersection-band", "TOC_TOP_MARGIN": "0.5", "TOC_BOTTOM_MARGIN": "0.5"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()

			if tt.wantErr {
				if err == nil {
					t.Error("Load() expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() unexpected error: %v", err)
			}
			if tt.checkConfig != nil && !tt.checkConfig(cfg) {
				t.Errorf("Load() config validation failed: %+v", cfg)
			}
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("DEVFOLIO_TEST_KEY", "value")

	if got := getEnv("DEVFOLIO_TEST_KEY", "default"); got != "value" {
		t.Errorf("getEnv() = %q, want value", got)
	}
	if got := getEnv("DEVFOLIO_TEST_MISSING", "default"); got != "default" {
		t.Errorf("getEnv() = %q, want default", got)
	}
}
