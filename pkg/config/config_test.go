package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/matzehuels/minicase/pkg/cache"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/pipeline"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default() invalid: %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, `
[render]
page = "a4"
margin_mm = 8
dpi = 150
max_copies_per_page = 2

[fetch]
timeout = "20s"
attempts = 5
cache = "none"
cache_ttl = "72h"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Page != "a4" || cfg.Render.DPI != 150 || cfg.Render.MaxCopiesPerPage != 2 {
		t.Errorf("render = %+v", cfg.Render)
	}
	if cfg.Fetch.Timeout != 20*time.Second || cfg.Fetch.CacheTTL != 72*time.Hour || cfg.Fetch.Attempts != 5 {
		t.Errorf("fetch = %+v", cfg.Fetch)
	}
	// Unset keys keep their defaults.
	if cfg.Render.Workers != pipeline.DefaultWorkers {
		t.Errorf("workers = %d, want default", cfg.Render.Workers)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    errors.Code
	}{
		{"syntax", "[render\n", errors.ErrCodeInvalidConfig},
		{"unknown key", "[render]\ncolour = 1\n", errors.ErrCodeInvalidConfig},
		{"bad page", "[render]\npage = \"tabloid\"\n", errors.ErrCodeInvalidGeometry},
		{"bad cache", "[fetch]\ncache = \"memcached\"\n", errors.ErrCodeInvalidConfig},
		{"bad attempts", "[fetch]\nattempts = 0\n", errors.ErrCodeInvalidConfig},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file error = %v, want NOT_FOUND", err)
	}
}

func TestLoadDefaultWithoutFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := LoadDefault()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Render.Page != Default().Render.Page {
		t.Errorf("page = %q", cfg.Render.Page)
	}
}

func TestApply(t *testing.T) {
	cfg := Default()
	cfg.Render.Page = "a4"
	cfg.Render.MarginMM = 7
	cfg.Render.DPI = 200
	cfg.Render.JPEGQuality = 0

	opts := pipeline.Options{JPEGQuality: 50}
	if err := cfg.Apply(&opts); err != nil {
		t.Fatal(err)
	}
	if opts.Page.Name != layout.A4.Name || opts.Page.MarginMM != 7 {
		t.Errorf("page = %+v", opts.Page)
	}
	if opts.DPI != 200 {
		t.Errorf("dpi = %v", opts.DPI)
	}
	if opts.JPEGQuality != 50 {
		t.Errorf("zero config value overwrote option: %d", opts.JPEGQuality)
	}
	if err := opts.ValidateForRender(); err != nil {
		t.Errorf("applied options invalid: %v", err)
	}
}

func TestOpenCache(t *testing.T) {
	ctx := context.Background()

	cfg := Default()
	cfg.Fetch.Cache = CacheNone
	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(cache.NullCache); !ok {
		t.Errorf("none backend = %T", c)
	}

	cfg.Fetch.Cache = CacheFile
	cfg.Fetch.CacheDir = t.TempDir()
	c, err = cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fc, ok := c.(*cache.FileCache); !ok || fc.Dir() != cfg.Fetch.CacheDir {
		t.Errorf("file backend = %T", c)
	}

	mr := miniredis.RunT(t)
	cfg.Fetch.Cache = CacheRedis
	cfg.Fetch.RedisAddr = mr.Addr()
	c, err = cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists("minicase:k") {
		t.Error("redis key not prefixed")
	}

	mr.Close()
	cfg.Fetch.RedisAddr = "127.0.0.1:1"
	if _, err := cfg.OpenCache(ctx); !errors.Is(err, errors.ErrCodeNetwork) {
		t.Errorf("unreachable redis error = %v", err)
	}
}

func TestFetcherOptions(t *testing.T) {
	cfg := Default()
	if got := len(cfg.FetcherOptions(nil)); got != 3 {
		t.Errorf("options without cache = %d, want 3", got)
	}
	if got := len(cfg.FetcherOptions(cache.NewNullCache())); got != 4 {
		t.Errorf("options with cache = %d, want 4", got)
	}
}

func TestLoadExample(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "examples", "config.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Fetch.CacheTTL != 168*time.Hour {
		t.Errorf("cache_ttl = %v", cfg.Fetch.CacheTTL)
	}
}
