// Package config loads engine settings from a TOML file.
//
// The file lives at $XDG_CONFIG_HOME/minicase/config.toml by default:
//
//	[render]
//	page = "a4"
//	margin_mm = 8
//	dpi = 300
//	workers = 4
//	max_copies_per_page = 2
//
//	[fetch]
//	timeout = "20s"
//	attempts = 3
//	cache = "redis"
//	cache_ttl = "72h"
//	redis_addr = "localhost:6379"
//
// Every key is optional. Command-line flags override config values.
package config

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/minicase/pkg/cache"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/pipeline"
	"github.com/matzehuels/minicase/pkg/source"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

// Config is the full configuration file.
type Config struct {
	Render Render `toml:"render"`
	Fetch  Fetch  `toml:"fetch"`
}

// Render holds defaults for [pipeline.Options].
type Render struct {
	Page             string  `toml:"page"`
	MarginMM         float64 `toml:"margin_mm"`
	Format           string  `toml:"format"`
	DPI              float64 `toml:"dpi"`
	PreviewDPI       float64 `toml:"preview_dpi"`
	Workers          int     `toml:"workers"`
	MaxCopiesPerPage int     `toml:"max_copies_per_page"`
	MaxOutputBytes   int64   `toml:"max_output_bytes"`
	MaxSourcePixels  int     `toml:"max_source_pixels"`
	JPEGQuality      int     `toml:"jpeg_quality"`
}

// Fetch configures reference resolution and the source cache.
type Fetch struct {
	Timeout   time.Duration `toml:"timeout"`
	Attempts  int           `toml:"attempts"`
	Delay     time.Duration `toml:"delay"`
	MaxBytes  int64         `toml:"max_bytes"`
	Cache     string        `toml:"cache"`
	CacheDir  string        `toml:"cache_dir"`
	CacheTTL  time.Duration `toml:"cache_ttl"`
	RedisAddr string        `toml:"redis_addr"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Render: Render{
			Page:             layout.Letter.Name,
			Format:           pipeline.FormatPDF,
			DPI:              pipeline.DefaultDPI,
			PreviewDPI:       pipeline.DefaultPreviewDPI,
			Workers:          pipeline.DefaultWorkers,
			MaxCopiesPerPage: errors.MaxCopiesPerPage,
			MaxOutputBytes:   pipeline.DefaultMaxOutputBytes,
			MaxSourcePixels:  pipeline.DefaultMaxSourcePixels,
			JPEGQuality:      pipeline.DefaultJPEGQuality,
		},
		Fetch: Fetch{
			Timeout:   source.DefaultTimeout,
			Attempts:  source.DefaultAttempts,
			Delay:     source.DefaultDelay,
			MaxBytes:  source.DefaultMaxBytes,
			Cache:     CacheFile,
			CacheTTL:  pipeline.DefaultSourceTTL,
			RedisAddr: "localhost:6379",
		},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "minicase", "config.toml"), nil
}

// Load reads path over the defaults. Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault reads the file at [Path], or returns [Default] when there
// is none.
func LoadDefault() (Config, error) {
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}
	return Load(path)
}

// Validate checks the values that are not covered by
// [pipeline.Options.ValidateForRender].
func (c Config) Validate() error {
	if _, err := layout.PageByName(c.Render.Page); err != nil {
		return err
	}
	if c.Render.MarginMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "margin_mm cannot be negative")
	}
	switch c.Fetch.Cache {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache must be file, redis or none, got %q", c.Fetch.Cache)
	}
	if c.Fetch.Attempts < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "attempts must be at least 1, got %d", c.Fetch.Attempts)
	}
	if c.Fetch.Timeout <= 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "timeout must be positive")
	}
	return nil
}

// Apply copies render settings into opts. Zero config values leave opts
// unchanged.
func (c Config) Apply(opts *pipeline.Options) error {
	r := c.Render
	if r.Page != "" {
		page, err := layout.PageByName(r.Page)
		if err != nil {
			return err
		}
		opts.Page = page
	}
	if r.MarginMM > 0 {
		if opts.Page == (layout.PageGeometry{}) {
			opts.Page = layout.Letter
		}
		opts.Page = opts.Page.WithMargin(r.MarginMM)
	}
	if r.Format != "" {
		opts.Format = r.Format
	}
	setIf(&opts.DPI, r.DPI)
	setIf(&opts.PreviewDPI, r.PreviewDPI)
	setIf(&opts.Workers, r.Workers)
	setIf(&opts.MaxCopiesPerPage, r.MaxCopiesPerPage)
	setIf(&opts.MaxOutputBytes, r.MaxOutputBytes)
	setIf(&opts.MaxSourcePixels, r.MaxSourcePixels)
	setIf(&opts.JPEGQuality, r.JPEGQuality)
	return nil
}

func setIf[T int | int64 | float64](dst *T, v T) {
	if v != 0 {
		*dst = v
	}
}

// OpenCache opens the configured source cache backend.
func (c Config) OpenCache(ctx context.Context) (cache.Cache, error) {
	switch c.Fetch.Cache {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, c.Fetch.RedisAddr)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", c.Fetch.RedisAddr)
		}
		return cache.Prefixed(rc, "minicase:"), nil
	default:
		dir := c.Fetch.CacheDir
		if dir == "" {
			var err error
			if dir, err = cache.DefaultDir(); err != nil {
				return nil, err
			}
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return fc, nil
	}
}

// FetcherOptions returns the source fetcher settings over cache c.
func (c Config) FetcherOptions(cc cache.Cache) []source.Option {
	f := c.Fetch
	opts := []source.Option{
		source.WithRetry(f.Attempts, f.Delay),
		source.WithHTTPClient(&http.Client{Timeout: f.Timeout}),
	}
	if f.MaxBytes > 0 {
		opts = append(opts, source.WithMaxBytes(f.MaxBytes))
	}
	if cc != nil {
		opts = append(opts, source.WithCache(cache.Observed(cc, "source"), f.CacheTTL))
	}
	return opts
}
