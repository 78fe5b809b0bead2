package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/matzehuels/minicase/pkg/cache"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/observability"
)

// Defaults for [NewFetcher].
const (
	DefaultTimeout  = 15 * time.Second
	DefaultAttempts = 3
	DefaultDelay    = 500 * time.Millisecond
	DefaultMaxBytes = 64 << 20
)

// Fetcher resolves references to bytes. It is safe for concurrent use when
// its cache is.
type Fetcher struct {
	HTTP     *http.Client
	Cache    cache.Cache
	TTL      time.Duration
	Attempts int
	Delay    time.Duration

	// MaxBytes caps the size of one fetched image.
	MaxBytes int64

	// BaseDir resolves relative paths. Empty means the working directory.
	BaseDir string
}

// Option configures a [Fetcher].
type Option func(*Fetcher)

// WithCache caches remote fetches in c for ttl (zero never expires).
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(f *Fetcher) { f.Cache, f.TTL = c, ttl }
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.HTTP = c }
}

// WithRetry sets the attempt count and the initial backoff delay.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(f *Fetcher) { f.Attempts, f.Delay = attempts, delay }
}

// WithBaseDir resolves relative paths against dir.
func WithBaseDir(dir string) Option {
	return func(f *Fetcher) { f.BaseDir = dir }
}

// WithMaxBytes caps the size of one fetched image.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) { f.MaxBytes = n }
}

// NewFetcher returns a fetcher with default timeout and retry policy and no
// cache.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		HTTP:     &http.Client{Timeout: DefaultTimeout},
		Cache:    cache.NewNullCache(),
		Attempts: DefaultAttempts,
		Delay:    DefaultDelay,
		MaxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the bytes behind ref. All failures carry IMAGE_FETCH.
func (f *Fetcher) Fetch(ctx context.Context, ref string) ([]byte, error) {
	scheme := Scheme(ref)
	observability.Fetch().OnFetchStart(ctx, scheme, ref)
	start := time.Now()

	var data []byte
	var err error
	if scheme == "file" {
		data, err = f.readFile(ref)
	} else {
		data, err = f.fetchURL(ctx, ref)
	}

	observability.Fetch().OnFetchComplete(ctx, scheme, ref, len(data), time.Since(start), err)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageFetch, err, "fetch %s", ref)
	}
	return data, nil
}

// Scheme classifies ref as "http", "https" or "file".
func Scheme(ref string) string {
	switch {
	case strings.HasPrefix(ref, "https://"):
		return "https"
	case strings.HasPrefix(ref, "http://"):
		return "http"
	default:
		return "file"
	}
}

func (f *Fetcher) readFile(ref string) ([]byte, error) {
	path := strings.TrimPrefix(ref, "file://")
	if err := errors.ValidatePath(path); err != nil {
		return nil, err
	}
	if !filepath.IsAbs(path) && f.BaseDir != "" {
		path = filepath.Join(f.BaseDir, path)
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "no such file")
	}
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, errors.New(errors.ErrCodeInvalidPath, "%s is a directory", path)
	}
	if f.MaxBytes > 0 && info.Size() > f.MaxBytes {
		return nil, errors.New(errors.ErrCodeResourceExhausted, "%s is %d bytes, limit is %d", path, info.Size(), f.MaxBytes)
	}
	return os.ReadFile(path)
}

func (f *Fetcher) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	key := cache.SourceKey(url)
	if data, ok, _ := f.Cache.Get(ctx, key); ok {
		return data, nil
	}

	var data []byte
	err := Retry(ctx, f.Attempts, f.Delay, func() error {
		var err error
		data, err = f.get(ctx, url)
		return err
	})
	if err != nil {
		return nil, err
	}

	_ = f.Cache.Set(ctx, key, data, f.TTL)
	return data, nil
}

func (f *Fetcher) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "build request")
	}
	req.Header.Set("Accept", "image/*")

	resp, err := f.HTTP.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "request failed")}
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, err
	}

	body := io.Reader(resp.Body)
	if f.MaxBytes > 0 {
		body = io.LimitReader(resp.Body, f.MaxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, &RetryableError{Err: errors.Wrap(errors.ErrCodeNetwork, err, "read body")}
	}
	if f.MaxBytes > 0 && int64(len(data)) > f.MaxBytes {
		return nil, errors.New(errors.ErrCodeResourceExhausted, "response exceeds %d bytes", f.MaxBytes)
	}
	return data, nil
}

func checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return errors.New(errors.ErrCodeNotFound, "status %d", code)
	case code == http.StatusTooManyRequests || code >= 500:
		return &RetryableError{Err: errors.New(errors.ErrCodeNetwork, "status %d", code)}
	default:
		return errors.New(errors.ErrCodeNetwork, "status %d", code)
	}
}

// String describes the fetch policy for logs.
func (f *Fetcher) String() string {
	return fmt.Sprintf("attempts=%d delay=%s max_bytes=%d", f.Attempts, f.Delay, f.MaxBytes)
}
