// Package source dereferences slot image references.
//
// A reference is a local path (absolute, relative to [Fetcher.BaseDir], or
// a file:// URL) or an http(s) URL. Remote fetches retry transient failures
// with exponential backoff and go through an optional [cache.Cache] keyed by
// the reference.
//
// Every failure is returned as an IMAGE_FETCH error. The engine turns those
// into placeholders, so a broken link never fails a whole render.
//
//	f := source.NewFetcher(source.WithCache(c, 24*time.Hour))
//	data, err := f.Fetch(ctx, "https://example.com/cover.jpg")
//
// [cache.Cache]: github.com/matzehuels/minicase/pkg/cache
package source
