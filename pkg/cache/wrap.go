package cache

import (
	"context"
	"time"

	"github.com/matzehuels/minicase/pkg/observability"
)

// Prefixed scopes every key of inner with prefix, so several tools can
// share one Redis database.
func Prefixed(inner Cache, prefix string) Cache {
	if prefix == "" {
		return inner
	}
	return &prefixed{inner: inner, prefix: prefix}
}

type prefixed struct {
	inner  Cache
	prefix string
}

func (p *prefixed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return p.inner.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return p.inner.Set(ctx, p.prefix+key, data, ttl)
}

func (p *prefixed) Delete(ctx context.Context, key string) error {
	return p.inner.Delete(ctx, p.prefix+key)
}

func (p *prefixed) Close() error { return p.inner.Close() }

// Observed reports hits, misses and writes of inner to the registered
// cache hooks under keyType.
func Observed(inner Cache, keyType string) Cache {
	return &observed{inner: inner, keyType: keyType}
}

type observed struct {
	inner   Cache
	keyType string
}

func (o *observed) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, ok, err := o.inner.Get(ctx, key)
	if err == nil {
		if ok {
			observability.Cache().OnCacheHit(ctx, o.keyType)
		} else {
			observability.Cache().OnCacheMiss(ctx, o.keyType)
		}
	}
	return data, ok, err
}

func (o *observed) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	err := o.inner.Set(ctx, key, data, ttl)
	if err == nil {
		observability.Cache().OnCacheSet(ctx, o.keyType, len(data))
	}
	return err
}

func (o *observed) Delete(ctx context.Context, key string) error { return o.inner.Delete(ctx, key) }

func (o *observed) Close() error { return o.inner.Close() }
