package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/minicase/pkg/observability"
)

// debugHooks logs observability events at debug level.
type debugHooks struct {
	logger *log.Logger
}

func registerDebugHooks(l *log.Logger) {
	h := debugHooks{logger: l}
	observability.SetRenderHooks(h)
	observability.SetCacheHooks(h)
	observability.SetFetchHooks(h)
}

func (h debugHooks) OnRenderStart(_ context.Context, id string, copies int) {
	h.logger.Debug("render start", "render_id", id, "copies", copies)
}

func (h debugHooks) OnStageComplete(_ context.Context, id, stage string, d time.Duration) {
	h.logger.Debug("stage complete", "render_id", id, "stage", stage, "duration", d.Round(time.Microsecond))
}

func (h debugHooks) OnPlaceholder(_ context.Context, id, slot, code string) {
	if code == "" {
		code = "not provided"
	}
	h.logger.Debug("placeholder", "render_id", id, "slot", slot, "reason", code)
}

func (h debugHooks) OnRenderComplete(_ context.Context, id string, pages, placeholders int, d time.Duration, err error) {
	h.logger.Debug("render done", "render_id", id, "pages", pages, "placeholders", placeholders,
		"duration", d.Round(time.Millisecond), "err", err)
}

func (h debugHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h debugHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h debugHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h debugHooks) OnFetchStart(_ context.Context, scheme, ref string) {
	h.logger.Debug("fetch", "scheme", scheme, "ref", ref)
}

func (h debugHooks) OnFetchComplete(_ context.Context, scheme, ref string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("fetch failed", "scheme", scheme, "ref", ref, "err", err)
		return
	}
	h.logger.Debug("fetched", "scheme", scheme, "ref", ref, "bytes", size, "duration", d.Round(time.Millisecond))
}
