package pipeline

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/minicase/pkg/cache"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/observability"
	"github.com/matzehuels/minicase/pkg/progress"
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/source"
	"github.com/matzehuels/minicase/pkg/template"
)

// DefaultSourceTTL is how long fetched source images stay cached.
const DefaultSourceTTL = 7 * 24 * time.Hour

// CancelledDetail is the ERROR stage detail of a cancelled render.
const CancelledDetail = "CANCELLED"

// Fetcher resolves an image reference (path or URL) to bytes.
type Fetcher interface {
	Fetch(ctx context.Context, ref string) ([]byte, error)
}

// Runner executes renders. A Runner holds no per-render state and is safe
// for concurrent use.
type Runner struct {
	// Cache backs the default fetcher.
	Cache cache.Cache

	// Fetcher resolves slot references. Requests that carry only bytes
	// never touch it.
	Fetcher Fetcher

	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables source caching, and a
// nil fetcher is replaced by a [source.Fetcher] over the cache.
func NewRunner(c cache.Cache, f Fetcher, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if f == nil {
		f = source.NewFetcher(source.WithCache(cache.Observed(c, "source"), DefaultSourceTTL))
	}
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Runner{Cache: c, Fetcher: f, Logger: logger}
}

// state carries one render through its stages.
type state struct {
	id     string
	req    template.Request
	opts   Options
	logger *log.Logger
	rep    *progress.Reporter
	hooks  observability.RenderHooks

	plan    render.Plan
	surface render.Surface
	sources []resolved
	assets  render.Assets

	stats Stats
}

// Render produces one document for req.
//
// Structural errors (invalid copies, geometry, format, layout overflow,
// renderer setup, output size) and resource exhaustion abort the render
// and return no result. Image failures never do: the affected slot becomes
// a placeholder and a [Warning]. Cancellation returns the context error.
func (r *Runner) Render(ctx context.Context, req template.Request, opts Options) (*Result, error) {
	start := time.Now()
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}

	s := &state{
		id:    uuid.NewString(),
		req:   req,
		hooks: observability.Render(),
		rep:   progress.NewReporter(opts.Progress),
	}
	s.hooks.OnRenderStart(ctx, s.id, req.Copies())
	s.rep.Stage(progress.Initializing, "")

	result, err := r.run(ctx, s, opts)
	s.stats.TotalTime = time.Since(start)
	if err != nil {
		s.rep.Fail(failureDetail(err))
		if s.logger != nil {
			s.logger.Error("render failed", "code", errors.GetCode(err), "err", err)
		}
		s.hooks.OnRenderComplete(ctx, s.id, 0, 0, s.stats.TotalTime, err)
		return nil, err
	}

	result.Stats = s.stats
	s.rep.Stage(progress.Complete, "")
	s.logger.Info("render complete",
		"pages", result.PageCount,
		"placeholders", len(result.Placeholders),
		"warnings", len(result.Warnings),
		"bytes", len(result.Buffer),
		"duration", s.stats.TotalTime)
	s.hooks.OnRenderComplete(ctx, s.id, result.PageCount, len(result.Placeholders), s.stats.TotalTime, nil)
	return result, nil
}

func (r *Runner) run(ctx context.Context, s *state, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}

	// Stage 1: validate and plan
	if err := opts.ValidateForRender(); err != nil {
		return nil, fmt.Errorf("options: %w", err)
	}
	s.opts = opts
	s.logger = opts.Logger.With("render_id", s.id)
	s.logger.Debug("render started", "request", s.req.String(), "format", opts.Format, "page", opts.Page.Name)

	if err := r.stage(ctx, s, "plan", &s.stats.PlanTime, r.planStage); err != nil {
		return nil, err
	}

	// Stage 2: resolve references
	s.rep.Stage(progress.AnalyzingImages, fmt.Sprintf("%d slots", len(s.opts.Table.Components())))
	if err := r.stage(ctx, s, "fetch", &s.stats.FetchTime, r.fetchStage); err != nil {
		return nil, err
	}

	// Stage 3: composite
	s.rep.Stage(progress.OptimizingImages, "")
	if err := r.stage(ctx, s, "composite", &s.stats.CompositeTime, r.compositeStage); err != nil {
		return nil, err
	}

	// Stage 4: draw
	if err := r.stage(ctx, s, "draw", &s.stats.DrawTime, func(ctx context.Context, s *state) error {
		return render.Draw(ctx, s.surface, s.plan, s.assets, s.req.Text, s.rep)
	}); err != nil {
		return nil, err
	}

	// Stage 5: serialize
	s.rep.Stage(progress.Finalizing, opts.Format)
	return r.finalize(ctx, s)
}

// stage runs fn, records its duration and reports it to the hooks.
func (r *Runner) stage(ctx context.Context, s *state, name string, elapsed *time.Duration, fn func(context.Context, *state) error) error {
	t := time.Now()
	err := fn(ctx, s)
	*elapsed = time.Since(t)
	if err != nil {
		if ctx.Err() != nil {
			return cancelled(ctx.Err())
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	s.hooks.OnStageComplete(ctx, s.id, name, *elapsed)
	return nil
}

func (r *Runner) planStage(_ context.Context, s *state) error {
	if err := s.req.Validate(s.opts.MaxCopiesPerPage); err != nil {
		return err
	}

	perPage := s.req.CopiesPerPage
	origins, err := layout.ComputeCopyOrigins(s.opts.Page, s.opts.Table, perPage)
	if err != nil {
		return err
	}

	counts := layout.Paginate(s.req.Copies(), perPage)
	pages := make([][]layout.CopyOrigin, len(counts))
	for i, n := range counts {
		pages[i] = origins[:n]
	}
	s.plan = render.BuildPlan(s.opts.Page, s.opts.Table, pages)
	s.stats.Pages = s.plan.PageCount()
	s.stats.Copies = s.plan.CopyCount()

	surface, err := newSurface(s.opts, s.req.Text.AlbumTitle)
	if err != nil {
		return err
	}
	s.surface = surface

	s.logger.Info("planned layout",
		"copies_per_page", perPage,
		"copies", s.stats.Copies,
		"pages", s.stats.Pages,
		"placements", len(s.plan.Placements))
	return nil
}

func (r *Runner) finalize(ctx context.Context, s *state) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, cancelled(err)
	}
	buf, err := s.surface.Close()
	if err != nil {
		return nil, fmt.Errorf("finalize: %w", err)
	}
	if int64(len(buf)) > s.opts.MaxOutputBytes {
		return nil, errors.New(errors.ErrCodeOutputTooLarge, "document is %d bytes, limit is %d", len(buf), s.opts.MaxOutputBytes)
	}
	s.stats.Bytes = len(buf)

	result := &Result{
		RenderID:    s.id,
		Buffer:      buf,
		ContentType: s.surface.ContentType(),
		PageCount:   s.plan.PageCount(),
		Placements:  s.plan.Placements,
	}
	for _, spec := range s.opts.Table.Components() {
		asset := s.assets[spec.Slot]
		if !asset.Placeholder {
			continue
		}
		result.Placeholders = append(result.Placeholders, spec.Slot)
		code := ""
		if asset.Err != nil {
			code = string(errors.GetCode(asset.Err))
			result.Warnings = append(result.Warnings, Warning{
				Slot:    spec.Slot,
				Code:    errors.GetCode(asset.Err),
				Message: errors.UserMessage(asset.Err),
			})
		}
		s.hooks.OnPlaceholder(ctx, s.id, string(spec.Slot), code)
	}
	return result, nil
}

func cancelled(err error) error {
	return fmt.Errorf("render cancelled: %w", err)
}

// failureDetail is the ERROR stage detail for err.
func failureDetail(err error) string {
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return CancelledDetail
	}
	if code := errors.GetCode(err); code != "" {
		return string(code)
	}
	return string(errors.ErrCodeInternal)
}
