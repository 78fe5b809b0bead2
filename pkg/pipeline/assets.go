package pipeline

import (
	"context"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/progress"
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/template"
)

// resolved is one slot after reference resolution. err is set when the
// reference could not be fetched.
type resolved struct {
	spec  dimensions.ComponentSpec
	image template.SlotImage
	err   error
}

// fetchStage resolves every slot that carries a reference but no bytes.
// Fetch failures are recorded on the slot, never returned.
func (r *Runner) fetchStage(ctx context.Context, s *state) error {
	specs := s.opts.Table.Components()
	s.sources = make([]resolved, len(specs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	var fetched, failed atomic.Int32
	for i, spec := range specs {
		img := s.req.Image(spec.Slot)
		s.sources[i] = resolved{spec: spec, image: img}
		if img.Bytes != nil || img.Ref == "" {
			continue
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			data, err := r.Fetcher.Fetch(gctx, img.Ref)
			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				failed.Add(1)
				if !errors.Is(err, errors.ErrCodeImageFetch) {
					err = errors.Wrap(errors.ErrCodeImageFetch, err, "fetch %s", img.Ref)
				}
				s.sources[i].err = err
				s.logger.Warn("image fetch failed", "slot", spec.Slot, "ref", img.Ref, "err", err)
				return nil
			}
			fetched.Add(1)
			s.sources[i].image.Bytes = data
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.stats.Fetched = int(fetched.Load())
	s.logger.Debug("resolved sources", "fetched", fetched.Load(), "failed", failed.Load())
	return nil
}

// compositeStage builds one asset per slot. Only resource exhaustion and
// cancellation fail the stage.
func (r *Runner) compositeStage(ctx context.Context, s *state) error {
	comp := compose.New(s.opts.DPI)
	comp.MaxSourcePixels = s.opts.MaxSourcePixels

	assets := make([]compose.Asset, len(s.sources))
	total := len(s.sources)
	start, end := progress.OptimizingImages.Start(), progress.CreatingDocument.Start()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.Workers)

	var done atomic.Int32
	for i, src := range s.sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var asset compose.Asset
			if src.err != nil {
				asset = comp.Placeholder(src.spec.Slot, src.spec, src.err)
			} else {
				var err error
				if asset, err = comp.Composite(src.image, src.spec); err != nil {
					return err
				}
				if asset.Err != nil {
					s.logger.Warn("image decode failed", "slot", src.spec.Slot, "err", asset.Err)
				}
			}
			assets[i] = asset

			n := done.Add(1)
			s.rep.Report(start+(end-start)*float64(n)/float64(total), progress.OptimizingImages,
				fmt.Sprintf("%d/%d slots", n, total))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.assets = make(render.Assets, len(assets))
	placeholders := 0
	for _, a := range assets {
		s.assets[a.Slot] = a
		if a.Placeholder {
			placeholders++
		}
	}
	s.logger.Info("composited assets", "slots", len(assets), "placeholders", placeholders, "dpi", s.opts.DPI)
	return nil
}
