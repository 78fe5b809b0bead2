// Package pkg provides the libraries behind minicase, a print-layout engine
// for miniature CD packages.
//
// # Overview
//
// A template copy is seven pieces of artwork (outside and inside front
// cover, disc, four back cover panels) placed at fixed millimeter offsets.
// One to three copies are stacked on each printable page; the sheet is then
// printed, cut along the guides and folded.
//
// The data flow of one render:
//
//	template.Request (slot bytes or refs, text, copies)
//	         ↓
//	    [source] resolves path and URL refs to bytes
//	         ↓
//	    [compose] decodes, cover-fits and masks each slot once
//	         ↓
//	    [layout] computes copy origins, [render] expands them into a plan
//	         ↓
//	    [render/sink] draws the plan as PDF, PNG or JSON
//
// [pipeline] sequences these stages, reports [progress] and returns the
// document bytes with any placeholder warnings.
//
// # Quick Start
//
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Render(ctx, template.Request{
//	    CopiesPerPage: 2,
//	    Images: map[template.SlotID]template.SlotImage{
//	        template.FrontCoverOutside: {Bytes: front},
//	        template.CDDisc:            {Ref: "https://example.com/disc.png"},
//	    },
//	}, pipeline.Options{})
//
// # Main Packages
//
// ## Geometry
//
// [units] - millimeter, point and pixel conversion.
//
// [dimensions] - the immutable dimension table: component sizes, offsets and
// the artwork slot each component draws.
//
// [layout] - page geometry, copy origins and pagination. Pure functions.
//
// ## Images and Drawing
//
// [compose] - per-slot raster compositing: cover fit, disc hole, placeholders.
//
// [render] - draw plans, text layout and the drawing surface interface.
//
// [render/sink] - PDF (fpdf), PNG preview (gg) and JSON surfaces.
//
// ## Infrastructure
//
// [source] - reference resolution with retry.
//
// [cache] - file, redis and null caches for fetched sources.
//
// [config] and [manifest] - TOML engine settings and job files.
//
// [errors] - error codes and their structural/resource/asset classification.
//
// [observability] - render, fetch and cache hooks.
//
// [buildinfo] - version information.
package pkg
