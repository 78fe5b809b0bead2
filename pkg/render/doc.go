// Package render sequences composited assets onto document pages.
//
// Rendering has two halves. [BuildPlan] is pure geometry: it expands copy
// origins and the dimension table into an ordered list of [Placement]
// values, one per component per copy per page. [Draw] walks that plan and
// issues draw calls against a [Surface], reporting progress per page.
//
// Draw order is fixed by the plan, never by the order in which assets were
// produced: page, then group (front covers, disc, back covers), then copy,
// then table order. Text is drawn once, inside the first copy's outside
// front cover.
//
// # Surfaces
//
// The [sink] subpackage provides surfaces for PDF (the print output), PNG
// (a screen preview) and JSON (a machine-readable draw log).
//
//	plan := render.BuildPlan(layout.Letter, dimensions.Default(), pages)
//	surface, err := sink.NewPDF(layout.Letter, sink.WithCreationDate(now))
//	err = render.Draw(ctx, surface, plan, assets, text, reporter)
//	pdf, err := surface.Close()
//
// [sink]: github.com/matzehuels/minicase/pkg/render/sink
package render
