package pipeline

import (
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/render/sink"
	"github.com/matzehuels/minicase/pkg/units"
)

// newSurface opens the output surface for the configured format.
func newSurface(opts Options, title string) (render.Surface, error) {
	switch opts.Format {
	case FormatPNG:
		return sink.NewPNG(opts.Page, units.Raster(opts.PreviewDPI))
	case FormatJSON:
		return sink.NewJSON(opts.Page)
	default:
		return sink.NewPDF(opts.Page,
			sink.WithCreationDate(opts.Clock()),
			sink.WithJPEGQuality(opts.JPEGQuality),
			sink.WithTitle(title),
		)
	}
}
