// Package pipeline renders a miniature CD package template end to end.
//
// A [Runner] takes a [template.Request] (slot images, text, copy counts)
// and produces a serialized document. The render moves through fixed
// stages, each reported to an optional progress callback:
//
//  1. INITIALIZING: validate options and request, compute copy origins and
//     the draw plan, open the output surface. Structural errors stop here,
//     before any image work.
//  2. ANALYZING_IMAGES: resolve slot references (paths, URLs) concurrently.
//  3. OPTIMIZING_IMAGES: composite every slot once, concurrently.
//  4. CREATING_DOCUMENT, DRAWING_FRONT_COVERS, DRAWING_DISC,
//     DRAWING_BACK_COVERS: draw the plan page by page.
//  5. FINALIZING: serialize and enforce the output size limit.
//  6. COMPLETE, or ERROR with the error code as detail.
//
// Slots that cannot be fetched or decoded are drawn as placeholders and
// listed in [Result.Warnings]; the render still succeeds. Structural and
// resource errors return no result at all.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Render(ctx, req, pipeline.Options{
//	    Format:   pipeline.FormatPDF,
//	    Progress: func(f float64, s progress.Stage, d string) { ... },
//	})
//	if err != nil {
//	    return err
//	}
//	os.WriteFile("minicase.pdf", result.Buffer, 0o644)
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/progress"
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/render/sink"
	"github.com/matzehuels/minicase/pkg/template"
	"github.com/matzehuels/minicase/pkg/units"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and library callers
// =============================================================================

const (
	// DefaultDPI is the compositing resolution of print output.
	DefaultDPI = units.DefaultPrintDPI

	// DefaultPreviewDPI is the resolution of PNG previews.
	DefaultPreviewDPI = units.ScreenDPI

	// DefaultMaxOutputBytes caps the serialized document (64 MiB).
	DefaultMaxOutputBytes = 64 << 20

	// DefaultMaxSourcePixels caps one decoded source image (50 MP).
	DefaultMaxSourcePixels = compose.DefaultMaxSourcePixels

	// DefaultWorkers bounds concurrent fetches and composites.
	DefaultWorkers = 4

	// DefaultJPEGQuality is the quality of embedded opaque assets.
	DefaultJPEGQuality = sink.DefaultJPEGQuality
)

// Format constants for output formats.
const (
	FormatPDF  = "pdf"
	FormatPNG  = "png"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPDF:  true,
	FormatPNG:  true,
	FormatJSON: true,
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options configures one render. The zero value renders a PDF on US Letter
// at 300 dpi.
type Options struct {
	Format string              `json:"format,omitempty"`
	Page   layout.PageGeometry `json:"page,omitempty"`

	DPI        float64 `json:"dpi,omitempty"`
	PreviewDPI float64 `json:"preview_dpi,omitempty"`

	// MaxCopiesPerPage lowers the page density cap below 3.
	MaxCopiesPerPage int `json:"max_copies_per_page,omitempty"`

	MaxOutputBytes  int64 `json:"max_output_bytes,omitempty"`
	MaxSourcePixels int   `json:"max_source_pixels,omitempty"`
	Workers         int   `json:"workers,omitempty"`
	JPEGQuality     int   `json:"jpeg_quality,omitempty"`

	// Runtime options (not serialized)

	// Table overrides the built-in dimension table.
	Table dimensions.Table `json:"-"`

	// Clock stamps the document creation date. Fix it for byte-identical
	// output across runs.
	Clock func() time.Time `json:"-"`

	Progress progress.Func `json:"-"`
	Logger   *log.Logger   `json:"-"`
}

// Warning records a slot that was drawn as a placeholder after a failure.
type Warning struct {
	Slot    template.SlotID `json:"slot"`
	Code    errors.Code     `json:"code"`
	Message string          `json:"message"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s (%s)", w.Slot, w.Message, w.Code)
}

// Result is a successful render.
type Result struct {
	RenderID    string `json:"render_id"`
	Buffer      []byte `json:"-"`
	ContentType string `json:"content_type"`
	PageCount   int    `json:"page_count"`

	// Placeholders lists every slot drawn as a placeholder, in table order,
	// including slots that were simply not provided.
	Placeholders []template.SlotID `json:"placeholders"`

	// Warnings lists fetch and decode failures, in table order.
	Warnings []Warning `json:"warnings"`

	Placements []render.Placement `json:"placements"`
	Stats      Stats              `json:"stats"`
}

// Degraded reports whether any slot failed and was replaced.
func (r *Result) Degraded() bool {
	return len(r.Warnings) > 0
}

// Stats contains render execution statistics.
type Stats struct {
	Pages         int           `json:"pages"`
	Copies        int           `json:"copies"`
	Fetched       int           `json:"fetched"`
	Bytes         int           `json:"bytes"`
	PlanTime      time.Duration `json:"plan_time"`
	FetchTime     time.Duration `json:"fetch_time"`
	CompositeTime time.Duration `json:"composite_time"`
	DrawTime      time.Duration `json:"draw_time"`
	TotalTime     time.Duration `json:"total_time"`
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: pdf, png, json)", format)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// SetRenderDefaults fills unset fields with defaults.
func (o *Options) SetRenderDefaults() {
	if o.Format == "" {
		o.Format = FormatPDF
	}
	if o.Page == (layout.PageGeometry{}) {
		o.Page = layout.Letter
	}
	if o.DPI == 0 {
		o.DPI = DefaultDPI
	}
	if o.PreviewDPI == 0 {
		o.PreviewDPI = DefaultPreviewDPI
	}
	if o.MaxCopiesPerPage == 0 {
		o.MaxCopiesPerPage = errors.MaxCopiesPerPage
	}
	if o.MaxOutputBytes == 0 {
		o.MaxOutputBytes = DefaultMaxOutputBytes
	}
	if o.MaxSourcePixels == 0 {
		o.MaxSourcePixels = DefaultMaxSourcePixels
	}
	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.JPEGQuality == 0 {
		o.JPEGQuality = DefaultJPEGQuality
	}
	if o.Table.Len() == 0 {
		o.Table = dimensions.Default()
	}
	if o.Clock == nil {
		o.Clock = time.Now
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender applies defaults and checks every option.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormat(o.Format); err != nil {
		return err
	}
	if err := o.Page.Validate(); err != nil {
		return err
	}
	if o.DPI < 0 || o.PreviewDPI < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "dpi must be positive")
	}
	if o.MaxCopiesPerPage < 1 || o.MaxCopiesPerPage > errors.MaxCopiesPerPage {
		return errors.New(errors.ErrCodeInvalidConfig, "max copies per page must be between 1 and %d, got %d",
			errors.MaxCopiesPerPage, o.MaxCopiesPerPage)
	}
	if o.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "workers must be at least 1, got %d", o.Workers)
	}
	if o.JPEGQuality < 1 || o.JPEGQuality > 100 {
		return errors.New(errors.ErrCodeInvalidConfig, "jpeg quality must be 1-100, got %d", o.JPEGQuality)
	}
	return nil
}
