package compose

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/template"
	"github.com/matzehuels/minicase/pkg/units"
)

// DefaultMaxSourcePixels bounds decoded source images (about 50 megapixels).
const DefaultMaxSourcePixels = 50_000_000

var (
	// DefaultHoleColor fills the disc center hole.
	DefaultHoleColor color.Color = color.White
	// DefaultPlaceholderColor fills placeholder assets.
	DefaultPlaceholderColor color.Color = color.NRGBA{R: 0xE0, G: 0xE0, B: 0xE0, A: 0xFF}
)

// HoleGeometry is the position of a disc's center hole, in pixels of the
// asset image.
type HoleGeometry struct {
	CenterX float64 `json:"center_x"`
	CenterY float64 `json:"center_y"`
	Radius  float64 `json:"radius"`
}

// Asset is a composited, ready-to-draw slot image. Assets belong to a
// single render.
type Asset struct {
	Slot      template.SlotID
	Component dimensions.ComponentID
	Image     image.Image

	// Placeholder is set when Image is synthetic.
	Placeholder bool

	// Hole is set for disc components.
	Hole *HoleGeometry

	// Err explains a placeholder produced by a decode or fetch failure.
	// It is nil for real artwork and for slots that were not provided.
	Err error
}

// Opaque reports whether every pixel of the asset is opaque.
func (a Asset) Opaque() bool {
	return a.Hole == nil
}

// Compositor builds assets at a fixed resolution. The zero value is not
// usable; call [New] or fill every field.
type Compositor struct {
	// Resolution converts component millimeters to asset pixels.
	Resolution units.Converter

	// MaxSourcePixels caps width*height of a decoded source image.
	// Zero disables the check.
	MaxSourcePixels int

	HoleColor        color.Color
	PlaceholderColor color.Color
}

// New returns a compositor at dpi with the default colors and budget.
func New(dpi float64) *Compositor {
	if dpi <= 0 {
		dpi = units.DefaultPrintDPI
	}
	return &Compositor{
		Resolution:       units.Raster(dpi),
		MaxSourcePixels:  DefaultMaxSourcePixels,
		HoleColor:        DefaultHoleColor,
		PlaceholderColor: DefaultPlaceholderColor,
	}
}

// Composite produces the asset for one slot. The only error it returns is
// RESOURCE_EXHAUSTED; everything else degrades to a placeholder.
func (c *Compositor) Composite(slot template.SlotImage, spec dimensions.ComponentSpec) (Asset, error) {
	if slot.Bytes == nil {
		return c.Placeholder(slot.Slot, spec, nil), nil
	}

	img, err := decode(slot.Bytes, c.MaxSourcePixels)
	if err != nil {
		if errors.IsResource(err) {
			return Asset{}, errors.Wrap(errors.ErrCodeResourceExhausted, err, "slot %s", slot.Slot)
		}
		return c.Placeholder(slot.Slot, spec, errors.Wrap(errors.ErrCodeImageDecode, err, "slot %s", slot.Slot)), nil
	}

	w, h := c.pixelSize(spec)
	fitted := imaging.Fill(img, w, h, imaging.Center, imaging.Lanczos)
	if !fitted.Opaque() {
		fitted = imaging.Overlay(imaging.New(w, h, color.White), fitted, image.Pt(0, 0), 1)
	}

	asset := Asset{
		Slot:      slot.Slot,
		Component: spec.ID,
		Image:     fitted,
	}
	if spec.Shape == dimensions.ShapeDisc {
		asset.Image, asset.Hole = c.punchDisc(fitted, spec)
	}
	return asset, nil
}

func (c *Compositor) pixelSize(spec dimensions.ComponentSpec) (w, h int) {
	wmm, hmm := spec.Size()
	return c.Resolution.Pixels(wmm), c.Resolution.Pixels(hmm)
}

func (c *Compositor) holeColor() color.Color {
	if c.HoleColor == nil {
		return DefaultHoleColor
	}
	return c.HoleColor
}

func (c *Compositor) placeholderColor() color.Color {
	if c.PlaceholderColor == nil {
		return DefaultPlaceholderColor
	}
	return c.PlaceholderColor
}
