package compose

import (
	"image/color"

	"github.com/fogleman/gg"
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/template"
)

// PlaceholderLabel is the text drawn in the middle of a placeholder.
const PlaceholderLabel = "Image Error"

// Placeholder style, in millimeters.
const (
	borderMM    = 0.3
	dashMM      = 1.2
	labelSizePt = 6.0
)

var strokeColor = color.NRGBA{R: 0x99, G: 0x99, B: 0x99, A: 0xFF}

// Placeholder draws the synthetic asset for spec. cause is recorded on the
// asset and may be nil. It never fails.
func (c *Compositor) Placeholder(slot template.SlotID, spec dimensions.ComponentSpec, cause error) Asset {
	w, h := c.pixelSize(spec)
	dc := gg.NewContext(w, h)
	fw, fh := float64(w), float64(h)
	line := max(c.Resolution.ToUnit(borderMM), 1)
	dash := c.Resolution.ToUnit(dashMM)

	asset := Asset{
		Slot:        slot,
		Component:   spec.ID,
		Placeholder: true,
		Err:         cause,
	}

	if spec.Shape == dimensions.ShapeDisc {
		hole := c.hole(w, h, spec)
		r := min(fw, fh)/2 - line/2

		dc.SetColor(c.placeholderColor())
		dc.DrawCircle(hole.CenterX, hole.CenterY, r)
		dc.Fill()

		dc.SetColor(strokeColor)
		dc.SetLineWidth(line)
		dc.SetDash(dash, dash)
		dc.DrawCircle(hole.CenterX, hole.CenterY, r)
		dc.Stroke()
		dc.SetDash()
		dc.DrawLine(hole.CenterX-r*0.7071, hole.CenterY+r*0.7071, hole.CenterX-hole.Radius, hole.CenterY+hole.Radius)
		dc.Stroke()

		dc.SetColor(c.holeColor())
		dc.DrawCircle(hole.CenterX, hole.CenterY, hole.Radius)
		dc.Fill()

		asset.Hole = hole
		c.drawLabel(dc, fw, hole.CenterY+(r+hole.Radius)/2)
	} else {
		dc.SetColor(c.placeholderColor())
		dc.Clear()

		dc.SetColor(strokeColor)
		dc.SetLineWidth(line)
		dc.SetDash(dash, dash)
		dc.DrawRectangle(line/2, line/2, fw-line, fh-line)
		dc.Stroke()
		dc.SetDash()
		dc.DrawLine(0, fh, fw, 0)
		dc.Stroke()
		c.drawLabel(dc, fw, fh/2)
	}

	asset.Image = dc.Image()
	return asset
}

// drawLabel centers the placeholder label horizontally at height y,
// skipping it when it does not fit.
func (c *Compositor) drawLabel(dc *gg.Context, w, y float64) {
	face, err := labelFace(labelSizePt, c.Resolution.DPI())
	if err != nil {
		return
	}
	defer face.Close()

	dc.SetFontFace(face)
	if tw, _ := dc.MeasureString(PlaceholderLabel); tw > w*0.9 {
		return
	}
	dc.SetColor(color.Black)
	dc.DrawStringAnchored(PlaceholderLabel, w/2, y, 0.5, 0.5)
}
