package compose

import (
	"image"

	"github.com/fogleman/gg"
	"github.com/matzehuels/minicase/pkg/dimensions"
)

// punchDisc clips a square image to the disc outline and fills the center
// hole. Pixels outside the outer circle stay transparent.
func (c *Compositor) punchDisc(src image.Image, spec dimensions.ComponentSpec) (image.Image, *HoleGeometry) {
	b := src.Bounds()
	dc := gg.NewContext(b.Dx(), b.Dy())
	hole := c.hole(b.Dx(), b.Dy(), spec)

	dc.DrawCircle(hole.CenterX, hole.CenterY, float64(min(b.Dx(), b.Dy()))/2)
	dc.Clip()
	dc.DrawImage(src, 0, 0)
	dc.ResetClip()

	dc.SetColor(c.holeColor())
	dc.DrawCircle(hole.CenterX, hole.CenterY, hole.Radius)
	dc.Fill()

	return dc.Image(), hole
}

func (c *Compositor) hole(w, h int, spec dimensions.ComponentSpec) *HoleGeometry {
	return &HoleGeometry{
		CenterX: float64(w) / 2,
		CenterY: float64(h) / 2,
		Radius:  c.Resolution.ToUnit(spec.HoleDiameterMM / 2),
	}
}
