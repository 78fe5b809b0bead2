package layout

import "math"

// Box is an axis-aligned rectangle in millimeters, top-left origin.
type Box struct {
	X float64 `json:"x_mm"`
	Y float64 `json:"y_mm"`
	W float64 `json:"w_mm"`
	H float64 `json:"h_mm"`
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Bottom returns the y coordinate of the bottom edge.
func (b Box) Bottom() float64 { return b.Y + b.H }

// CenterX returns the horizontal center.
func (b Box) CenterX() float64 { return b.X + b.W/2 }

// CenterY returns the vertical center.
func (b Box) CenterY() float64 { return b.Y + b.H/2 }

// Translate returns b moved by dx, dy.
func (b Box) Translate(dx, dy float64) Box {
	b.X += dx
	b.Y += dy
	return b
}

// Overlaps reports whether the interiors of b and o intersect. Boxes that
// only share an edge do not overlap.
func (b Box) Overlaps(o Box) bool {
	return b.X < o.Right()-epsilon && o.X < b.Right()-epsilon &&
		b.Y < o.Bottom()-epsilon && o.Y < b.Bottom()-epsilon
}

// Inside reports whether b lies within o.
func (b Box) Inside(o Box) bool {
	return b.X >= o.X-epsilon && b.Y >= o.Y-epsilon &&
		b.Right() <= o.Right()+epsilon && b.Bottom() <= o.Bottom()+epsilon
}

// epsilon absorbs float rounding in millimeter comparisons.
const epsilon = 1e-9

func round(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
