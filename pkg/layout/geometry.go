package layout

import (
	"strings"

	"github.com/matzehuels/minicase/pkg/errors"
)

// PageGeometry is a sheet size with a uniform margin, in millimeters.
type PageGeometry struct {
	Name     string  `json:"name,omitempty"`
	WidthMM  float64 `json:"width_mm"`
	HeightMM float64 `json:"height_mm"`
	MarginMM float64 `json:"margin_mm"`
}

// DefaultMarginMM is the margin of the built-in sheets.
const DefaultMarginMM = 10.0

var (
	// Letter is the canonical US Letter sheet.
	Letter = PageGeometry{Name: "letter", WidthMM: 215.9, HeightMM: 279.4, MarginMM: DefaultMarginMM}
	// A4 is the ISO 216 A4 sheet.
	A4 = PageGeometry{Name: "a4", WidthMM: 210, HeightMM: 297, MarginMM: DefaultMarginMM}
)

// PageByName returns a built-in sheet ("letter" or "a4", case-insensitive).
func PageByName(name string) (PageGeometry, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "letter", "us-letter":
		return Letter, nil
	case "a4":
		return A4, nil
	default:
		return PageGeometry{}, errors.New(errors.ErrCodeInvalidGeometry, "unknown page size %q (want letter or a4)", name)
	}
}

// WithMargin returns g with its margin replaced.
func (g PageGeometry) WithMargin(mm float64) PageGeometry {
	g.MarginMM = mm
	return g
}

// Validate checks 0 <= margin < min(width, height)/2.
func (g PageGeometry) Validate() error {
	if g.WidthMM <= 0 || g.HeightMM <= 0 {
		return errors.New(errors.ErrCodeInvalidGeometry, "page must have positive size, got %gx%g mm", g.WidthMM, g.HeightMM)
	}
	if g.MarginMM < 0 || g.MarginMM >= min(g.WidthMM, g.HeightMM)/2 {
		return errors.New(errors.ErrCodeInvalidGeometry, "margin %g mm does not fit a %gx%g mm page", g.MarginMM, g.WidthMM, g.HeightMM)
	}
	return nil
}

// Printable returns the area inside the margins.
func Printable(g PageGeometry) Box {
	return Box{
		X: g.MarginMM,
		Y: g.MarginMM,
		W: g.WidthMM - 2*g.MarginMM,
		H: g.HeightMM - 2*g.MarginMM,
	}
}
