// Package units converts between millimeters and device units.
//
// Every length in the repository is expressed in millimeters until it reaches
// a device: PDF user space (points), a raster canvas (pixels at a print
// resolution) or a screen preview (pixels at 96 dpi). A [Converter] is the
// only place where that arithmetic happens.
//
//	px := units.Raster(300).Pixels(40)   // 472
//	pt := units.Points.ToUnit(215.9)     // 612
package units

import "math"

// MMPerInch is the number of millimeters in one inch.
const MMPerInch = 25.4

// PointsPerInch is the PostScript/PDF point density.
const PointsPerInch = 72.0

// DefaultPrintDPI is the compositing resolution used for print output.
const DefaultPrintDPI = 300.0

// ScreenDPI is the nominal resolution of screen previews.
const ScreenDPI = 96.0

// Converter maps millimeters to one device unit with a fixed density.
type Converter struct {
	// PerMM is the number of device units in one millimeter.
	PerMM float64
}

var (
	// Points converts to PDF points (1 mm = 2.83465 pt).
	Points = Converter{PerMM: PointsPerInch / MMPerInch}

	// Screen converts to preview pixels at 96 dpi.
	Screen = Raster(ScreenDPI)
)

// Raster returns a pixel converter for the given dots-per-inch.
func Raster(dpi float64) Converter {
	return Converter{PerMM: dpi / MMPerInch}
}

// ToUnit converts millimeters to device units.
func (c Converter) ToUnit(mm float64) float64 {
	return mm * c.PerMM
}

// ToMM converts device units to millimeters.
func (c Converter) ToMM(unit float64) float64 {
	return unit / c.PerMM
}

// Pixels converts millimeters to a whole pixel count, rounded to the nearest
// pixel and never less than one.
func (c Converter) Pixels(mm float64) int {
	return max(int(math.Round(c.ToUnit(mm))), 1)
}

// DPI reports the converter density in dots per inch.
func (c Converter) DPI() float64 {
	return c.PerMM * MMPerInch
}
