package render

import (
	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/layout"
)

// Surface is a paginated drawing target in page millimeters.
//
// Draw methods do not return errors. A surface records the first failure
// and reports it from Close, which also serializes the document. A
// surface is used by one goroutine.
type Surface interface {
	// AddPage starts a new page. Draw calls before the first AddPage are
	// invalid.
	AddPage()

	// DrawGuide strokes a dashed cut guide.
	DrawGuide(b layout.Box)

	// DrawImage draws an asset scaled to b. Surfaces that embed images
	// store each key once; later calls with the same key reuse it.
	DrawImage(key string, a compose.Asset, b layout.Box)

	// DrawText draws a single line of text.
	DrawText(run TextRun)

	// TextWidth returns the width of run.Text in millimeters.
	TextWidth(run TextRun) float64

	// Close finishes the document and returns its bytes.
	Close() ([]byte, error)

	// ContentType is the MIME type of the bytes returned by Close.
	ContentType() string
}

// Font selects one of the built-in faces.
type Font struct {
	Bold   bool    `json:"bold,omitempty"`
	SizePt float64 `json:"size_pt"`
}

// TextRun is one line of text. X, Y is the left end of the baseline.
type TextRun struct {
	Text string  `json:"text"`
	Font Font    `json:"font"`
	X    float64 `json:"x_mm"`
	Y    float64 `json:"y_mm"`
}
