package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/units"
	"golang.org/x/image/font"
)

// ContentTypePNG is the MIME type of PNG output.
const ContentTypePNG = "image/png"

// pageGapPx separates stacked pages in the preview.
const pageGapPx = 16

var (
	paperColor = color.White
	deskColor  = color.NRGBA{R: 0x6B, G: 0x6B, B: 0x6B, A: 0xFF}
	guideColor = color.NRGBA{R: 0xA0, G: 0xA0, B: 0xA0, A: 0xFF}
)

// PNG draws a raster preview. Pages are rendered separately and stacked
// top to bottom when the surface is closed.
type PNG struct {
	geom  layout.PageGeometry
	conv  units.Converter
	pages []*gg.Context

	scaled map[string]image.Image
	faces  map[render.Font]font.Face
	err    error
}

// NewPNG returns a preview surface at the resolution of conv. A zero
// converter means [units.Screen].
func NewPNG(g layout.PageGeometry, conv units.Converter) (*PNG, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if conv.PerMM <= 0 {
		conv = units.Screen
	}
	return &PNG{
		geom:   g,
		conv:   conv,
		scaled: make(map[string]image.Image),
		faces:  make(map[render.Font]font.Face),
	}, nil
}

func (p *PNG) current() *gg.Context {
	if len(p.pages) == 0 {
		p.AddPage()
	}
	return p.pages[len(p.pages)-1]
}

func (p *PNG) px(mm float64) float64 { return p.conv.ToUnit(mm) }

// AddPage implements render.Surface.
func (p *PNG) AddPage() {
	dc := gg.NewContext(p.conv.Pixels(p.geom.WidthMM), p.conv.Pixels(p.geom.HeightMM))
	dc.SetColor(paperColor)
	dc.Clear()
	p.pages = append(p.pages, dc)
}

// DrawGuide implements render.Surface.
func (p *PNG) DrawGuide(b layout.Box) {
	dc := p.current()
	dc.Push()
	defer dc.Pop()
	dc.SetColor(guideColor)
	dc.SetLineWidth(1)
	dc.SetDash(4, 4)
	dc.DrawRectangle(p.px(b.X), p.px(b.Y), p.px(b.W), p.px(b.H))
	dc.Stroke()
}

// DrawImage implements render.Surface. Each key is resampled once.
func (p *PNG) DrawImage(key string, a compose.Asset, b layout.Box) {
	img, ok := p.scaled[key]
	if !ok {
		img = imaging.Resize(a.Image, p.conv.Pixels(b.W), p.conv.Pixels(b.H), imaging.Linear)
		p.scaled[key] = img
	}
	p.current().DrawImage(img, int(p.px(b.X)+0.5), int(p.px(b.Y)+0.5))
}

// DrawText implements render.Surface.
func (p *PNG) DrawText(run render.TextRun) {
	face := p.face(run.Font)
	if face == nil {
		return
	}
	dc := p.current()
	dc.SetFontFace(face)
	dc.SetColor(color.Black)
	dc.DrawString(run.Text, p.px(run.X), p.px(run.Y))
}

// TextWidth implements render.Surface.
func (p *PNG) TextWidth(run render.TextRun) float64 {
	face := p.face(run.Font)
	if face == nil {
		return 0
	}
	return p.conv.ToMM(float64(font.MeasureString(face, run.Text)) / 64)
}

func (p *PNG) face(f render.Font) font.Face {
	if face, ok := p.faces[f]; ok {
		return face
	}
	face, err := newFace(f, p.conv.DPI())
	if err != nil {
		if p.err == nil {
			p.err = errors.Wrap(errors.ErrCodeRendererInit, err, "load preview font")
		}
		return nil
	}
	p.faces[f] = face
	return face
}

// Close implements render.Surface.
func (p *PNG) Close() ([]byte, error) {
	defer func() {
		for _, f := range p.faces {
			f.Close()
		}
	}()
	if p.err != nil {
		return nil, p.err
	}
	if len(p.pages) == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "preview has no pages")
	}

	w := p.pages[0].Width()
	h := p.pages[0].Height()
	n := len(p.pages)
	sheet := gg.NewContext(w+2*pageGapPx, n*h+(n+1)*pageGapPx)
	sheet.SetColor(deskColor)
	sheet.Clear()
	for i, page := range p.pages {
		sheet.DrawImage(page.Image(), pageGapPx, pageGapPx+i*(h+pageGapPx))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, sheet.Image()); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode png")
	}
	return buf.Bytes(), nil
}

// ContentType implements render.Surface.
func (p *PNG) ContentType() string { return ContentTypePNG }
