package sink

import (
	"sync"

	"github.com/matzehuels/minicase/pkg/render"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

type parsedFont struct {
	once sync.Once
	ttf  []byte
	font *opentype.Font
	err  error
}

func (p *parsedFont) get() (*opentype.Font, error) {
	p.once.Do(func() { p.font, p.err = opentype.Parse(p.ttf) })
	return p.font, p.err
}

var (
	regular = &parsedFont{ttf: goregular.TTF}
	bold    = &parsedFont{ttf: gobold.TTF}
)

func newFace(f render.Font, dpi float64) (font.Face, error) {
	src := regular
	if f.Bold {
		src = bold
	}
	parsed, err := src.get()
	if err != nil {
		return nil, err
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    f.SizePt,
		DPI:     dpi,
		Hinting: font.HintingNone,
	})
}
