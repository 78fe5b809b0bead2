package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"time"

	"codeberg.org/go-pdf/fpdf"
	"github.com/disintegration/imaging"
	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/render"
)

// ContentTypePDF is the MIME type of PDF output.
const ContentTypePDF = "application/pdf"

// DefaultJPEGQuality is used to embed opaque assets.
const DefaultJPEGQuality = 92

// PDFOption configures [NewPDF].
type PDFOption func(*PDF)

// WithCreationDate fixes the document creation and modification dates.
func WithCreationDate(t time.Time) PDFOption {
	return func(p *PDF) { p.created = t }
}

// WithJPEGQuality sets the quality (1-100) used for opaque assets.
func WithJPEGQuality(q int) PDFOption {
	return func(p *PDF) {
		if q >= 1 && q <= 100 {
			p.quality = q
		}
	}
}

// WithCompression toggles stream compression (on by default).
func WithCompression(on bool) PDFOption {
	return func(p *PDF) { p.compress = on }
}

// WithTitle sets the document title metadata.
func WithTitle(title string) PDFOption {
	return func(p *PDF) { p.title = title }
}

// PDF draws onto an fpdf document.
type PDF struct {
	doc *fpdf.Fpdf
	tr  func(string) string

	created  time.Time
	quality  int
	compress bool
	title    string

	images map[string]embedded
	widths map[int]bool
	err    error
}

// embedded is a registered image. fpdf orders image objects by pixel width
// only, so every registered image gets a distinct width; pad is the number
// of transparent columns added on the right to make it so.
type embedded struct {
	opts  fpdf.ImageOptions
	width int
	pad   int
}

// NewPDF returns a PDF surface for sheets of geometry g.
func NewPDF(g layout.PageGeometry, opts ...PDFOption) (*PDF, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	p := &PDF{
		quality:  DefaultJPEGQuality,
		compress: true,
		images:   make(map[string]embedded),
		widths:   make(map[int]bool),
	}
	for _, opt := range opts {
		opt(p)
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: g.WidthMM, Ht: g.HeightMM},
	})
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetCatalogSort(true)
	doc.SetCompression(p.compress)
	doc.SetCreationDate(p.created)
	doc.SetModificationDate(p.created)
	doc.SetCreator("minicase", false)
	if p.title != "" {
		doc.SetTitle(p.title, true)
	}
	if doc.Err() {
		return nil, errors.Wrap(errors.ErrCodeRendererInit, doc.Error(), "create pdf document")
	}

	p.doc = doc
	p.tr = doc.UnicodeTranslatorFromDescriptor("")
	return p, nil
}

// AddPage implements render.Surface.
func (p *PDF) AddPage() {
	p.doc.AddPage()
}

// DrawGuide implements render.Surface.
func (p *PDF) DrawGuide(b layout.Box) {
	p.doc.SetDrawColor(160, 160, 160)
	p.doc.SetLineWidth(0.1)
	p.doc.SetDashPattern([]float64{1, 1}, 0)
	p.doc.Rect(b.X, b.Y, b.W, b.H, "D")
	p.doc.SetDashPattern([]float64{}, 0)
}

// DrawImage implements render.Surface. The asset is encoded and embedded the
// first time key is seen.
func (p *PDF) DrawImage(key string, a compose.Asset, b layout.Box) {
	if p.err != nil {
		return
	}
	e, ok := p.images[key]
	if !ok {
		if e, ok = p.embed(key, a); !ok {
			return
		}
	}
	w := b.W * float64(e.width+e.pad) / float64(e.width)
	p.doc.ImageOptions(key, b.X, b.Y, w, b.H, false, e.opts, 0, "")
}

func (p *PDF) embed(key string, a compose.Asset) (embedded, bool) {
	img := a.Image
	e := embedded{width: img.Bounds().Dx()}
	for p.widths[e.width+e.pad] {
		e.pad++
	}
	if e.pad > 0 {
		padded := imaging.New(e.width+e.pad, img.Bounds().Dy(), color.Transparent)
		img = imaging.Paste(padded, img, image.Pt(0, 0))
	}

	var buf bytes.Buffer
	var err error
	if a.Opaque() && e.pad == 0 {
		e.opts = fpdf.ImageOptions{ImageType: "JPG"}
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.quality})
	} else {
		e.opts = fpdf.ImageOptions{ImageType: "PNG"}
		err = png.Encode(&buf, img)
	}
	if err != nil {
		p.err = errors.Wrap(errors.ErrCodeInternal, err, "encode %s", key)
		return e, false
	}
	p.doc.RegisterImageOptionsReader(key, e.opts, &buf)
	if p.doc.Err() {
		p.err = errors.Wrap(errors.ErrCodeInternal, p.doc.Error(), "embed %s", key)
		return e, false
	}
	p.widths[e.width+e.pad] = true
	p.images[key] = e
	return e, true
}

// DrawText implements render.Surface.
func (p *PDF) DrawText(run render.TextRun) {
	p.setFont(run.Font)
	p.doc.SetTextColor(0, 0, 0)
	p.doc.Text(run.X, run.Y, p.tr(run.Text))
}

// TextWidth implements render.Surface.
func (p *PDF) TextWidth(run render.TextRun) float64 {
	p.setFont(run.Font)
	return p.doc.GetStringWidth(p.tr(run.Text))
}

func (p *PDF) setFont(f render.Font) {
	style := ""
	if f.Bold {
		style = "B"
	}
	p.doc.SetFont("Helvetica", style, f.SizePt)
}

// Close implements render.Surface.
func (p *PDF) Close() ([]byte, error) {
	if p.err != nil {
		return nil, p.err
	}
	if p.doc.PageNo() == 0 {
		return nil, errors.New(errors.ErrCodeInternal, "pdf has no pages")
	}
	var buf bytes.Buffer
	if err := p.doc.Output(&buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "write pdf")
	}
	return buf.Bytes(), nil
}

// ContentType implements render.Surface.
func (p *PDF) ContentType() string { return ContentTypePDF }
