package sink

import (
	"encoding/json"

	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/units"
)

// ContentTypeJSON is the MIME type of JSON output.
const ContentTypeJSON = "application/json"

type jsonBox struct {
	XMM float64 `json:"x_mm"`
	YMM float64 `json:"y_mm"`
	WMM float64 `json:"w_mm"`
	HMM float64 `json:"h_mm"`
	XPt float64 `json:"x_pt"`
	YPt float64 `json:"y_pt"`
	WPt float64 `json:"w_pt"`
	HPt float64 `json:"h_pt"`
}

func toJSONBox(b layout.Box) jsonBox {
	pt := units.Points.ToUnit
	return jsonBox{
		XMM: b.X, YMM: b.Y, WMM: b.W, HMM: b.H,
		XPt: round2(pt(b.X)), YPt: round2(pt(b.Y)), WPt: round2(pt(b.W)), HPt: round2(pt(b.H)),
	}
}

func round2(v float64) float64 {
	return float64(int64(v*100+0.5)) / 100
}

type jsonPage struct {
	Index  int         `json:"index"`
	Guides []jsonBox   `json:"guides"`
	Images []jsonImage `json:"images"`
	Texts  []jsonText  `json:"texts,omitempty"`
}

type jsonImage struct {
	Key         string                `json:"key"`
	Component   string                `json:"component"`
	Box         jsonBox               `json:"box"`
	Placeholder bool                  `json:"placeholder,omitempty"`
	Hole        *compose.HoleGeometry `json:"hole_px,omitempty"`
}

type jsonText struct {
	Text   string  `json:"text"`
	Bold   bool    `json:"bold,omitempty"`
	SizePt float64 `json:"size_pt"`
	XMM    float64 `json:"x_mm"`
	YMM    float64 `json:"y_mm"`
}

type jsonDocument struct {
	Page  layout.PageGeometry `json:"page"`
	Pages []jsonPage          `json:"pages"`
}

// JSON records draw calls and serializes them on Close. Text is measured
// with an average Helvetica advance of half the font size.
type JSON struct {
	doc jsonDocument
}

// NewJSON returns a draw-log surface.
func NewJSON(g layout.PageGeometry) (*JSON, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return &JSON{doc: jsonDocument{Page: g}}, nil
}

func (j *JSON) current() *jsonPage {
	if len(j.doc.Pages) == 0 {
		j.AddPage()
	}
	return &j.doc.Pages[len(j.doc.Pages)-1]
}

// AddPage implements render.Surface.
func (j *JSON) AddPage() {
	j.doc.Pages = append(j.doc.Pages, jsonPage{
		Index:  len(j.doc.Pages),
		Guides: []jsonBox{},
		Images: []jsonImage{},
	})
}

// DrawGuide implements render.Surface.
func (j *JSON) DrawGuide(b layout.Box) {
	p := j.current()
	p.Guides = append(p.Guides, toJSONBox(b))
}

// DrawImage implements render.Surface.
func (j *JSON) DrawImage(key string, a compose.Asset, b layout.Box) {
	p := j.current()
	p.Images = append(p.Images, jsonImage{
		Key:         key,
		Component:   string(a.Component),
		Box:         toJSONBox(b),
		Placeholder: a.Placeholder,
		Hole:        a.Hole,
	})
}

// DrawText implements render.Surface.
func (j *JSON) DrawText(run render.TextRun) {
	p := j.current()
	p.Texts = append(p.Texts, jsonText{
		Text:   run.Text,
		Bold:   run.Font.Bold,
		SizePt: run.Font.SizePt,
		XMM:    run.X,
		YMM:    run.Y,
	})
}

// TextWidth implements render.Surface.
func (j *JSON) TextWidth(run render.TextRun) float64 {
	return units.Points.ToMM(float64(len([]rune(run.Text))) * run.Font.SizePt * 0.5)
}

// Close implements render.Surface.
func (j *JSON) Close() ([]byte, error) {
	return json.MarshalIndent(j.doc, "", "  ")
}

// ContentType implements render.Surface.
func (j *JSON) ContentType() string { return ContentTypeJSON }

type jsonPlacement struct {
	Page      int     `json:"page"`
	Copy      int     `json:"copy"`
	Component string  `json:"component"`
	Slot      string  `json:"slot"`
	Shape     string  `json:"shape"`
	Group     string  `json:"group"`
	Box       jsonBox `json:"box"`
}

type jsonPlan struct {
	Page       layout.PageGeometry   `json:"page"`
	CopyBox    jsonBox               `json:"copy_box"`
	Pages      [][]layout.CopyOrigin `json:"pages"`
	Guides     []jsonBox             `json:"guides"`
	Placements []jsonPlacement       `json:"placements"`
	TextBox    *jsonBox              `json:"text_box,omitempty"`
}

// RenderJSON exports a plan as pretty-printed JSON, with every box in both
// millimeters and points. It does not draw or need assets.
func RenderJSON(plan render.Plan) ([]byte, error) {
	out := jsonPlan{
		Page:       plan.Geometry,
		CopyBox:    toJSONBox(plan.CopyBox),
		Pages:      plan.Pages,
		Guides:     make([]jsonBox, 0, len(plan.Guides)),
		Placements: make([]jsonPlacement, 0, len(plan.Placements)),
	}
	for _, g := range plan.Guides {
		out.Guides = append(out.Guides, toJSONBox(g.Box))
	}
	for _, p := range plan.Placements {
		out.Placements = append(out.Placements, jsonPlacement{
			Page:      p.Page,
			Copy:      p.Copy,
			Component: string(p.Component),
			Slot:      string(p.Slot),
			Shape:     string(p.Shape),
			Group:     p.Group.String(),
			Box:       toJSONBox(p.Box),
		})
	}
	if plan.TextBox != nil {
		b := toJSONBox(*plan.TextBox)
		out.TextBox = &b
	}
	return json.MarshalIndent(out, "", "  ")
}
