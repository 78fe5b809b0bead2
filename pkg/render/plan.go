package render

import (
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/template"
)

// Placement is one component of one copy on one page, in page millimeters.
type Placement struct {
	Page      int                    `json:"page"`
	Copy      int                    `json:"copy"`
	Component dimensions.ComponentID `json:"component"`
	Slot      template.SlotID        `json:"slot"`
	Shape     dimensions.Shape       `json:"shape"`
	Group     dimensions.Group       `json:"group"`
	Box       layout.Box             `json:"box"`
}

// Guide is the cut guide drawn around one copy.
type Guide struct {
	Page int        `json:"page"`
	Copy int        `json:"copy"`
	Box  layout.Box `json:"box"`
}

// Plan is the complete, ordered set of draws for a document.
type Plan struct {
	Geometry   layout.PageGeometry   `json:"geometry"`
	CopyBox    layout.Box            `json:"copy_box"`
	Pages      [][]layout.CopyOrigin `json:"pages"`
	Placements []Placement           `json:"placements"`
	Guides     []Guide               `json:"guides"`

	// TextBox is the first copy's outside front cover. Nil when the
	// table has no such component or the plan has no copies.
	TextBox *layout.Box `json:"text_box,omitempty"`
}

var groups = []dimensions.Group{dimensions.GroupFront, dimensions.GroupDisc, dimensions.GroupBack}

// BuildPlan expands per-page copy origins into placements. pages[i] holds
// the origins of page i. Copy numbers run across pages, so the first copy
// of page 2 follows the last copy of page 1.
func BuildPlan(g layout.PageGeometry, t dimensions.Table, pages [][]layout.CopyOrigin) Plan {
	copyBox := layout.CopyBox(t)
	plan := Plan{
		Geometry: g,
		CopyBox:  copyBox,
		Pages:    pages,
	}

	first := 0
	for page, origins := range pages {
		for _, o := range origins {
			plan.Guides = append(plan.Guides, Guide{
				Page: page,
				Copy: first + o.Index,
				Box:  o.Box(copyBox),
			})
		}
		for _, grp := range groups {
			specs := t.Group(grp)
			for _, o := range origins {
				for _, c := range specs {
					w, h := c.Size()
					plan.Placements = append(plan.Placements, Placement{
						Page:      page,
						Copy:      first + o.Index,
						Component: c.ID,
						Slot:      c.Slot,
						Shape:     c.Shape,
						Group:     grp,
						Box:       layout.Box{X: o.XMM + c.OffsetXMM, Y: o.YMM + c.OffsetYMM, W: w, H: h},
					})
				}
			}
		}
		first += len(origins)
	}

	for _, p := range plan.Placements {
		if p.Copy == 0 && p.Component == dimensions.FrontOutside {
			box := p.Box
			plan.TextBox = &box
			break
		}
	}
	return plan
}

// PageCount returns the number of pages.
func (p Plan) PageCount() int { return len(p.Pages) }

// CopyCount returns the number of copies across all pages.
func (p Plan) CopyCount() int {
	n := 0
	for _, origins := range p.Pages {
		n += len(origins)
	}
	return n
}

// Select returns the placements of one group on one page, in draw order.
func (p Plan) Select(page int, g dimensions.Group) []Placement {
	var out []Placement
	for _, pl := range p.Placements {
		if pl.Page == page && pl.Group == g {
			out = append(out, pl)
		}
	}
	return out
}

// PageGuides returns the guides of one page.
func (p Plan) PageGuides(page int) []Guide {
	var out []Guide
	for _, g := range p.Guides {
		if g.Page == page {
			out = append(out, g)
		}
	}
	return out
}
