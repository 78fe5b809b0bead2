package render

import (
	"context"
	"fmt"

	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/progress"
	"github.com/matzehuels/minicase/pkg/template"
)

// Assets maps each slot to its composited asset.
type Assets map[template.SlotID]compose.Asset

var groupStages = map[dimensions.Group]progress.Stage{
	dimensions.GroupFront: progress.DrawingFrontCovers,
	dimensions.GroupDisc:  progress.DrawingDisc,
	dimensions.GroupBack:  progress.DrawingBackCovers,
}

// Progress window of the drawing stages.
const (
	drawStart = 0.5
	drawEnd   = 0.9
)

// Draw issues every draw call of plan against s. It does not close s.
//
// Progress is reported as CREATING_DOCUMENT once, then one stage per group
// per page with detail "page i/n". The context is checked before every
// group, and a cancelled Draw leaves s unusable.
func Draw(ctx context.Context, s Surface, plan Plan, assets Assets, text template.TextFields, rep *progress.Reporter) error {
	for _, p := range plan.Placements {
		if _, ok := assets[p.Slot]; !ok {
			return errors.New(errors.ErrCodeInternal, "no asset for slot %s", p.Slot)
		}
	}

	rep.Stage(progress.CreatingDocument, fmt.Sprintf("%d pages", plan.PageCount()))

	n := plan.PageCount()
	steps := float64(n * len(groups))
	step := 0
	for page := range n {
		s.AddPage()
		for _, g := range plan.PageGuides(page) {
			s.DrawGuide(g.Box)
		}

		for _, grp := range groups {
			if err := ctx.Err(); err != nil {
				return err
			}
			rep.Report(drawStart+(drawEnd-drawStart)*float64(step)/steps, groupStages[grp], fmt.Sprintf("page %d/%d", page+1, n))
			step++

			for _, p := range plan.Select(page, grp) {
				s.DrawImage(string(p.Slot), assets[p.Slot], p.Box)
			}
			if page == 0 && grp == dimensions.GroupFront && plan.TextBox != nil && !text.Empty() {
				for _, run := range LayoutText(s, *plan.TextBox, text) {
					s.DrawText(run)
				}
			}
		}
	}
	return nil
}
