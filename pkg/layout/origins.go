package layout

import (
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/errors"
)

// CopyOrigin is the top-left corner of one template copy on the page.
type CopyOrigin struct {
	Index int     `json:"index"`
	XMM   float64 `json:"x_mm"`
	YMM   float64 `json:"y_mm"`
}

// Box returns the copy's bounding box for the given copy size.
func (o CopyOrigin) Box(size Box) Box {
	return Box{X: o.XMM, Y: o.YMM, W: size.W, H: size.H}
}

// CopyBox returns the bounding box of one copy relative to its origin.
//
// The height is the front row plus the row gap plus the back row, where the
// row gap is the distance between the bottom of the front row and the top of
// the back row. Both rows start at the origin's left edge, so the width is
// the wider of the two rows.
func CopyBox(t dimensions.Table) Box {
	var size Box
	for _, c := range t.Components() {
		w, h := c.Size()
		size.W = max(size.W, c.OffsetXMM+w)
		size.H = max(size.H, c.OffsetYMM+h)
	}
	return size
}

// ComputeCopyOrigins places copies (1..3) of the template on a page. Origins
// are ordered top to bottom.
func ComputeCopyOrigins(g PageGeometry, t dimensions.Table, copies int) ([]CopyOrigin, error) {
	if err := errors.ValidateCopiesPerPage(copies, errors.MaxCopiesPerPage); err != nil {
		return nil, err
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	if t.Len() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGeometry, "dimension table is empty")
	}

	area := Printable(g)
	copyBox := CopyBox(t)
	n := float64(copies)

	if copyBox.W > area.W+epsilon {
		return nil, errors.New(errors.ErrCodeLayoutOverflow,
			"copy is %g mm wide, printable width is %g mm", copyBox.W, area.W)
	}
	if n*copyBox.H > area.H+epsilon {
		return nil, errors.New(errors.ErrCodeLayoutOverflow,
			"%d copies need %g mm, printable height is %g mm", copies, n*copyBox.H, area.H)
	}

	x := round(area.X + (area.W-copyBox.W)/2)
	origins := make([]CopyOrigin, copies)

	if copies == 1 {
		origins[0] = CopyOrigin{Index: 0, XMM: x, YMM: round(area.Y + (area.H-copyBox.H)/2)}
		return origins, nil
	}

	gap := (area.H - n*copyBox.H) / (n + 1)
	for i := range origins {
		y := area.Y + gap + float64(i)*(copyBox.H+gap)
		origins[i] = CopyOrigin{Index: i, XMM: x, YMM: round(y)}
	}
	return origins, nil
}
