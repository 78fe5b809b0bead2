package dimensions

import "github.com/matzehuels/minicase/pkg/template"

// Default component geometry in millimeters.
//
// Front row: outside and inside covers share a fold line, the disc follows
// after a 4 mm gutter. Back row starts 4 mm below the front row. The inside
// back panel is the mirror image of the outside panel, so its side strip sits
// on the left (outside: main|side, inside: side|main).
const (
	coverMM      = 40.0
	discMM       = 40.0
	holeMM       = 6.0
	backMainWMM  = 41.0
	backSideWMM  = 3.5
	backHeightMM = 36.0
	gutterMM     = 4.0
)

var defaultSpecs = []ComponentSpec{
	{
		ID: FrontOutside, Slot: template.FrontCoverOutside, Shape: ShapeRect, Group: GroupFront,
		WidthMM: coverMM, HeightMM: coverMM,
	},
	{
		ID: FrontInside, Slot: template.FrontCoverInside, Shape: ShapeRect, Group: GroupFront,
		WidthMM: coverMM, HeightMM: coverMM,
		OffsetXMM: coverMM,
	},
	{
		ID: Disc, Slot: template.CDDisc, Shape: ShapeDisc, Group: GroupDisc,
		DiameterMM: discMM, HoleDiameterMM: holeMM,
		OffsetXMM: 2*coverMM + gutterMM,
	},
	{
		ID: BackOutsideMain, Slot: template.BackCoverOutsideMain, Shape: ShapeRect, Group: GroupBack,
		WidthMM: backMainWMM, HeightMM: backHeightMM,
		OffsetYMM: coverMM + gutterMM,
	},
	{
		ID: BackOutsideSide, Slot: template.BackCoverOutsideSide, Shape: ShapeRect, Group: GroupBack,
		WidthMM: backSideWMM, HeightMM: backHeightMM,
		OffsetXMM: backMainWMM, OffsetYMM: coverMM + gutterMM,
	},
	{
		ID: BackInsideSide, Slot: template.BackCoverInsideSide, Shape: ShapeRect, Group: GroupBack,
		WidthMM: backSideWMM, HeightMM: backHeightMM,
		OffsetXMM: backMainWMM + backSideWMM + gutterMM, OffsetYMM: coverMM + gutterMM,
	},
	{
		ID: BackInsideMain, Slot: template.BackCoverInsideMain, Shape: ShapeRect, Group: GroupBack,
		WidthMM: backMainWMM, HeightMM: backHeightMM,
		OffsetXMM: backMainWMM + 2*backSideWMM + gutterMM, OffsetYMM: coverMM + gutterMM,
	},
}

var defaultTable = mustNew(defaultSpecs...)

// Default returns the built-in component table.
func Default() Table {
	return defaultTable
}

func mustNew(specs ...ComponentSpec) Table {
	t, err := New(specs...)
	if err != nil {
		panic(err)
	}
	return t
}
