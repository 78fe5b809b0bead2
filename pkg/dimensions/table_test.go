package dimensions

import (
	"testing"

	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/template"
)

func TestDefaultCoversEverySlot(t *testing.T) {
	tbl := Default()
	if tbl.Len() != len(template.Slots) {
		t.Fatalf("Len() = %d, want %d", tbl.Len(), len(template.Slots))
	}
	for _, slot := range template.Slots {
		if _, err := tbl.ForSlot(slot); err != nil {
			t.Errorf("ForSlot(%s): %v", slot, err)
		}
	}
}

func TestDefaultOffsets(t *testing.T) {
	tests := []struct {
		id   ComponentID
		x, y float64
		w, h float64
	}{
		{FrontOutside, 0, 0, 40, 40},
		{FrontInside, 40, 0, 40, 40},
		{Disc, 84, 0, 40, 40},
		{BackOutsideMain, 0, 44, 41, 36},
		{BackOutsideSide, 41, 44, 3.5, 36},
		{BackInsideSide, 48.5, 44, 3.5, 36},
		{BackInsideMain, 52, 44, 41, 36},
	}

	tbl := Default()
	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			c, err := tbl.Get(tt.id)
			if err != nil {
				t.Fatal(err)
			}
			w, h := c.Size()
			if c.OffsetXMM != tt.x || c.OffsetYMM != tt.y || w != tt.w || h != tt.h {
				t.Errorf("%s = (%v,%v %vx%v), want (%v,%v %vx%v)",
					tt.id, c.OffsetXMM, c.OffsetYMM, w, h, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestDefaultComponentsDoNotOverlap(t *testing.T) {
	cs := Default().Components()
	for i := range cs {
		for j := i + 1; j < len(cs); j++ {
			a, b := cs[i], cs[j]
			aw, ah := a.Size()
			bw, bh := b.Size()
			if a.OffsetXMM < b.OffsetXMM+bw && b.OffsetXMM < a.OffsetXMM+aw &&
				a.OffsetYMM < b.OffsetYMM+bh && b.OffsetYMM < a.OffsetYMM+ah {
				t.Errorf("%s overlaps %s", a.ID, b.ID)
			}
		}
	}
}

func TestGetUnknown(t *testing.T) {
	_, err := Default().Get("spine")
	if !errors.Is(err, errors.ErrCodeUnknownComponent) {
		t.Errorf("Get(spine) error = %v, want UNKNOWN_COMPONENT", err)
	}
}

func TestComponentsReturnsCopy(t *testing.T) {
	tbl := Default()
	cs := tbl.Components()
	cs[0].WidthMM = 999

	c, _ := tbl.Get(FrontOutside)
	if c.WidthMM == 999 {
		t.Error("mutating Components() result changed the table")
	}
}

func TestGroups(t *testing.T) {
	tbl := Default()
	if n := len(tbl.Group(GroupFront)); n != 2 {
		t.Errorf("front group = %d components, want 2", n)
	}
	if n := len(tbl.Group(GroupDisc)); n != 1 {
		t.Errorf("disc group = %d components, want 1", n)
	}
	if n := len(tbl.Group(GroupBack)); n != 4 {
		t.Errorf("back group = %d components, want 4", n)
	}
}

func TestNewRejectsInvalid(t *testing.T) {
	tests := []struct {
		name  string
		specs []ComponentSpec
	}{
		{"rect without height", []ComponentSpec{{ID: "a", Slot: "a", Shape: ShapeRect, WidthMM: 3}}},
		{"rect with diameter", []ComponentSpec{{ID: "a", Slot: "a", Shape: ShapeRect, WidthMM: 3, HeightMM: 3, DiameterMM: 2}}},
		{"disc hole too big", []ComponentSpec{{ID: "d", Slot: "d", Shape: ShapeDisc, DiameterMM: 6, HoleDiameterMM: 6}}},
		{"disc with width", []ComponentSpec{{ID: "d", Slot: "d", Shape: ShapeDisc, DiameterMM: 6, HoleDiameterMM: 1, WidthMM: 6}}},
		{"unknown shape", []ComponentSpec{{ID: "x", Slot: "x", Shape: "star"}}},
		{"negative offset", []ComponentSpec{{ID: "a", Slot: "a", Shape: ShapeRect, WidthMM: 1, HeightMM: 1, OffsetXMM: -1}}},
		{
			"duplicate id",
			[]ComponentSpec{
				{ID: "a", Slot: "a", Shape: ShapeRect, WidthMM: 1, HeightMM: 1},
				{ID: "a", Slot: "b", Shape: ShapeRect, WidthMM: 1, HeightMM: 1},
			},
		},
		{
			"duplicate slot",
			[]ComponentSpec{
				{ID: "a", Slot: "a", Shape: ShapeRect, WidthMM: 1, HeightMM: 1},
				{ID: "b", Slot: "a", Shape: ShapeRect, WidthMM: 1, HeightMM: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.specs...); !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Errorf("New() error = %v, want INVALID_CONFIG", err)
			}
		})
	}
}
