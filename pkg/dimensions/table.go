// Package dimensions holds the physical component registry of the miniature
// CD package.
//
// A [Table] lists every printable component (covers, back panels, disc) with
// its size and its offset from the copy origin, all in millimeters. The
// table is immutable once built; [Default] returns the process-wide table
// used by the engine. Other packages never redefine component sizes or
// offsets.
package dimensions

import (
	"fmt"

	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/template"
)

// ComponentID names a physical component.
type ComponentID string

// Registered component identifiers.
const (
	FrontOutside    ComponentID = "front-outside"
	FrontInside     ComponentID = "front-inside"
	Disc            ComponentID = "disc"
	BackOutsideMain ComponentID = "back-outside-main"
	BackOutsideSide ComponentID = "back-outside-side"
	BackInsideSide  ComponentID = "back-inside-side"
	BackInsideMain  ComponentID = "back-inside-main"
)

// Shape is the outline of a component.
type Shape string

const (
	ShapeRect Shape = "rect"
	ShapeDisc Shape = "disc"
)

// Group is the row a component belongs to. Groups are drawn in the order
// front, disc, back.
type Group int

const (
	GroupFront Group = iota
	GroupDisc
	GroupBack
)

func (g Group) String() string {
	switch g {
	case GroupFront:
		return "front"
	case GroupDisc:
		return "disc"
	case GroupBack:
		return "back"
	default:
		return fmt.Sprintf("group(%d)", int(g))
	}
}

// ComponentSpec describes one component. Rect components set WidthMM and
// HeightMM; disc components set DiameterMM and HoleDiameterMM.
type ComponentSpec struct {
	ID    ComponentID     `json:"id"`
	Slot  template.SlotID `json:"slot"`
	Shape Shape           `json:"shape"`
	Group Group           `json:"group"`

	WidthMM        float64 `json:"width_mm,omitempty"`
	HeightMM       float64 `json:"height_mm,omitempty"`
	DiameterMM     float64 `json:"diameter_mm,omitempty"`
	HoleDiameterMM float64 `json:"hole_diameter_mm,omitempty"`

	// Offset of the top-left corner of the bounding box from the copy origin.
	OffsetXMM float64 `json:"offset_x_mm"`
	OffsetYMM float64 `json:"offset_y_mm"`
}

// Size returns the bounding box of the component in millimeters.
func (c ComponentSpec) Size() (w, h float64) {
	if c.Shape == ShapeDisc {
		return c.DiameterMM, c.DiameterMM
	}
	return c.WidthMM, c.HeightMM
}

// Validate checks the shape invariants.
func (c ComponentSpec) Validate() error {
	if c.ID == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "component without id")
	}
	if c.OffsetXMM < 0 || c.OffsetYMM < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "%s: negative offset", c.ID)
	}
	switch c.Shape {
	case ShapeRect:
		if c.WidthMM <= 0 || c.HeightMM <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: rect needs positive width and height", c.ID)
		}
		if c.DiameterMM != 0 || c.HoleDiameterMM != 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: rect cannot have a diameter", c.ID)
		}
	case ShapeDisc:
		if c.DiameterMM <= 0 || c.HoleDiameterMM <= 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: disc needs positive diameter and hole", c.ID)
		}
		if c.HoleDiameterMM >= c.DiameterMM {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: hole must be smaller than the disc", c.ID)
		}
		if c.WidthMM != 0 || c.HeightMM != 0 {
			return errors.New(errors.ErrCodeInvalidConfig, "%s: disc cannot have width or height", c.ID)
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "%s: unknown shape %q", c.ID, c.Shape)
	}
	return nil
}

// Table is an immutable, ordered component registry.
type Table struct {
	specs []ComponentSpec
	byID  map[ComponentID]int
}

// New builds a table from specs, in the given order. Ids and slots must be
// unique and every spec must satisfy its shape invariants.
func New(specs ...ComponentSpec) (Table, error) {
	t := Table{
		specs: make([]ComponentSpec, len(specs)),
		byID:  make(map[ComponentID]int, len(specs)),
	}
	slots := make(map[template.SlotID]bool, len(specs))
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return Table{}, err
		}
		if _, dup := t.byID[s.ID]; dup {
			return Table{}, errors.New(errors.ErrCodeInvalidConfig, "duplicate component %s", s.ID)
		}
		if slots[s.Slot] {
			return Table{}, errors.New(errors.ErrCodeInvalidConfig, "duplicate slot %s", s.Slot)
		}
		slots[s.Slot] = true
		t.specs[i] = s
		t.byID[s.ID] = i
	}
	return t, nil
}

// Get returns the spec registered under id.
func (t Table) Get(id ComponentID) (ComponentSpec, error) {
	i, ok := t.byID[id]
	if !ok {
		return ComponentSpec{}, errors.New(errors.ErrCodeUnknownComponent, "unknown component %q", string(id))
	}
	return t.specs[i], nil
}

// ForSlot returns the component that renders slot.
func (t Table) ForSlot(slot template.SlotID) (ComponentSpec, error) {
	for _, s := range t.specs {
		if s.Slot == slot {
			return s, nil
		}
	}
	return ComponentSpec{}, errors.New(errors.ErrCodeUnknownComponent, "no component for slot %q", string(slot))
}

// Components returns a copy of all specs in table order.
func (t Table) Components() []ComponentSpec {
	out := make([]ComponentSpec, len(t.specs))
	copy(out, t.specs)
	return out
}

// Group returns the specs of one group in table order.
func (t Table) Group(g Group) []ComponentSpec {
	var out []ComponentSpec
	for _, s := range t.specs {
		if s.Group == g {
			out = append(out, s)
		}
	}
	return out
}

// Len returns the number of registered components.
func (t Table) Len() int { return len(t.specs) }
