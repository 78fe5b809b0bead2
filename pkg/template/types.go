package template

import (
	"fmt"
	"slices"

	"github.com/matzehuels/minicase/pkg/errors"
)

// SlotID names one piece of artwork.
type SlotID string

// Fixed slot identifiers, in table order.
const (
	FrontCoverOutside    SlotID = "frontCoverOutside"
	FrontCoverInside     SlotID = "frontCoverInside"
	CDDisc               SlotID = "cdDisc"
	BackCoverOutsideMain SlotID = "backCoverOutsideMain"
	BackCoverOutsideSide SlotID = "backCoverOutsideSide"
	BackCoverInsideSide  SlotID = "backCoverInsideSide"
	BackCoverInsideMain  SlotID = "backCoverInsideMain"
)

// Slots lists every slot identifier in table order.
var Slots = []SlotID{
	FrontCoverOutside,
	FrontCoverInside,
	CDDisc,
	BackCoverOutsideMain,
	BackCoverOutsideSide,
	BackCoverInsideSide,
	BackCoverInsideMain,
}

// Valid reports whether s is one of the fixed slot identifiers.
func (s SlotID) Valid() bool {
	return slices.Contains(Slots, s)
}

// SlotImage is the artwork for one slot.
//
// Bytes wins over Ref when both are set. Neither set means "not provided".
type SlotImage struct {
	Slot  SlotID `json:"slot" toml:"-"`
	Bytes []byte `json:"-" toml:"-"`
	Ref   string `json:"ref,omitempty" toml:"ref"`
}

// Provided reports whether the slot carries bytes or a reference.
func (s SlotImage) Provided() bool {
	return s.Bytes != nil || s.Ref != ""
}

// TextFields are the free-text labels printed on the first front cover.
type TextFields struct {
	AlbumTitle     string `json:"album_title,omitempty" toml:"album_title"`
	ArtistName     string `json:"artist_name,omitempty" toml:"artist_name"`
	DesignerInfo   string `json:"designer_info,omitempty" toml:"designer_info"`
	AdditionalText string `json:"additional_text,omitempty" toml:"additional_text"`
}

// Empty reports whether no text field is set.
func (t TextFields) Empty() bool {
	return t.AlbumTitle == "" && t.ArtistName == "" && t.DesignerInfo == "" && t.AdditionalText == ""
}

// Request is one render invocation.
type Request struct {
	Images        map[SlotID]SlotImage `json:"images"`
	Text          TextFields           `json:"text"`
	CopiesPerPage int                  `json:"copies_per_page"`

	// TotalCopies is the number of template copies across all pages.
	// Zero means one sheet (TotalCopies == CopiesPerPage).
	TotalCopies int `json:"total_copies,omitempty"`
}

// Image returns the artwork for slot, with Slot always populated.
func (r Request) Image(slot SlotID) SlotImage {
	img := r.Images[slot]
	img.Slot = slot
	return img
}

// Copies returns the effective total number of copies.
func (r Request) Copies() int {
	if r.TotalCopies <= 0 {
		return r.CopiesPerPage
	}
	return r.TotalCopies
}

// Validate checks the request shape. maxPerPage caps CopiesPerPage
// (values outside [1,3] mean 3).
//
// Validation never touches image bytes, so it is safe to run before any
// image work starts.
func (r Request) Validate(maxPerPage int) error {
	if err := errors.ValidateCopiesPerPage(r.CopiesPerPage, maxPerPage); err != nil {
		return err
	}
	if r.TotalCopies < 0 {
		return errors.New(errors.ErrCodeInvalidCopies, "total copies cannot be negative, got %d", r.TotalCopies)
	}
	for slot := range r.Images {
		if !slot.Valid() {
			return errors.New(errors.ErrCodeInvalidSlot, "unknown slot %q", string(slot))
		}
	}
	return nil
}

// String returns a short description for logs.
func (r Request) String() string {
	provided := 0
	for _, s := range Slots {
		if r.Image(s).Provided() {
			provided++
		}
	}
	return fmt.Sprintf("%d/%d slots, %d per page, %d copies", provided, len(Slots), r.CopiesPerPage, r.Copies())
}
