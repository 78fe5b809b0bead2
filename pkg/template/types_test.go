package template

import (
	"testing"

	"github.com/matzehuels/minicase/pkg/errors"
)

func TestSlotValid(t *testing.T) {
	for _, s := range Slots {
		if !s.Valid() {
			t.Errorf("%q should be valid", s)
		}
	}
	if SlotID("spine").Valid() {
		t.Error("unknown slot reported valid")
	}
}

func TestRequestValidate(t *testing.T) {
	tests := []struct {
		name     string
		req      Request
		max      int
		wantCode errors.Code
	}{
		{"one copy", Request{CopiesPerPage: 1}, 3, ""},
		{"three copies", Request{CopiesPerPage: 3}, 3, ""},
		{"five copies", Request{CopiesPerPage: 5}, 3, errors.ErrCodeInvalidCopies},
		{"zero copies", Request{CopiesPerPage: 0}, 3, errors.ErrCodeInvalidCopies},
		{"capped at two", Request{CopiesPerPage: 3}, 2, errors.ErrCodeInvalidCopies},
		{"negative total", Request{CopiesPerPage: 1, TotalCopies: -2}, 3, errors.ErrCodeInvalidCopies},
		{
			name:     "unknown slot",
			req:      Request{CopiesPerPage: 1, Images: map[SlotID]SlotImage{"spine": {Bytes: []byte{1}}}},
			max:      3,
			wantCode: errors.ErrCodeInvalidSlot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate(tt.max)
			if got := errors.GetCode(err); got != tt.wantCode {
				t.Errorf("Validate() code = %q, want %q (err %v)", got, tt.wantCode, err)
			}
		})
	}
}

func TestRequestImage(t *testing.T) {
	req := Request{Images: map[SlotID]SlotImage{CDDisc: {Ref: "disc.png"}}}

	disc := req.Image(CDDisc)
	if disc.Slot != CDDisc || disc.Ref != "disc.png" || !disc.Provided() {
		t.Errorf("Image(CDDisc) = %+v", disc)
	}

	front := req.Image(FrontCoverOutside)
	if front.Slot != FrontCoverOutside || front.Provided() {
		t.Errorf("Image(FrontCoverOutside) = %+v, want unprovided slot", front)
	}
}

func TestRequestCopies(t *testing.T) {
	if got := (Request{CopiesPerPage: 2}).Copies(); got != 2 {
		t.Errorf("Copies() = %d, want 2", got)
	}
	if got := (Request{CopiesPerPage: 2, TotalCopies: 7}).Copies(); got != 7 {
		t.Errorf("Copies() = %d, want 7", got)
	}
}

func TestTextFieldsEmpty(t *testing.T) {
	if !(TextFields{}).Empty() {
		t.Error("zero TextFields should be empty")
	}
	if (TextFields{DesignerInfo: "x"}).Empty() {
		t.Error("TextFields with designer should not be empty")
	}
}
