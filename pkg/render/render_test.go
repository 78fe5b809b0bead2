package render

import (
	"context"
	"fmt"
	"math"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/matzehuels/minicase/pkg/compose"
	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/progress"
	"github.com/matzehuels/minicase/pkg/template"
)

// fakeSurface records draw calls. Text is one millimeter per rune.
type fakeSurface struct {
	pages  int
	guides []layout.Box
	images []string
	boxes  []layout.Box
	texts  []TextRun
}

func (f *fakeSurface) AddPage() { f.pages++ }
func (f *fakeSurface) DrawGuide(b layout.Box) { f.guides = append(f.guides, b) }
func (f *fakeSurface) DrawText(run TextRun) { f.texts = append(f.texts, run) }
func (f *fakeSurface) TextWidth(r TextRun) float64 { return float64(utf8.RuneCountInString(r.Text)) }
func (f *fakeSurface) Close() ([]byte, error) { return nil, nil }
func (f *fakeSurface) ContentType() string { return "test/fake" }

func (f *fakeSurface) DrawImage(key string, _ compose.Asset, b layout.Box) {
	f.images = append(f.images, key)
	f.boxes = append(f.boxes, b)
}

func pagesFor(t *testing.T, total, perPage int) [][]layout.CopyOrigin {
	t.Helper()
	origins, err := layout.ComputeCopyOrigins(layout.Letter, dimensions.Default(), perPage)
	if err != nil {
		t.Fatal(err)
	}
	var pages [][]layout.CopyOrigin
	for _, n := range layout.Paginate(total, perPage) {
		pages = append(pages, origins[:n])
	}
	return pages
}

func allAssets() Assets {
	a := Assets{}
	for _, s := range template.Slots {
		a[s] = compose.Asset{Slot: s}
	}
	return a
}

func TestBuildPlanMatchesTable(t *testing.T) {
	tbl := dimensions.Default()
	pages := pagesFor(t, 1, 1)
	plan := BuildPlan(layout.Letter, tbl, pages)
	o := pages[0][0]

	if len(plan.Placements) != tbl.Len() {
		t.Fatalf("placements = %d, want %d", len(plan.Placements), tbl.Len())
	}
	for _, p := range plan.Placements {
		c, _ := tbl.Get(p.Component)
		w, h := c.Size()
		if math.Abs(p.Box.X-(o.XMM+c.OffsetXMM)) > 1e-9 || math.Abs(p.Box.Y-(o.YMM+c.OffsetYMM)) > 1e-9 ||
			p.Box.W != w || p.Box.H != h {
			t.Errorf("%s box = %+v, want offset (%g,%g) size %gx%g", p.Component, p.Box, c.OffsetXMM, c.OffsetYMM, w, h)
		}
	}
	if plan.TextBox == nil || plan.TextBox.W != 40 {
		t.Errorf("text box = %+v, want first front-outside box", plan.TextBox)
	}
	if len(plan.Guides) != 1 {
		t.Errorf("guides = %d, want 1", len(plan.Guides))
	}
}

func TestBuildPlanOrder(t *testing.T) {
	plan := BuildPlan(layout.Letter, dimensions.Default(), pagesFor(t, 5, 3))
	if plan.PageCount() != 2 || plan.CopyCount() != 5 {
		t.Fatalf("pages = %d copies = %d, want 2 and 5", plan.PageCount(), plan.CopyCount())
	}

	less := func(a, b Placement) bool {
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		if a.Group != b.Group {
			return a.Group < b.Group
		}
		return a.Copy < b.Copy
	}
	for i := 1; i < len(plan.Placements); i++ {
		if less(plan.Placements[i], plan.Placements[i-1]) {
			t.Fatalf("placement %d (%+v) out of order after %+v", i, plan.Placements[i], plan.Placements[i-1])
		}
	}

	// Copy numbers continue across pages.
	last := plan.Placements[len(plan.Placements)-1]
	if last.Page != 1 || last.Copy != 4 {
		t.Errorf("last placement page %d copy %d, want page 1 copy 4", last.Page, last.Copy)
	}
}

func TestDrawFollowsPlan(t *testing.T) {
	plan := BuildPlan(layout.Letter, dimensions.Default(), pagesFor(t, 4, 2))
	var rec progress.Recorder
	s := &fakeSurface{}

	text := template.TextFields{AlbumTitle: "Blue", ArtistName: "Band", DesignerInfo: "me", AdditionalText: "2026"}
	if err := Draw(context.Background(), s, plan, allAssets(), text, progress.NewReporter(rec.Func())); err != nil {
		t.Fatal(err)
	}

	if s.pages != 2 {
		t.Errorf("pages = %d, want 2", s.pages)
	}
	if len(s.guides) != 4 {
		t.Errorf("guides = %d, want 4", len(s.guides))
	}
	if len(s.images) != len(plan.Placements) {
		t.Fatalf("images = %d, want %d", len(s.images), len(plan.Placements))
	}
	for i, p := range plan.Placements {
		if s.images[i] != string(p.Slot) || s.boxes[i] != p.Box {
			t.Errorf("draw %d = %s %+v, want %s %+v", i, s.images[i], s.boxes[i], p.Slot, p.Box)
		}
	}
	if len(s.texts) != 4 {
		t.Errorf("texts = %d, want 4", len(s.texts))
	}
	for _, run := range s.texts {
		if run.X < plan.TextBox.X || run.X+float64(len(run.Text)) > plan.TextBox.Right() ||
			run.Y < plan.TextBox.Y || run.Y > plan.TextBox.Bottom() {
			t.Errorf("text %q at (%g,%g) outside text box %+v", run.Text, run.X, run.Y, *plan.TextBox)
		}
	}

	var details []string
	prev := 0.0
	for _, e := range rec.Events() {
		if e.Fraction < prev {
			t.Errorf("fraction decreased: %v after %v", e.Fraction, prev)
		}
		prev = e.Fraction
		if e.Stage != progress.CreatingDocument {
			details = append(details, fmt.Sprintf("%s %s", e.Stage, e.Detail))
		}
	}
	want := []string{
		"DRAWING_FRONT_COVERS page 1/2", "DRAWING_DISC page 1/2", "DRAWING_BACK_COVERS page 1/2",
		"DRAWING_FRONT_COVERS page 2/2", "DRAWING_DISC page 2/2", "DRAWING_BACK_COVERS page 2/2",
	}
	if strings.Join(details, ",") != strings.Join(want, ",") {
		t.Errorf("stages = %v, want %v", details, want)
	}
}

func TestDrawMissingAsset(t *testing.T) {
	plan := BuildPlan(layout.Letter, dimensions.Default(), pagesFor(t, 1, 1))
	assets := allAssets()
	delete(assets, template.CDDisc)

	s := &fakeSurface{}
	err := Draw(context.Background(), s, plan, assets, template.TextFields{}, nil)
	if !errors.Is(err, errors.ErrCodeInternal) {
		t.Fatalf("error = %v, want INTERNAL_ERROR", err)
	}
	if s.pages != 0 {
		t.Error("surface was drawn on before the asset check")
	}
}

func TestDrawCancelled(t *testing.T) {
	plan := BuildPlan(layout.Letter, dimensions.Default(), pagesFor(t, 3, 3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Draw(ctx, &fakeSurface{}, plan, allAssets(), template.TextFields{}, nil)
	if err != context.Canceled {
		t.Errorf("error = %v, want context.Canceled", err)
	}
}

func TestTruncate(t *testing.T) {
	s := &fakeSurface{}
	tests := []struct {
		text string
		maxW float64
		want string
	}{
		{"short", 10, "short"},
		{"exactly ten", 11, "exactly ten"},
		{"a rather long title", 8, "a rathe…"},
		{"word  gap   here", 20, "word gap here"},
		{"trailing space cut", 10, "trailing…"},
		{"x", 0.5, ""},
		{"abc", 1, "…"},
	}
	for _, tt := range tests {
		got := Truncate(s, TextRun{Text: tt.text}, tt.maxW)
		if got != tt.want {
			t.Errorf("Truncate(%q, %g) = %q, want %q", tt.text, tt.maxW, got, tt.want)
		}
		if got != "" && s.TextWidth(TextRun{Text: got}) > tt.maxW {
			t.Errorf("Truncate(%q, %g) = %q is wider than the limit", tt.text, tt.maxW, got)
		}
	}
}

func TestLayoutTextSkipsEmpty(t *testing.T) {
	box := layout.Box{X: 10, Y: 10, W: 40, H: 40}
	runs := LayoutText(&fakeSurface{}, box, template.TextFields{ArtistName: "Solo"})
	if len(runs) != 1 || runs[0].Font != ArtistFont {
		t.Errorf("runs = %+v, want one artist line", runs)
	}
}
