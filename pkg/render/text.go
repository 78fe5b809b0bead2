package render

import (
	"strings"

	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/template"
	"github.com/matzehuels/minicase/pkg/units"
)

// Text styles of the front cover labels.
var (
	TitleFont    = Font{Bold: true, SizePt: 9}
	ArtistFont   = Font{SizePt: 7}
	DesignerFont = Font{SizePt: 5.5}
	FreeTextFont = Font{SizePt: 5}
)

// Ellipsis marks truncated text.
const Ellipsis = "…"

const (
	textPadMM = 2.0
	leading   = 1.25
)

// LayoutText positions the text fields inside box. Title and artist hang
// from the top edge; designer and additional text sit on the bottom edge.
// Every line is truncated with an ellipsis to fit the box width, using m to
// measure.
func LayoutText(m Surface, box layout.Box, text template.TextFields) []TextRun {
	maxW := box.W - 2*textPadMM
	if maxW <= 0 {
		return nil
	}
	x := box.X + textPadMM

	var runs []TextRun
	add := func(s string, f Font, y float64) {
		if strings.TrimSpace(s) == "" {
			return
		}
		run := TextRun{Text: s, Font: f, X: x, Y: y}
		run.Text = Truncate(m, run, maxW)
		if run.Text != "" {
			runs = append(runs, run)
		}
	}

	y := box.Y + textPadMM
	for _, line := range []struct {
		s string
		f Font
	}{{text.AlbumTitle, TitleFont}, {text.ArtistName, ArtistFont}} {
		if line.s == "" {
			continue
		}
		y += lineHeight(line.f)
		add(line.s, line.f, y)
	}

	y = box.Bottom() - textPadMM
	for _, line := range []struct {
		s string
		f Font
	}{{text.AdditionalText, FreeTextFont}, {text.DesignerInfo, DesignerFont}} {
		if line.s == "" {
			continue
		}
		add(line.s, line.f, y)
		y -= lineHeight(line.f)
	}
	return runs
}

// Truncate shortens run.Text until it fits maxW, appending an ellipsis. It
// returns "" when not even the ellipsis fits.
func Truncate(m Surface, run TextRun, maxW float64) string {
	text := strings.Join(strings.Fields(run.Text), " ")
	run.Text = text
	if m.TextWidth(run) <= maxW {
		return text
	}

	r := []rune(text)
	lo, hi := 0, len(r)
	for lo < hi {
		mid := (lo + hi + 1) / 2
		run.Text = strings.TrimRight(string(r[:mid]), " ") + Ellipsis
		if m.TextWidth(run) <= maxW {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	if lo == 0 {
		run.Text = Ellipsis
		if m.TextWidth(run) <= maxW {
			return Ellipsis
		}
		return ""
	}
	return strings.TrimRight(string(r[:lo]), " ") + Ellipsis
}

func lineHeight(f Font) float64 {
	return units.Points.ToMM(f.SizePt * leading)
}
