package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/pipeline"
	"github.com/matzehuels/minicase/pkg/template"
)

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestParseSlotFlags(t *testing.T) {
	tests := []struct {
		name  string
		pairs []string
		want  map[template.SlotID]string
		code  errors.Code
	}{
		{"empty", nil, map[template.SlotID]string{}, ""},
		{"path and url", []string{"cdDisc=disc.png", "frontCoverOutside=https://x/a.jpg"},
			map[template.SlotID]string{template.CDDisc: "disc.png", template.FrontCoverOutside: "https://x/a.jpg"}, ""},
		{"trims spaces", []string{" cdDisc = disc.png"}, map[template.SlotID]string{template.CDDisc: "disc.png"}, ""},
		{"missing ref", []string{"cdDisc="}, nil, errors.ErrCodeInvalidInput},
		{"no equals", []string{"cdDisc"}, nil, errors.ErrCodeInvalidInput},
		{"unknown slot", []string{"spine=a.jpg"}, nil, errors.ErrCodeInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseSlotFlags(tt.pairs)
			if tt.code != "" {
				if !errors.Is(err, tt.code) {
					t.Fatalf("error = %v, want %s", err, tt.code)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("%s = %q, want %q", k, got[k], v)
				}
			}
		})
	}
}

func TestApplyRenderFlags(t *testing.T) {
	req := template.Request{
		CopiesPerPage: 2,
		Text:          template.TextFields{AlbumTitle: "From Manifest", ArtistName: "Kept"},
	}
	opts := pipeline.Options{Format: pipeline.FormatPDF}
	ro := &renderOpts{
		copies: 1,
		total:  6,
		format: "png",
		page:   "a4",
		margin: 5,
		title:  "From Flag",
		artist: "ignored",
		slots:  []string{"cdDisc=disc.png"},
	}

	err := applyRenderFlags(&req, &opts, ro, changedSet("total", "format", "page", "margin", "title"))
	if err != nil {
		t.Fatal(err)
	}
	if req.CopiesPerPage != 2 {
		t.Errorf("copies = %d, manifest value should win over flag default", req.CopiesPerPage)
	}
	if req.TotalCopies != 6 {
		t.Errorf("total = %d", req.TotalCopies)
	}
	if opts.Format != "png" || opts.Page.Name != layout.A4.Name || opts.Page.MarginMM != 5 {
		t.Errorf("opts = %s %+v", opts.Format, opts.Page)
	}
	if req.Text.AlbumTitle != "From Flag" || req.Text.ArtistName != "Kept" {
		t.Errorf("text = %+v", req.Text)
	}
	if got := req.Image(template.CDDisc).Ref; got != "disc.png" {
		t.Errorf("disc ref = %q", got)
	}
}

func TestApplyRenderFlagsDefaults(t *testing.T) {
	var req template.Request
	var opts pipeline.Options
	if err := applyRenderFlags(&req, &opts, &renderOpts{copies: 1}, changedSet()); err != nil {
		t.Fatal(err)
	}
	if req.CopiesPerPage != 1 {
		t.Errorf("copies = %d, want flag default 1", req.CopiesPerPage)
	}

	err := applyRenderFlags(&req, &opts, &renderOpts{page: "legal"}, changedSet("page"))
	if !errors.Is(err, errors.ErrCodeInvalidGeometry) {
		t.Errorf("bad page error = %v", err)
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name, flag, manifest, format, want string
	}{
		{"flag wins", "out.pdf", "job.pdf", "pdf", "out.pdf"},
		{"manifest", "", "job.pdf", "pdf", "job.pdf"},
		{"default per format", "", "", "png", "minicase.png"},
		{"stdout", "-", "", "pdf", "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := outputPath(tt.flag, tt.manifest, tt.format); got != tt.want {
				t.Errorf("outputPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteOutputCreatesDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a", "b", "out.pdf")
	if err := writeOutput(path, []byte("%PDF-")); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "%PDF-" {
		t.Errorf("read back %q, %v", data, err)
	}
}
