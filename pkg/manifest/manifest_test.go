package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/template"
)

const sample = `
copies_per_page = 2
total_copies = 4
output = "out/blue-train.pdf"

[text]
album_title = "Blue Train"
artist_name = "John Coltrane"

[slots]
frontCoverOutside = "art/front.jpg"
cdDisc = "https://example.com/disc.png"
backCoverInsideMain = "/abs/inside.png"
`

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "job.toml")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	m, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	req := m.Request()

	if req.CopiesPerPage != 2 || req.Copies() != 4 {
		t.Errorf("copies = %d/%d", req.CopiesPerPage, req.Copies())
	}
	if req.Text.AlbumTitle != "Blue Train" || req.Text.ArtistName != "John Coltrane" {
		t.Errorf("text = %+v", req.Text)
	}

	tests := []struct {
		slot template.SlotID
		want string
	}{
		{template.FrontCoverOutside, filepath.Join(dir, "art", "front.jpg")},
		{template.CDDisc, "https://example.com/disc.png"},
		{template.BackCoverInsideMain, "/abs/inside.png"},
		{template.FrontCoverInside, ""},
	}
	for _, tt := range tests {
		t.Run(string(tt.slot), func(t *testing.T) {
			if got := req.Image(tt.slot).Ref; got != tt.want {
				t.Errorf("ref = %q, want %q", got, tt.want)
			}
		})
	}

	if got, want := m.OutputPath(), filepath.Join(dir, "out", "blue-train.pdf"); got != want {
		t.Errorf("OutputPath() = %q, want %q", got, want)
	}
	if err := req.Validate(3); err != nil {
		t.Errorf("request invalid: %v", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"syntax", "copies_per_page = ", errors.ErrCodeInvalidConfig},
		{"unknown key", "copies = 2", errors.ErrCodeInvalidConfig},
		{"unknown slot", "[slots]\nspine = \"a.jpg\"", errors.ErrCodeInvalidSlot},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.data)
			if !errors.Is(err, tt.code) {
				t.Fatalf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Fatalf("error = %v, want NOT_FOUND", err)
	}
}

func TestResolve(t *testing.T) {
	m := &Manifest{Dir: "/jobs"}
	tests := []struct {
		ref, want string
	}{
		{"front.jpg", "/jobs/front.jpg"},
		{"file://front.jpg", "/jobs/front.jpg"},
		{"file:///srv/front.jpg", "/srv/front.jpg"},
		{"http://host/a.jpg", "http://host/a.jpg"},
	}
	for _, tt := range tests {
		if got := m.Resolve(tt.ref); got != tt.want {
			t.Errorf("Resolve(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}

func TestLoadExample(t *testing.T) {
	m, err := Load(filepath.Join("..", "..", "examples", "blue-train.toml"))
	if err != nil {
		t.Fatal(err)
	}
	req := m.Request()
	if err := req.Validate(3); err != nil {
		t.Fatal(err)
	}
	if req.Copies() != 4 || len(req.Images) != 5 {
		t.Errorf("copies = %d images = %d", req.Copies(), len(req.Images))
	}
}
