// Package manifest reads render jobs from TOML files.
//
// A manifest names the artwork for each slot as a path or URL, the text
// fields and the copy counts:
//
//	copies_per_page = 2
//	total_copies = 4
//	output = "blue-train.pdf"
//
//	[text]
//	album_title = "Blue Train"
//	artist_name = "John Coltrane"
//
//	[slots]
//	frontCoverOutside = "art/front.jpg"
//	cdDisc = "https://example.com/disc.png"
//
// Relative paths resolve against the manifest's directory.
package manifest

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/template"
)

// Manifest is one render job.
type Manifest struct {
	CopiesPerPage int               `toml:"copies_per_page"`
	TotalCopies   int               `toml:"total_copies"`
	Output        string            `toml:"output"`
	Format        string            `toml:"format"`
	Page          string            `toml:"page"`
	Text          Text              `toml:"text"`
	Slots         map[string]string `toml:"slots"`

	// Dir is the directory relative references resolve against.
	Dir string `toml:"-"`
}

// Text holds the printed text fields.
type Text struct {
	AlbumTitle     string `toml:"album_title"`
	ArtistName     string `toml:"artist_name"`
	DesignerInfo   string `toml:"designer_info"`
	AdditionalText string `toml:"additional_text"`
}

// Load parses the manifest at path. Unknown keys and unknown slot names
// are rejected.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "manifest %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "read manifest %s", path)
	}
	m, err := Parse(string(data))
	if err != nil {
		return nil, err
	}
	m.Dir = filepath.Dir(path)
	return m, nil
}

// Parse decodes a manifest from TOML text. Dir is left empty.
func Parse(data string) (*Manifest, error) {
	var m Manifest
	md, err := toml.Decode(data, &m)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse manifest")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "manifest: unknown key %q", undecoded[0].String())
	}
	for _, name := range m.slotNames() {
		if !template.SlotID(name).Valid() {
			return nil, errors.New(errors.ErrCodeInvalidSlot, "manifest: unknown slot %q", name)
		}
	}
	return &m, nil
}

// Request converts the manifest into a render request. Slot references
// stay references; the pipeline's fetcher resolves them.
func (m *Manifest) Request() template.Request {
	req := template.Request{
		CopiesPerPage: m.CopiesPerPage,
		TotalCopies:   m.TotalCopies,
		Text: template.TextFields{
			AlbumTitle:     m.Text.AlbumTitle,
			ArtistName:     m.Text.ArtistName,
			DesignerInfo:   m.Text.DesignerInfo,
			AdditionalText: m.Text.AdditionalText,
		},
	}
	if len(m.Slots) > 0 {
		req.Images = make(map[template.SlotID]template.SlotImage, len(m.Slots))
	}
	for name, ref := range m.Slots {
		if ref == "" {
			continue
		}
		slot := template.SlotID(name)
		req.Images[slot] = template.SlotImage{Slot: slot, Ref: m.Resolve(ref)}
	}
	return req
}

// Resolve returns ref with relative paths joined to Dir. URLs and
// absolute paths are returned unchanged.
func (m *Manifest) Resolve(ref string) string {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	path := strings.TrimPrefix(ref, "file://")
	if filepath.IsAbs(path) || m.Dir == "" {
		return path
	}
	return filepath.Join(m.Dir, path)
}

// OutputPath resolves Output against Dir. Empty when no output is set.
func (m *Manifest) OutputPath() string {
	if m.Output == "" {
		return ""
	}
	return m.Resolve(m.Output)
}

func (m *Manifest) slotNames() []string {
	names := make([]string, 0, len(m.Slots))
	for name := range m.Slots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
