package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minicase/pkg/errors"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/manifest"
	"github.com/matzehuels/minicase/pkg/pipeline"
	"github.com/matzehuels/minicase/pkg/progress"
	"github.com/matzehuels/minicase/pkg/template"
)

// stdoutPath writes the document to standard output.
const stdoutPath = "-"

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file path, "-" for stdout
	format   string   // pdf, png or json
	copies   int      // copies per page
	total    int      // total copies across pages
	page     string   // letter or a4
	margin   float64  // page margin in mm
	dpi      float64  // compositing resolution
	slots    []string // slot=ref pairs
	title    string
	artist   string
	designer string
	text     string
	noCache  bool
	tui      bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{copies: 1}

	cmd := &cobra.Command{
		Use:   "render [job.toml]",
		Short: "Render a miniature CD package template",
		Long: `Render a miniature CD package template to PDF, PNG or JSON.

Artwork comes from a TOML job manifest, from --slot flags, or both (flags
win). Each slot takes a file path or an http(s) URL:

  minicase render --slot frontCoverOutside=front.jpg --slot cdDisc=disc.png -n 2

Slots without artwork, or whose artwork cannot be loaded, are printed as
labeled placeholders. Run 'minicase slots' for the slot names.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file, - for stdout (default: minicase.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: pdf (default), png, json")
	cmd.Flags().IntVarP(&opts.copies, "copies", "n", opts.copies, "copies per page (1-3)")
	cmd.Flags().IntVar(&opts.total, "total", 0, "total copies across pages (default: one page)")
	cmd.Flags().StringVar(&opts.page, "page", "", "page size: letter (default), a4")
	cmd.Flags().Float64Var(&opts.margin, "margin", 0, "page margin in mm")
	cmd.Flags().Float64Var(&opts.dpi, "dpi", 0, "image resolution (default 300)")
	cmd.Flags().StringArrayVarP(&opts.slots, "slot", "s", nil, "slot artwork as name=path-or-url (repeatable)")
	cmd.Flags().StringVar(&opts.title, "title", "", "album title")
	cmd.Flags().StringVar(&opts.artist, "artist", "", "artist name")
	cmd.Flags().StringVar(&opts.designer, "designer", "", "designer credit")
	cmd.Flags().StringVar(&opts.text, "text", "", "additional text")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the source image cache")
	cmd.Flags().BoolVar(&opts.tui, "tui", false, "show a live progress view")

	return cmd
}

// job is a fully resolved render invocation.
type job struct {
	req    template.Request
	opts   pipeline.Options
	output string
}

// runRender resolves the job, renders it and writes the output.
func (c *CLI) runRender(cmd *cobra.Command, args []string, ro *renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	j, err := c.buildJob(cmd, args, ro)
	if err != nil {
		return err
	}
	logger.Debug("resolved job", "request", j.req.String(), "format", j.opts.Format, "output", j.output)

	runner, cc, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer cc.Close()

	render := func(ctx context.Context, fn progress.Func) (*pipeline.Result, error) {
		opts := j.opts
		opts.Progress = fn
		return runner.Render(ctx, j.req, opts)
	}

	sw := newStopwatch(logger)
	title := fmt.Sprintf("Rendering %d %s", j.req.Copies(), plural(j.req.Copies(), "copy", "copies"))
	var result *pipeline.Result
	if ro.tui {
		result, err = runWithTUI(ctx, title, render)
	} else {
		result, err = runWithSpinner(ctx, title, render)
	}
	if err != nil {
		return err
	}
	sw.done(fmt.Sprintf("Rendered %d %s", result.PageCount, plural(result.PageCount, "page", "pages")))

	if err := writeOutput(j.output, result.Buffer); err != nil {
		return err
	}
	if j.output == stdoutPath {
		return nil
	}

	printSuccess("Render complete")
	printFile(j.output)
	printRenderStats(result.PageCount, result.Stats.Copies, len(result.Placeholders), len(result.Buffer))
	for _, w := range result.Warnings {
		printWarning("%s: %s", w.Slot, w.Message)
	}
	return nil
}

// buildJob merges config, manifest and flags, in increasing priority.
func (c *CLI) buildJob(cmd *cobra.Command, args []string, ro *renderOpts) (*job, error) {
	j := &job{}
	if err := c.Config.Apply(&j.opts); err != nil {
		return nil, err
	}
	j.opts.Logger = c.Logger

	var m *manifest.Manifest
	if len(args) == 1 {
		var err error
		if m, err = manifest.Load(args[0]); err != nil {
			return nil, err
		}
		j.req = m.Request()
		if m.Format != "" {
			j.opts.Format = m.Format
		}
		if m.Page != "" {
			page, err := layout.PageByName(m.Page)
			if err != nil {
				return nil, err
			}
			j.opts.Page = page
		}
	}

	flags := cmd.Flags()
	if err := applyRenderFlags(&j.req, &j.opts, ro, flags.Changed); err != nil {
		return nil, err
	}
	if j.opts.Format == "" {
		j.opts.Format = pipeline.FormatPDF
	}
	if err := pipeline.ValidateFormat(j.opts.Format); err != nil {
		return nil, err
	}

	manifestOut := ""
	if m != nil {
		manifestOut = m.OutputPath()
	}
	j.output = outputPath(ro.output, manifestOut, j.opts.Format)
	return j, nil
}

// applyRenderFlags overlays the flags reported by changed onto req and
// opts. Copies fall back to the flag default when nothing else set them.
func applyRenderFlags(req *template.Request, opts *pipeline.Options, ro *renderOpts, changed func(string) bool) error {
	if changed("copies") || req.CopiesPerPage == 0 {
		req.CopiesPerPage = ro.copies
	}
	if changed("total") {
		req.TotalCopies = ro.total
	}
	if changed("format") {
		opts.Format = ro.format
	}
	if changed("page") {
		page, err := layout.PageByName(ro.page)
		if err != nil {
			return err
		}
		opts.Page = page
	}
	if changed("margin") {
		if opts.Page == (layout.PageGeometry{}) {
			opts.Page = layout.Letter
		}
		opts.Page = opts.Page.WithMargin(ro.margin)
	}
	if changed("dpi") {
		opts.DPI = ro.dpi
	}

	for _, f := range []struct {
		name string
		dst  *string
		val  string
	}{
		{"title", &req.Text.AlbumTitle, ro.title},
		{"artist", &req.Text.ArtistName, ro.artist},
		{"designer", &req.Text.DesignerInfo, ro.designer},
		{"text", &req.Text.AdditionalText, ro.text},
	} {
		if changed(f.name) {
			*f.dst = f.val
		}
	}

	refs, err := parseSlotFlags(ro.slots)
	if err != nil {
		return err
	}
	if len(refs) > 0 && req.Images == nil {
		req.Images = make(map[template.SlotID]template.SlotImage, len(refs))
	}
	for slot, ref := range refs {
		req.Images[slot] = template.SlotImage{Slot: slot, Ref: ref}
	}
	return nil
}

// parseSlotFlags parses name=ref pairs.
func parseSlotFlags(pairs []string) (map[template.SlotID]string, error) {
	refs := make(map[template.SlotID]string, len(pairs))
	for _, pair := range pairs {
		name, ref, ok := strings.Cut(pair, "=")
		if !ok || ref == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "--slot %q: want name=path-or-url", pair)
		}
		slot := template.SlotID(strings.TrimSpace(name))
		if !slot.Valid() {
			return nil, errors.New(errors.ErrCodeInvalidSlot, "--slot %q: unknown slot %q (see 'minicase slots')", pair, name)
		}
		refs[slot] = strings.TrimSpace(ref)
	}
	return refs, nil
}

// outputPath picks the flag value, then the manifest value, then
// minicase.<format>.
func outputPath(flag, fromManifest, format string) string {
	switch {
	case flag != "":
		return flag
	case fromManifest != "":
		return fromManifest
	default:
		return appName + "." + format
	}
}

// writeOutput writes data to path, creating parent directories. "-"
// writes to stdout.
func writeOutput(path string, data []byte) error {
	if path == stdoutPath {
		_, err := os.Stdout.Write(data)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
