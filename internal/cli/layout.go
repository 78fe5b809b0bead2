package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minicase/pkg/dimensions"
	"github.com/matzehuels/minicase/pkg/layout"
	"github.com/matzehuels/minicase/pkg/render"
	"github.com/matzehuels/minicase/pkg/render/sink"
	"github.com/matzehuels/minicase/pkg/units"
)

// layoutCommand creates the layout command, which prints copy origins
// without touching any artwork.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		copies int
		page   string
		margin float64
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Print where template copies land on the page",
		Long: `Print the top-left origin of every template copy for a page size and
density, in millimeters and points. With --json the full draw plan
(every component box) is written to stdout instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			geom, err := c.pageGeometry(cmd.Flags().Changed("page"), page, cmd.Flags().Changed("margin"), margin)
			if err != nil {
				return err
			}
			return runLayout(geom, copies, asJSON)
		},
	}

	cmd.Flags().IntVarP(&copies, "copies", "n", 1, "copies per page (1-3)")
	cmd.Flags().StringVar(&page, "page", "", "page size: letter (default), a4")
	cmd.Flags().Float64Var(&margin, "margin", 0, "page margin in mm")
	cmd.Flags().BoolVar(&asJSON, "json", false, "write the draw plan as JSON")

	return cmd
}

// pageGeometry resolves the page from config, then flags.
func (c *CLI) pageGeometry(pageSet bool, page string, marginSet bool, margin float64) (layout.PageGeometry, error) {
	name := c.Config.Render.Page
	if pageSet {
		name = page
	}
	geom, err := layout.PageByName(name)
	if err != nil {
		return layout.PageGeometry{}, err
	}
	if marginSet {
		return geom.WithMargin(margin), nil
	}
	if c.Config.Render.MarginMM > 0 {
		return geom.WithMargin(c.Config.Render.MarginMM), nil
	}
	return geom, nil
}

func runLayout(geom layout.PageGeometry, copies int, asJSON bool) error {
	table := dimensions.Default()
	origins, err := layout.ComputeCopyOrigins(geom, table, copies)
	if err != nil {
		return err
	}

	if asJSON {
		plan := render.BuildPlan(geom, table, [][]layout.CopyOrigin{origins})
		data, err := sink.RenderJSON(plan)
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	box := layout.CopyBox(table)
	printKeyValue("Page", fmt.Sprintf("%s (%.1f x %.1f mm, margin %.1f mm)", geom.Name, geom.WidthMM, geom.HeightMM, geom.MarginMM))
	printKeyValue("Copy size", fmt.Sprintf("%.1f x %.1f mm", box.W, box.H))
	fmt.Println(renderTable([]string{"Copy", "X (mm)", "Y (mm)", "X (pt)", "Y (pt)"}, originRows(origins)))
	printNewline()
	printNextStep("Render", fmt.Sprintf("%s render -n %d --slot frontCoverOutside=front.jpg", appName, copies))
	return nil
}

func originRows(origins []layout.CopyOrigin) [][]string {
	rows := make([][]string, len(origins))
	for i, o := range origins {
		rows[i] = []string{
			fmt.Sprintf("%d", o.Index+1),
			fmt.Sprintf("%.2f", o.XMM),
			fmt.Sprintf("%.2f", o.YMM),
			fmt.Sprintf("%.2f", units.Points.ToUnit(o.XMM)),
			fmt.Sprintf("%.2f", units.Points.ToUnit(o.YMM)),
		}
	}
	return rows
}
