package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/minicase/pkg/dimensions"
)

// slotsCommand prints the dimension table.
func (c *CLI) slotsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "slots",
		Short: "List artwork slots and their print sizes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(renderTable(
				[]string{"Slot", "Component", "Group", "Size (mm)", "Offset (mm)"},
				slotRows(dimensions.Default()),
			))
			return nil
		},
	}
}

func slotRows(t dimensions.Table) [][]string {
	specs := t.Components()
	rows := make([][]string, len(specs))
	for i, s := range specs {
		size := fmt.Sprintf("%g x %g", s.WidthMM, s.HeightMM)
		if s.Shape == dimensions.ShapeDisc {
			size = fmt.Sprintf("ø %g (hole %g)", s.DiameterMM, s.HoleDiameterMM)
		}
		rows[i] = []string{
			string(s.Slot),
			string(s.ID),
			s.Group.String(),
			size,
			fmt.Sprintf("%g, %g", s.OffsetXMM, s.OffsetYMM),
		}
	}
	return rows
}
