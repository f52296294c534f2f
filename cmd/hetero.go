package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ph_calc/config"
	"ph_calc/diagnostics"
	"ph_calc/materials"
)

func newHeteroCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "hetero",
		Short: "Equivalent conductivity of the project's construction layers",
		Long: `List every layer of every project construction with its conductivity.
Divided (heterogeneous) layers report the ISO-6946 equivalent
conductivity, the mean of the parallel-path and series bounds.

Examples:
  phcalc hetero --project block-a.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.load("hetero")
			if err != nil {
				return err
			}
			report := diagnostics.NewReport()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CONSTRUCTION\tLAYER\tTHICKNESS (mm)\tλ (W/mK)\tCELLS\tU (W/m2K)")
			for _, c := range b.Constructions {
				u, err := c.UValue(materials.RsiWall, materials.RseWall, report)
				if err != nil {
					return err
				}
				for i, m := range c.Layers() {
					k, err := m.EffectiveConductivity(report)
					if err != nil {
						return err
					}
					cells, uCol := "-", ""
					if m.IsHeterogeneous() {
						cells = fmt.Sprintf("%dx%d", len(m.Grid.Columns()), len(m.Grid.Rows()))
					}
					if i == 0 {
						uCol = fmt.Sprintf("%.3f", u)
					}
					fmt.Fprintf(w, "%s\t%s\t%.1f\t%.6f\t%s\t%s\n", c.Name, m.Name, m.Thickness*1000, k, cells, uCol)
				}
			}
			config.LogReport(config.Logger, "hetero", report)
			return w.Flush()
		},
	}
}
