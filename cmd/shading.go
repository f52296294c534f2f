package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ph_calc/config"
	"ph_calc/shading"
)

func newShadingCmd(opts *options) *cobra.Command {
	var cpus int
	var grid float64
	cmd := &cobra.Command{
		Use:   "shading",
		Short: "Winter and summer shading factors of the project's apertures",
		Long: `Ray-trace every aperture against its reveals, overhangs and the
project context under the winter and summer skies and report the
shading factors (1 = unshaded).

Examples:
  phcalc shading --project block-a.yaml
  phcalc shading --project block-a.yaml --grid-size 0.25 --cpus 4`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.load("shading")
			if err != nil {
				return err
			}
			in := b.Shading
			if cpus > 0 {
				in.CPUs = cpus
			}
			if grid > 0 {
				in.GridSize = grid
			}

			log := config.Logger.With().Str("component", "shading").Logger()
			log.Info().
				Int("apertures", len(in.Apertures)).
				Int("patches", in.WinterSky.Len()).
				Msg("solving shading factors")
			res, report, err := shading.Solve(in)
			config.LogReport(log, "shading", report)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "APERTURE\tWINTER\tSUMMER")
			for _, f := range res.Factors {
				if f.Skipped {
					fmt.Fprintf(w, "%s\t-\t-\n", f.Aperture)
					continue
				}
				fmt.Fprintf(w, "%s\t%.4f\t%.4f\n", f.Aperture, f.Winter, f.Summer)
			}
			return w.Flush()
		},
	}
	cmd.Flags().IntVar(&cpus, "cpus", 0, "parallel apertures (0 = all CPUs)")
	cmd.Flags().Float64Var(&grid, "grid-size", 0, "analysis grid spacing, m (0 = project or default)")
	return cmd
}
