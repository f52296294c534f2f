package cmd

import (
	"github.com/spf13/cobra"

	"ph_calc/config"
	"ph_calc/phius"
)

func newMFLoadsCmd(opts *options) *cobra.Command {
	var cpus int
	cmd := &cobra.Command{
		Use:   "mf-loads",
		Short: "Tabulate Phius multifamily MEL and lighting loads as CSV",
		Long: `Compute the Phius multifamily MEL and lighting loads of the project
rooms, story by story, and the non-residential space loads. The three
tables (stories, story totals, non-residential spaces) are written to
stdout as CSV separated by blank lines.

Examples:
  phcalc mf-loads --project block-a.yaml > loads.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.load("mf-loads")
			if err != nil {
				return err
			}
			o := phius.DefaultOptions()
			o.Fractions = b.Fractions
			o.CPUs = cpus

			log := config.Logger.With().Str("component", "mf-loads").Logger()
			log.Info().Int("rooms", len(b.Segment.Rooms)).Msg("calculating Phius multifamily loads")
			res, report, err := phius.Calculate(b.Segment.Rooms, o)
			config.LogReport(log, "mf-loads", report)
			if err != nil {
				return err
			}
			log.Info().
				Float64("residential_kwh", res.Residential.Total()).
				Float64("nonres_mel_kwh", res.NonResidentialMEL).
				Float64("nonres_lighting_kwh", res.NonResidentialLighting).
				Msg("done")
			return res.WriteCSV(cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&cpus, "cpus", 0, "parallel stories (0 = all CPUs)")
	return cmd
}
