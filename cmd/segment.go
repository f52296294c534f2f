package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"ph_calc/bldgsegment"
	"ph_calc/certification"
	"ph_calc/config"
)

func newSegmentCmd(opts *options) *cobra.Command {
	var perf certification.Performance
	cmd := &cobra.Command{
		Use:   "segment",
		Short: "Assemble the project into a building segment and print its summary",
		Long: `Assemble the project rooms into a building segment (site, certification,
factor tables, set-points, deduplicated thermal bridges) and print the
export summary. Modelled results passed as flags are checked against
the Phius thresholds.

Examples:
  phcalc segment --project block-a.yaml
  phcalc segment --project block-a.yaml --heating-demand 14.2 --peak-heat-load 9.1`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.load("segment")
			if err != nil {
				return err
			}
			log := config.Logger.With().Str("component", "segment").Logger()
			_, seg, report, err := bldgsegment.Assemble(b.Segment)
			config.LogReport(log, "segment", report)
			if err != nil {
				return err
			}
			v, report, err := seg.Export()
			config.LogReport(log, "segment", report)
			if err != nil {
				return err
			}
			log.Info().Str("segment", v.ID).Msg("assembled")

			out := cmd.OutOrStdout()
			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintf(w, "Segment:\t%s\n", v.Name)
			fmt.Fprintf(w, "Floors:\t%d\n", v.NumFloors)
			fmt.Fprintf(w, "Dwellings:\t%d\n", v.NumDwellings)
			fmt.Fprintf(w, "Design occupancy:\t%d\n", v.Occupancy)
			fmt.Fprintf(w, "Floor area:\t%.2f m2\n", v.FloorArea)
			fmt.Fprintf(w, "TFA / iCFA:\t%.2f m2\n", v.WeightedFloorArea)
			fmt.Fprintf(w, "Set-points:\t%.1f / %.1f C\n", v.SetPoints.Winter, v.SetPoints.Summer)
			fmt.Fprintf(w, "Thermal bridges:\t%d, %.3f W/K\n", len(v.ThermalBridges), seg.Bridges.HeatLoss())
			fmt.Fprintf(w, "Constructions:\t%d\n", len(v.Constructions))
			fmt.Fprintf(w, "Apertures:\t%d\n", len(v.Apertures))
			fmt.Fprintf(w, "Hot-water systems:\t%d\n", len(v.HotWater))
			if len(v.HVAC.Heating) > 0 {
				fmt.Fprintf(w, "Heating:\t%s\n", strings.Join(v.HVAC.Heating, ", "))
			}
			fmt.Fprintf(w, "Phius program:\t%s\n", v.Phius.Program)
			fmt.Fprintf(w, "PHI criteria:\t%s %s\n", v.Phi.Criteria, v.Phi.Class)
			if err := w.Flush(); err != nil {
				return err
			}

			if !perfFlagsSet(cmd) {
				return nil
			}
			perf.Occupants = float64(v.Occupancy)
			if fails := seg.Phius.Failures(perf); len(fails) > 0 {
				fmt.Fprintf(out, "Phius: FAILS %s\n", strings.Join(fails, ", "))
			} else {
				fmt.Fprintln(out, "Phius: PASS")
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Float64Var(&perf.HeatingDemand, "heating-demand", 0, "modelled heating demand, kWh/m2yr")
	f.Float64Var(&perf.CoolingDemand, "cooling-demand", 0, "modelled cooling demand, kWh/m2yr")
	f.Float64Var(&perf.PeakHeatLoad, "peak-heat-load", 0, "modelled peak heating load, W/m2")
	f.Float64Var(&perf.PeakCoolLoad, "peak-cool-load", 0, "modelled peak cooling load, W/m2")
	f.Float64Var(&perf.SourceEnergy, "source-energy", 0, "modelled net source energy, kWh/yr")
	return cmd
}

func perfFlagsSet(cmd *cobra.Command) bool {
	for _, name := range []string{"heating-demand", "cooling-demand", "peak-heat-load", "peak-cool-load", "source-energy"} {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
