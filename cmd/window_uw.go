package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newWindowUwCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "window-uw",
		Short: "ISO-10077-1 U-values of the project's apertures",
		Long: `Compute the installed-size window U-value (Uw) of every aperture in
the project, its installation heat loss and the simple-glazing stand-in
(whole-window SHGC, glass-only U) handed to the energy simulator. Windows
with a user U-factor report it unchanged.

Examples:
  phcalc window-uw --project block-a.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			b, err := opts.load("window-uw")
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ROOM\tAPERTURE\tWINDOW\tWIDTH (m)\tHEIGHT (m)\tUw (W/m2K)\tINSTALL (W/K)\tSHGC\tUg* (W/m2K)")
			for _, r := range b.Segment.Rooms {
				for _, ap := range r.Apertures() {
					if ap.Construction == nil {
						continue
					}
					uw, err := ap.Uw()
					if err != nil {
						return err
					}
					loss, err := ap.InstallLoss()
					if err != nil {
						return err
					}
					sg, err := ap.StandIn()
					if err != nil {
						return err
					}
					width, height := ap.WidthHeight()
					fmt.Fprintf(w, "%s\t%s\t%s\t%.3f\t%.3f\t%.4f\t%.4f\t%.4f\t%.4f\n",
						r.Name, ap.Name, ap.Construction.Name, width, height, uw, loss, sg.SHGC, sg.GlazingUFactor)
				}
			}
			return w.Flush()
		},
	}
}
