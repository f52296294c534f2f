package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"ph_calc/config"
	"ph_calc/diagnostics"
)

const Version = "0.1.0"

// options are the persistent flags shared by every subcommand.
type options struct {
	project  string
	logLevel string
}

// NewRootCmd builds the phcalc command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "phcalc",
		Short: "Passive House building data calculator",
		Long: `phcalc - Passive House building data calculator

Reads a YAML project (rooms, constructions, windows, hot water, site and
certification data) and runs the Passive House calculators on it:
  - Phius multifamily MEL and lighting loads
  - equivalent conductivity of divided (heterogeneous) layers
  - ISO-10077-1 window U-values
  - winter and summer aperture shading factors
  - building segment assembly and export summary`,
		SilenceUsage: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			config.InitLogger(opts.logLevel)
		},
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.PersistentFlags().StringVarP(&opts.project, "project", "p", "", "path to the project YAML file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newMFLoadsCmd(opts),
		newHeteroCmd(opts),
		newWindowUwCmd(opts),
		newShadingCmd(opts),
		newSegmentCmd(opts),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of phcalc",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "phcalc v%s\n", Version)
		},
	}
}

// load reads and builds the project named by --project.
func (o *options) load(component string) (*config.Build, error) {
	if o.project == "" {
		return nil, diagnostics.Errorf(diagnostics.InputMissing, "--project", "a project file is required")
	}
	log := config.Logger.With().Str("component", component).Logger()
	log.Info().Str("project", o.project).Msg("loading project")

	p, err := config.Load(o.project)
	if err != nil {
		return nil, err
	}
	b, report, err := p.Build()
	config.LogReport(log, component, report)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Int("rooms", len(b.Segment.Rooms)).
		Int("constructions", len(b.Constructions)).
		Int("apertures", len(b.Shading.Apertures)).
		Msg("project built")
	return b, nil
}
