// Package cli wires the cobra command tree around the calculation
// packages. Commands load input, call one core entry point, and render
// the result; no calculation logic lives here.
package cli

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/carbonforge/cbamcalc/internal/config"
)

// isTerminal checks if the given file is a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// rootOptions holds the persistent flag values shared by every command.
type rootOptions struct {
	configPath string
	debug      bool
	output     string
	refdata    string
}

// NewRootCmd creates the root cobra command for the cbamcalc CLI.
// It wires up config loading, logging, and the subcommands
// (emissions, pcf, projection, compare, formula).
func NewRootCmd(ver string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:     "cbamcalc",
		Short:   "Installation emission and carbon-border cost calculator",
		Long:    "cbamcalc computes installation greenhouse-gas emissions, allocates them to products, and projects carbon-border costs under alternative scenarios.",
		Version: ver,
		Example: rootCmdExample,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			setupLogging(cmd, cfg, opts)
			cmd.SetContext(commandContext(cmd, cfg, opts, ver))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to config file (default: user config dir)")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging to the console")
	cmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "", "Output format: table or json")
	cmd.PersistentFlags().StringVar(&opts.refdata, "refdata", "", "Path to an alternate reference-table pack (YAML)")

	cmd.AddCommand(
		NewEmissionsCmd(),
		NewPCFCmd(),
		NewProjectionCmd(),
		NewCompareCmd(),
		NewFormulaCmd(),
	)

	return cmd
}

// loadConfig resolves the global config, honoring the --config flag,
// then shallow-merges a project-local cbamcalc.yaml from the working
// directory on top when one exists.
func loadConfig(opts *rootOptions) (*config.Config, error) {
	path := opts.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if wd, wdErr := os.Getwd(); wdErr == nil {
		if overlay := config.ProjectOverlayPath(wd); overlay != "" {
			if err := config.ShallowMergeYAML(cfg, overlay); err != nil {
				return nil, err
			}
		}
	}
	return cfg, nil
}

const rootCmdExample = `  # Aggregate emissions from an activity export
  cbamcalc emissions -f activity.json

  # Allocate to products and report SEE
  cbamcalc pcf -f activity.json --residue-waste

  # Nine-year cost projection for computed intensity
  cbamcalc projection -f activity.json --product billet --imports 110000

  # Compare certificate price scenarios
  cbamcalc compare -f activity.json --product billet --imports 110000`
