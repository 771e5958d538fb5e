package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covdelta/internal/coverage"
	"github.com/zjy-dev/covdelta/internal/logger"
)

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	logLevel string
	format   string
}

// NewCovdeltaCommand creates the root command for the covdelta tool.
func NewCovdeltaCommand() *cobra.Command {
	opts := &globalOptions{}

	cmd := &cobra.Command{
		Use:   "covdelta",
		Short: "Compare incremental coverage between a buggy and a correct run.",
		Long: `covdelta isolates the lines and branches that became covered between two
coverage snapshots, and compares that incremental coverage between a run
that reproduces a bug and a run that behaves correctly.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			switch opts.format {
			case "", coverage.FormatJaCoCo, coverage.FormatGoCover:
			default:
				return fmt.Errorf("unknown --format %q (want %s or %s)", opts.format, coverage.FormatJaCoCo, coverage.FormatGoCover)
			}
			logger.SetLevel(opts.logLevel)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "", "Input format: jacoco or gocover (default: inferred from the file extension)")

	cmd.AddCommand(NewAnalyzeCommand(opts))
	cmd.AddCommand(NewIncrementCommand(opts))
	cmd.AddCommand(NewDiffCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewUncoveredCommand())

	return cmd
}

// loadReport parses one coverage file using the global --format.
func (o *globalOptions) loadReport(path string) (*coverage.Report, error) {
	logger.Debug("Loading coverage report %s", path)
	return coverage.LoadReport(path, o.format)
}
