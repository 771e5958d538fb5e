package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewShowCommand creates the "show" subcommand.
func NewShowCommand(global *globalOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "show <report>",
		Short: "Print the covered lines of a single report.",
		Long: `Parse one coverage report and print its covered lines and branch lines.

Examples:
  covdelta show jacoco.xml
  covdelta show --format gocover --kind line cover.out`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKind(kind); err != nil {
				return err
			}
			r, err := global.loadReport(args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if r.Line.TotalLines() == 0 && r.Branch.TotalLines() == 0 {
				fmt.Fprintf(out, "%s: no covered lines\n", args[0])
				return nil
			}
			printReport(out, r, kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindAll, "Coverage kind to print: line, branch or all")

	return cmd
}
