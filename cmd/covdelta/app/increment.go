package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covdelta/internal/coverage"
)

// NewIncrementCommand creates the "increment" subcommand.
func NewIncrementCommand(global *globalOptions) *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "increment <before> <after>",
		Short: "Print the coverage gained between two snapshots.",
		Long: `Print the lines and branches that are covered in <after> but were not
covered in <before>.

A line counts as gained when its hit count goes from zero (or absent) to
positive. A branch line counts as gained when its covered branch count grows.

Examples:
  covdelta increment before.xml after.xml
  covdelta increment --kind branch before.xml after.xml`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKind(kind); err != nil {
				return err
			}
			before, err := global.loadReport(args[0])
			if err != nil {
				return err
			}
			after, err := global.loadReport(args[1])
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), coverage.Increment(before, after), kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindAll, "Coverage kind to print: line, branch or all")

	return cmd
}

func printReport(out io.Writer, inc *coverage.Report, kind string) {
	if wantLine(kind) {
		fmt.Fprint(out, coverage.FormatLineData(inc.Line))
	}
	if wantBranch(kind) {
		fmt.Fprint(out, coverage.FormatBranchData(inc.Branch))
	}
	printReportTable(out, inc)
}

// printReportTable prints per-file line and branch-line counts of a report.
func printReportTable(out io.Writer, r *coverage.Report) {
	var rows [][]string
	for _, f := range r.Files() {
		rows = append(rows, []string{f, itoa(len(r.Line[f])), itoa(len(r.Branch[f]))})
	}
	renderTable(out,
		[]string{"File", "Lines", "Branch lines"},
		rows,
		[]string{"Total", itoa(r.Line.TotalLines()), itoa(r.Branch.TotalLines())},
	)
}
