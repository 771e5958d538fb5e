package app

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covdelta/internal/coverage"
)

// NewDiffCommand creates the "diff" subcommand.
func NewDiffCommand(global *globalOptions) *cobra.Command {
	var (
		kind       string
		increments bool
	)

	cmd := &cobra.Command{
		Use:   "diff <first> <second>",
		Short: "Print the lines covered by only one of two reports.",
		Long: `Print the lines and branch lines present in exactly one of two coverage
reports. Hit counts are ignored; only presence matters.

With --increments the command takes four reports, the before and after
snapshots of the bug run followed by those of the correct run, and diffs
the two increments.

Examples:
  covdelta diff bug.xml correct.xml
  covdelta diff --increments bug_before.xml bug_after.xml correct_before.xml correct_after.xml`,
		Args: func(cmd *cobra.Command, args []string) error {
			if increments {
				return cobra.ExactArgs(4)(cmd, args)
			}
			return cobra.ExactArgs(2)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKind(kind); err != nil {
				return err
			}

			reports := make([]*coverage.Report, len(args))
			for i, path := range args {
				r, err := global.loadReport(path)
				if err != nil {
					return err
				}
				reports[i] = r
			}

			first, second := reports[0], reports[1]
			if increments {
				first = coverage.Increment(reports[0], reports[1])
				second = coverage.Increment(reports[2], reports[3])
			}
			printDiff(cmd.OutOrStdout(), coverage.Compare(first, second), kind)
			return nil
		},
	}

	cmd.Flags().StringVar(&kind, "kind", kindAll, "Coverage kind to print: line, branch or all")
	cmd.Flags().BoolVar(&increments, "increments", false, "Diff the increments of two before/after snapshot pairs")

	return cmd
}

func printDiff(out io.Writer, diff *coverage.CoverageDiffResult, kind string) {
	if len(diff.Line) == 0 && len(diff.Branch) == 0 {
		fmt.Fprintln(out, "No coverage differences.")
		return
	}

	if wantLine(kind) {
		fmt.Fprint(out, coverage.FormatLineDiff(diff.Line))
	}
	if wantBranch(kind) {
		fmt.Fprint(out, coverage.FormatBranchDiff(diff.Branch))
	}

	var rows [][]string
	if wantLine(kind) {
		for _, f := range diff.LineFiles() {
			d := diff.Line[f]
			rows = append(rows, []string{f, kindLine, itoa(len(d.OnlyInFirst)), itoa(len(d.OnlyInSecond))})
		}
	}
	if wantBranch(kind) {
		for _, f := range diff.BranchFiles() {
			d := diff.Branch[f]
			rows = append(rows, []string{f, kindBranch, itoa(len(d.OnlyInFirst)), itoa(len(d.OnlyInSecond))})
		}
	}
	renderTable(out, []string{"File", "Kind", "Only in first", "Only in second"}, rows, nil)
}
