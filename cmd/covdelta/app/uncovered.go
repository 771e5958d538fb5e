package app

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/zjy-dev/gcovr-json-util/v2/pkg/gcovr"

	"github.com/zjy-dev/covdelta/internal/coverage"
	"github.com/zjy-dev/covdelta/internal/report"
	"github.com/zjy-dev/covdelta/internal/window"
)

// NewUncoveredCommand creates the "uncovered" subcommand.
func NewUncoveredCommand() *cobra.Command {
	var (
		sourceDir    string
		contextLines int
	)

	cmd := &cobra.Command{
		Use:   "uncovered <uncovered.json>",
		Short: "Print the uncovered lines of a gcovr uncovered report with context.",
		Long: `Read an uncovered-lines report produced by gcovr-json-util and print every
uncovered line together with the surrounding source.

Relative file paths in the report are resolved against --source-dir.

Examples:
  covdelta uncovered --source-dir /src/gcc uncovered.json
  covdelta uncovered --context 2 uncovered.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read uncovered report: %w", err)
			}
			var rep gcovr.UncoveredReport
			if err := json.Unmarshal(data, &rep); err != nil {
				return fmt.Errorf("failed to parse uncovered report: %w", err)
			}

			uncovered := coverage.UncoveredLines(&rep, sourceDir)
			printUncovered(cmd.OutOrStdout(), uncovered, report.NewSourceReader(""), contextLines)
			return nil
		},
	}

	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "Base directory for relative source paths")
	cmd.Flags().IntVar(&contextLines, "context", 3, "Context lines shown around each uncovered line")

	return cmd
}

func printUncovered(out io.Writer, uncovered map[string][]int, sources *report.SourceReader, context int) {
	if len(uncovered) == 0 {
		fmt.Fprintln(out, "No uncovered lines.")
		return
	}

	var rows [][]string
	total := 0
	for _, file := range sortedKeys(uncovered) {
		lines := uncovered[file]
		src := sources.Lines(file)
		marked := make(map[int]bool, len(lines))
		for _, l := range lines {
			marked[l] = true
		}

		fmt.Fprintf(out, "===== File: %s =====\n", file)
		for _, e := range window.Windows(lines, max(len(src), lines[len(lines)-1]), context) {
			if e.Separator {
				fmt.Fprintln(out, "  ...")
				continue
			}
			text := "// line out of range"
			if e.Line <= len(src) {
				text = src[e.Line-1]
			}
			mark := " "
			if marked[e.Line] {
				mark = ">"
			}
			fmt.Fprintf(out, "%s %5d | %s\n", mark, e.Line, text)
		}
		fmt.Fprintln(out)

		rows = append(rows, []string{file, itoa(len(lines))})
		total += len(lines)
	}
	renderTable(out, []string{"File", "Uncovered lines"}, rows, []string{"Total", itoa(total)})
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
