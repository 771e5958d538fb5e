package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjy-dev/covdelta/internal/analysis"
	"github.com/zjy-dev/covdelta/internal/coverage"
)

// MarkdownReporter implements the Reporter interface by saving the
// increments and diffs of a case as markdown files.
type MarkdownReporter struct{}

// NewMarkdownReporter creates a new MarkdownReporter.
func NewMarkdownReporter() *MarkdownReporter {
	return &MarkdownReporter{}
}

// Save writes, into dir:
//   - bug_<case>_line_incremental_data.md / bug_<case>_branch_incremental_data.md
//   - correct_<case>_line_incremental_data.md / correct_<case>_branch_incremental_data.md
//   - line_diff_data.md / branch_diff_data.md
func (r *MarkdownReporter) Save(result *analysis.PairResult, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	files := []struct {
		name  string
		title string
		body  string
	}{
		{
			fmt.Sprintf("bug_%s_line_incremental_data.md", result.Name),
			fmt.Sprintf("Bug run line increment: %s", result.Name),
			coverage.FormatLineData(result.BugIncrement.Line),
		},
		{
			fmt.Sprintf("bug_%s_branch_incremental_data.md", result.Name),
			fmt.Sprintf("Bug run branch increment: %s", result.Name),
			coverage.FormatBranchData(result.BugIncrement.Branch),
		},
		{
			fmt.Sprintf("correct_%s_line_incremental_data.md", result.Name),
			fmt.Sprintf("Correct run line increment: %s", result.Name),
			coverage.FormatLineData(result.CorrectIncrement.Line),
		},
		{
			fmt.Sprintf("correct_%s_branch_incremental_data.md", result.Name),
			fmt.Sprintf("Correct run branch increment: %s", result.Name),
			coverage.FormatBranchData(result.CorrectIncrement.Branch),
		},
		{
			"line_diff_data.md",
			fmt.Sprintf("Line coverage diff: %s (first = bug, second = correct)", result.Name),
			coverage.FormatLineDiff(result.Diff.Line),
		},
		{
			"branch_diff_data.md",
			fmt.Sprintf("Branch coverage diff: %s (first = bug, second = correct)", result.Name),
			coverage.FormatBranchDiff(result.Diff.Branch),
		},
	}

	for _, f := range files {
		path := filepath.Join(dir, f.name)
		if err := os.WriteFile(path, []byte(markdownDocument(f.title, f.body)), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	return nil
}

func markdownDocument(title, body string) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if body == "" {
		sb.WriteString("_No entries._\n")
		return sb.String()
	}
	sb.WriteString("```\n")
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString("```\n")
	return sb.String()
}
