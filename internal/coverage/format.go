package coverage

import (
	"fmt"
	"strings"
)

// FormatLineData renders line coverage (or a line increment) as text.
func FormatLineData(data LineCoverageData) string {
	var sb strings.Builder
	for _, file := range data.Files() {
		sb.WriteString(fmt.Sprintf("===== File: %s =====\n", file))
		lines := data[file]
		for _, line := range SortedLines(lines) {
			sb.WriteString(formatLineEntry(line, lines[line]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatBranchData renders branch coverage (or a branch increment) as text.
func FormatBranchData(data BranchCoverageData) string {
	var sb strings.Builder
	for _, file := range data.Files() {
		sb.WriteString(fmt.Sprintf("===== File: %s =====\n", file))
		lines := data[file]
		for _, line := range SortedLines(lines) {
			sb.WriteString(formatBranchEntry(line, lines[line]))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatLineDiff renders a per-file line diff as text. An empty diff renders
// as an empty string.
func FormatLineDiff(diff map[string]LineCoverageDiff) string {
	if len(diff) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("========== Line Coverage Diff ==========\n\n")
	for _, file := range sortedFiles(diff) {
		d := diff[file]
		sb.WriteString(fmt.Sprintf("File: %s\n", file))
		if len(d.OnlyInFirst) > 0 {
			sb.WriteString("  Only in first:\n")
			for _, line := range SortedLines(d.OnlyInFirst) {
				sb.WriteString("    " + formatLineEntry(line, d.OnlyInFirst[line]))
			}
		}
		if len(d.OnlyInSecond) > 0 {
			sb.WriteString("  Only in second:\n")
			for _, line := range SortedLines(d.OnlyInSecond) {
				sb.WriteString("    " + formatLineEntry(line, d.OnlyInSecond[line]))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatBranchDiff renders a per-file branch diff as text.
func FormatBranchDiff(diff map[string]BranchCoverageDiff) string {
	if len(diff) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("========== Branch Coverage Diff ==========\n\n")
	for _, file := range sortedFiles(diff) {
		d := diff[file]
		sb.WriteString(fmt.Sprintf("File: %s\n", file))
		if len(d.OnlyInFirst) > 0 {
			sb.WriteString("  Only in first:\n")
			for _, line := range SortedLines(d.OnlyInFirst) {
				sb.WriteString("    " + formatBranchEntry(line, d.OnlyInFirst[line]))
			}
		}
		if len(d.OnlyInSecond) > 0 {
			sb.WriteString("  Only in second:\n")
			for _, line := range SortedLines(d.OnlyInSecond) {
				sb.WriteString("    " + formatBranchEntry(line, d.OnlyInSecond[line]))
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatLineEntry(line, hits int) string {
	return fmt.Sprintf("Line %d: covered %d times\n", line, hits)
}

func formatBranchEntry(line int, b BranchCounts) string {
	return fmt.Sprintf("Line %d: %d of %d branches covered\n", line, b.Covered, b.Total)
}

// String renders the counts as "covered/total".
func (b BranchCounts) String() string {
	return fmt.Sprintf("%d/%d", b.Covered, b.Total)
}
