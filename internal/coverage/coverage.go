// Package coverage holds the coverage data model and the pure functions that
// turn coverage snapshots into incremental coverage and per-file differences.
package coverage

import (
	"sort"
)

// LineCoverageData maps file path -> line number -> hit count.
// A file is present only if it has at least one line; a line is present only
// if the source report observed it.
type LineCoverageData map[string]map[int]int

// BranchCounts is the branch coverage of a single line.
type BranchCounts struct {
	Covered int `json:"covered"`
	Total   int `json:"total"`
}

// BranchCoverageData maps file path -> line number -> branch counts.
// Only lines with Total > 0 are present.
type BranchCoverageData map[string]map[int]BranchCounts

// LineCoverageDiff holds the lines of one file that exist on only one side.
type LineCoverageDiff struct {
	OnlyInFirst  map[int]int `json:"only_in_first"`
	OnlyInSecond map[int]int `json:"only_in_second"`
}

// BranchCoverageDiff holds the branch lines of one file that exist on only one side.
type BranchCoverageDiff struct {
	OnlyInFirst  map[int]BranchCounts `json:"only_in_first"`
	OnlyInSecond map[int]BranchCounts `json:"only_in_second"`
}

// Empty reports whether neither side has any line.
func (d LineCoverageDiff) Empty() bool {
	return len(d.OnlyInFirst) == 0 && len(d.OnlyInSecond) == 0
}

// Empty reports whether neither side has any line.
func (d BranchCoverageDiff) Empty() bool {
	return len(d.OnlyInFirst) == 0 && len(d.OnlyInSecond) == 0
}

// CoverageDiffResult is the per-file difference of two coverage datasets,
// for both line and branch coverage.
type CoverageDiffResult struct {
	Line   map[string]LineCoverageDiff   `json:"line_coverage_diff"`
	Branch map[string]BranchCoverageDiff `json:"branch_coverage_diff"`
}

// Report is one parsed coverage snapshot.
type Report struct {
	Line   LineCoverageData
	Branch BranchCoverageData
}

// Files returns the file paths in lexicographic order.
func (d LineCoverageData) Files() []string {
	return sortedFiles(d)
}

// Files returns the file paths in lexicographic order.
func (d BranchCoverageData) Files() []string {
	return sortedFiles(d)
}

// Files returns every file with line or branch data, in lexicographic order.
func (r *Report) Files() []string {
	seen := make(map[string]struct{}, len(r.Line)+len(r.Branch))
	for file := range r.Line {
		seen[file] = struct{}{}
	}
	for file := range r.Branch {
		seen[file] = struct{}{}
	}
	return sortedFiles(seen)
}

// TotalLines returns the number of (file, line) entries.
func (d LineCoverageData) TotalLines() int {
	n := 0
	for _, lines := range d {
		n += len(lines)
	}
	return n
}

// TotalLines returns the number of (file, line) entries.
func (d BranchCoverageData) TotalLines() int {
	n := 0
	for _, lines := range d {
		n += len(lines)
	}
	return n
}

// LineFiles returns the files of the line diff in lexicographic order.
func (r *CoverageDiffResult) LineFiles() []string {
	return sortedFiles(r.Line)
}

// BranchFiles returns the files of the branch diff in lexicographic order.
func (r *CoverageDiffResult) BranchFiles() []string {
	return sortedFiles(r.Branch)
}

// SortedLines returns the line numbers of m in ascending order.
func SortedLines[V any](m map[int]V) []int {
	lines := make([]int, 0, len(m))
	for line := range m {
		lines = append(lines, line)
	}
	sort.Ints(lines)
	return lines
}

func sortedFiles[V any](m map[string]V) []string {
	files := make([]string, 0, len(m))
	for file := range m {
		files = append(files, file)
	}
	sort.Strings(files)
	return files
}

// unionFiles returns the union of the file keys of a and b, sorted.
func unionFiles[V any](a, b map[string]map[int]V) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for file := range a {
		seen[file] = struct{}{}
	}
	for file := range b {
		seen[file] = struct{}{}
	}
	return sortedFiles(seen)
}
