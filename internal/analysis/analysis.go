package analysis

import (
	"sort"

	"github.com/zjy-dev/covdelta/internal/coverage"
)

// Snapshots holds the report paths captured around the property phase of one
// execution arm.
type Snapshots struct {
	Before string `mapstructure:"before"`
	After  string `mapstructure:"after"`
}

// PairCase is one test case executed twice: once against the buggy build and
// once against the correct build.
type PairCase struct {
	Name    string    `mapstructure:"name"`
	Bug     Snapshots `mapstructure:"bug"`
	Correct Snapshots `mapstructure:"correct"`
	// Format of the snapshot files: "jacoco" (default) or "gocover".
	Format string `mapstructure:"format"`
}

// ReportPair is the parsed form of Snapshots.
type ReportPair struct {
	Before *coverage.Report
	After  *coverage.Report
}

// PairResult is the outcome of analyzing one PairCase.
type PairResult struct {
	Name             string
	BugIncrement     *coverage.Report
	CorrectIncrement *coverage.Report
	// Diff compares the bug increment (first) with the correct increment (second).
	Diff *coverage.CoverageDiffResult
}

// FileSummary counts the differing lines of one file.
type FileSummary struct {
	File            string
	BugLines        int
	CorrectLines    int
	BugBranches     int
	CorrectBranches int
}

// Analyzer defines the interface for comparing the two arms of a case.
type Analyzer interface {
	// AnalyzePair computes the increment of each arm and the difference between them.
	AnalyzePair(name string, bug, correct ReportPair) *PairResult
}

// DeltaAnalyzer implements Analyzer with the coverage increment and differ.
type DeltaAnalyzer struct{}

// NewDeltaAnalyzer creates a new DeltaAnalyzer.
func NewDeltaAnalyzer() *DeltaAnalyzer {
	return &DeltaAnalyzer{}
}

// AnalyzePair implements Analyzer.
func (a *DeltaAnalyzer) AnalyzePair(name string, bug, correct ReportPair) *PairResult {
	bugInc := coverage.Increment(bug.Before, bug.After)
	correctInc := coverage.Increment(correct.Before, correct.After)

	return &PairResult{
		Name:             name,
		BugIncrement:     bugInc,
		CorrectIncrement: correctInc,
		Diff:             coverage.Compare(bugInc, correctInc),
	}
}

// Summary returns one entry per file that differs in either coverage kind,
// ordered by file path.
func (r *PairResult) Summary() []FileSummary {
	byFile := make(map[string]*FileSummary)
	get := func(file string) *FileSummary {
		s, ok := byFile[file]
		if !ok {
			s = &FileSummary{File: file}
			byFile[file] = s
		}
		return s
	}

	for file, d := range r.Diff.Line {
		s := get(file)
		s.BugLines = len(d.OnlyInFirst)
		s.CorrectLines = len(d.OnlyInSecond)
	}
	for file, d := range r.Diff.Branch {
		s := get(file)
		s.BugBranches = len(d.OnlyInFirst)
		s.CorrectBranches = len(d.OnlyInSecond)
	}

	out := make([]FileSummary, 0, len(byFile))
	for _, s := range byFile {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].File < out[j].File })
	return out
}

// Totals sums Summary over all files. The File field is left empty.
func (r *PairResult) Totals() FileSummary {
	var total FileSummary
	for _, s := range r.Summary() {
		total.BugLines += s.BugLines
		total.CorrectLines += s.CorrectLines
		total.BugBranches += s.BugBranches
		total.CorrectBranches += s.CorrectBranches
	}
	return total
}

// HasDivergence reports whether the two arms covered different code.
func (r *PairResult) HasDivergence() bool {
	return len(r.Diff.Line) > 0 || len(r.Diff.Branch) > 0
}
