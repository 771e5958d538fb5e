// Package workflow runs the paired-case pipeline: convert raw coverage dumps,
// parse snapshots, compute increments and their diff, and write reports.
package workflow

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/zjy-dev/covdelta/internal/analysis"
	"github.com/zjy-dev/covdelta/internal/converter"
	"github.com/zjy-dev/covdelta/internal/coverage"
	"github.com/zjy-dev/covdelta/internal/report"
)

// Logger is the logging surface the runner needs. logger.Default() satisfies it.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// Config holds the collaborators and settings of a Runner.
type Config struct {
	Logger Logger

	// Converter turns .ec/.exec dumps into XML. Only needed when a case
	// references such files.
	Converter converter.Converter

	// Analyzer defaults to analysis.NewDeltaAnalyzer().
	Analyzer analysis.Analyzer

	// Reporters write the per-case artifacts into <OutputDir>/<case>/.
	Reporters []report.Reporter

	OutputDir string

	// ContinueOnError keeps running the remaining cases after a failure.
	// All failures are returned together at the end.
	ContinueOnError bool
}

// Result is the outcome of a run.
type Result struct {
	Cases     []*analysis.PairResult
	Failed    map[string]error
	IndexPath string
}

// Runner executes paired cases.
type Runner struct {
	cfg Config
}

// NewRunner creates a new Runner.
func NewRunner(cfg Config) *Runner {
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	if cfg.Analyzer == nil {
		cfg.Analyzer = analysis.NewDeltaAnalyzer()
	}
	return &Runner{cfg: cfg}
}

// Run analyzes every case in order and writes index.html into the output
// directory. Without ContinueOnError the first failing case stops the run;
// the index is still written for the cases processed so far.
func (r *Runner) Run(cases []analysis.PairCase) (*Result, error) {
	if len(cases) == 0 {
		return nil, fmt.Errorf("no cases to run")
	}
	if err := os.MkdirAll(r.cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &Result{Failed: make(map[string]error)}
	var entries []report.IndexEntry
	var errs *multierror.Error

	for i, tc := range cases {
		r.cfg.Logger.Infof("[%d/%d] Analyzing case %s", i+1, len(cases), tc.Name)

		res, err := r.runCase(tc)
		if err != nil {
			err = fmt.Errorf("case %s: %w", tc.Name, err)
			r.cfg.Logger.Errorf("%v", err)
			result.Failed[tc.Name] = err
			entries = append(entries, report.IndexEntry{Name: tc.Name, Err: err})
			errs = multierror.Append(errs, err)
			if !r.cfg.ContinueOnError {
				break
			}
			continue
		}

		if !res.HasDivergence() {
			r.cfg.Logger.Warnf("Case %s: bug and correct runs gained the same coverage", tc.Name)
		}
		t := res.Totals()
		r.cfg.Logger.Infof("Case %s: bug-only %d lines / %d branches, correct-only %d lines / %d branches",
			tc.Name, t.BugLines, t.BugBranches, t.CorrectLines, t.CorrectBranches)
		result.Cases = append(result.Cases, res)
		entries = append(entries, report.IndexEntry{Name: tc.Name, Result: res})
	}

	if err := report.WriteIndex(entries, r.cfg.OutputDir); err != nil {
		errs = multierror.Append(errs, err)
	} else {
		result.IndexPath = filepath.Join(r.cfg.OutputDir, "index.html")
		r.cfg.Logger.Infof("Index written to %s", result.IndexPath)
	}

	return result, errs.ErrorOrNil()
}

func (r *Runner) runCase(tc analysis.PairCase) (*analysis.PairResult, error) {
	caseDir := filepath.Join(r.cfg.OutputDir, tc.Name)
	if err := os.MkdirAll(caseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create case directory: %w", err)
	}

	bug, err := r.loadArm(tc, "bug", tc.Bug, caseDir)
	if err != nil {
		return nil, err
	}
	correct, err := r.loadArm(tc, "correct", tc.Correct, caseDir)
	if err != nil {
		return nil, err
	}

	res := r.cfg.Analyzer.AnalyzePair(tc.Name, bug, correct)

	for _, rep := range r.cfg.Reporters {
		if err := rep.Save(res, caseDir); err != nil {
			return nil, fmt.Errorf("failed to write report: %w", err)
		}
	}
	return res, nil
}

func (r *Runner) loadArm(tc analysis.PairCase, arm string, snaps analysis.Snapshots, caseDir string) (analysis.ReportPair, error) {
	before, err := r.loadSnapshot(tc, snaps.Before, filepath.Join(caseDir, arm+"_before"))
	if err != nil {
		return analysis.ReportPair{}, fmt.Errorf("%s before: %w", arm, err)
	}
	after, err := r.loadSnapshot(tc, snaps.After, filepath.Join(caseDir, arm+"_after"))
	if err != nil {
		return analysis.ReportPair{}, fmt.Errorf("%s after: %w", arm, err)
	}
	return analysis.ReportPair{Before: before, After: after}, nil
}

// loadSnapshot parses path, converting raw JaCoCo dumps to XML under workDir first.
func (r *Runner) loadSnapshot(tc analysis.PairCase, path, workDir string) (*coverage.Report, error) {
	format := tc.Format
	if converter.NeedsConversion(path) {
		if r.cfg.Converter == nil {
			return nil, fmt.Errorf("%s needs conversion but no converter is configured", path)
		}
		xmlPath := filepath.Join(workDir, "coverage.xml")
		r.cfg.Logger.Debugf("Converting %s -> %s", path, xmlPath)
		if err := r.cfg.Converter.Convert(path, xmlPath); err != nil {
			return nil, err
		}
		path, format = xmlPath, coverage.FormatJaCoCo
	}

	rep, err := coverage.LoadReport(path, format)
	if err != nil {
		return nil, err
	}
	r.cfg.Logger.Debugf("Parsed %s: %d covered lines, %d branch lines", path, rep.Line.TotalLines(), rep.Branch.TotalLines())
	return rep, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...interface{}) {}
func (nopLogger) Infof(string, ...interface{})  {}
func (nopLogger) Warnf(string, ...interface{})  {}
func (nopLogger) Errorf(string, ...interface{}) {}
