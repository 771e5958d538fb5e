package report

import "github.com/zjy-dev/covdelta/internal/analysis"

// Reporter defines the interface for writing the artifacts of an analyzed case.
type Reporter interface {
	// Save writes the reports for result into dir.
	Save(result *analysis.PairResult, dir string) error
}
