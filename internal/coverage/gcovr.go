package coverage

import (
	"path/filepath"
	"sort"

	"github.com/zjy-dev/gcovr-json-util/v2/pkg/gcovr"
)

// UncoveredLines flattens a gcovr-json-util UncoveredReport into
// file -> ascending, de-duplicated uncovered line numbers.
//
// Parameters:
//   - report: the gcovr UncoveredReport to convert (nil yields an empty map)
//   - sourceParentPath: base path joined in front of every relative file path
//     (empty keeps the paths as reported)
func UncoveredLines(report *gcovr.UncoveredReport, sourceParentPath string) map[string][]int {
	result := make(map[string][]int)
	if report == nil {
		return result
	}

	for _, file := range report.Files {
		path := file.FilePath
		if sourceParentPath != "" && !filepath.IsAbs(path) {
			path = filepath.Join(sourceParentPath, path)
		}

		seen := make(map[int]struct{})
		for _, fn := range file.UncoveredFunctions {
			for _, line := range fn.UncoveredLineNumbers {
				seen[line] = struct{}{}
			}
		}
		if len(seen) == 0 {
			continue
		}

		lines := append(result[path], SortedLines(seen)...)
		sort.Ints(lines)
		result[path] = dedupSorted(lines)
	}
	return result
}

func dedupSorted(lines []int) []int {
	out := make([]int, 0, len(lines))
	for _, line := range lines {
		if n := len(out); n > 0 && out[n-1] == line {
			continue
		}
		out = append(out, line)
	}
	return out
}
