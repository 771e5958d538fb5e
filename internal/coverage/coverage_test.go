package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedLines(t *testing.T) {
	assert.Equal(t, []int{1, 5, 12}, SortedLines(map[int]int{12: 1, 1: 3, 5: 0}))
	assert.Empty(t, SortedLines(map[int]BranchCounts{}))
}

func TestFilesAndTotals(t *testing.T) {
	lines := LineCoverageData{
		"b.java": {1: 1, 2: 1},
		"a.java": {3: 1},
	}
	assert.Equal(t, []string{"a.java", "b.java"}, lines.Files())
	assert.Equal(t, 3, lines.TotalLines())

	branches := BranchCoverageData{"x.java": {1: {1, 2}}}
	assert.Equal(t, []string{"x.java"}, branches.Files())
	assert.Equal(t, 1, branches.TotalLines())

	assert.Empty(t, LineCoverageData(nil).Files())
	assert.Zero(t, BranchCoverageData(nil).TotalLines())
}

func TestUnionFiles(t *testing.T) {
	a := LineCoverageData{"b.java": {1: 1}, "a.java": {1: 1}}
	b := LineCoverageData{"c.java": {1: 1}, "a.java": {2: 1}}
	assert.Equal(t, []string{"a.java", "b.java", "c.java"}, unionFiles(a, b))
}

func TestDiffEmpty(t *testing.T) {
	assert.True(t, LineCoverageDiff{}.Empty())
	assert.False(t, LineCoverageDiff{OnlyInSecond: map[int]int{1: 1}}.Empty())
	assert.True(t, BranchCoverageDiff{OnlyInFirst: map[int]BranchCounts{}}.Empty())
}

func TestReportFiles(t *testing.T) {
	r := &Report{
		Line:   LineCoverageData{"b.java": {1: 1}, "a.java": {2: 1}},
		Branch: BranchCoverageData{"c.java": {3: {1, 2}}, "a.java": {2: {1, 2}}},
	}
	assert.Equal(t, []string{"a.java", "b.java", "c.java"}, r.Files())
	assert.Empty(t, (&Report{}).Files())
}
