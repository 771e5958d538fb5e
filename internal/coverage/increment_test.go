package coverage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineIncrement(t *testing.T) {
	t.Run("empty baseline returns current", func(t *testing.T) {
		current := LineCoverageData{"a.java": {3: 1}}
		assert.Equal(t, LineCoverageData{"a.java": {3: 1}}, LineIncrement(LineCoverageData{}, current))
	})

	t.Run("both empty", func(t *testing.T) {
		assert.Empty(t, LineIncrement(nil, nil))
	})

	t.Run("additions only yield exactly the added lines", func(t *testing.T) {
		baseline := LineCoverageData{
			"a.java": {1: 2, 2: 1},
		}
		current := LineCoverageData{
			"a.java": {1: 2, 2: 1, 5: 7},
			"b.java": {10: 1},
		}
		assert.Equal(t, LineCoverageData{
			"a.java": {5: 7},
			"b.java": {10: 1},
		}, LineIncrement(baseline, current))
	})

	t.Run("lines covered in baseline never qualify", func(t *testing.T) {
		baseline := LineCoverageData{"a.java": {1: 1, 2: 5}}
		current := LineCoverageData{"a.java": {1: 100, 2: 5}}
		assert.Empty(t, LineIncrement(baseline, current))
	})

	t.Run("line going from zero to covered qualifies", func(t *testing.T) {
		baseline := LineCoverageData{"a.java": {1: 0, 2: 0}}
		current := LineCoverageData{"a.java": {1: 3, 2: 0}}
		assert.Equal(t, LineCoverageData{"a.java": {1: 3}}, LineIncrement(baseline, current))
	})

	t.Run("files only in baseline are dropped", func(t *testing.T) {
		baseline := LineCoverageData{"gone.java": {1: 1}}
		current := LineCoverageData{}
		assert.Empty(t, LineIncrement(baseline, current))
	})

	t.Run("inputs are not modified", func(t *testing.T) {
		baseline := LineCoverageData{"a.java": {1: 1}}
		current := LineCoverageData{"a.java": {1: 1, 2: 2}}
		_ = LineIncrement(baseline, current)
		assert.Equal(t, LineCoverageData{"a.java": {1: 1}}, baseline)
		assert.Equal(t, LineCoverageData{"a.java": {1: 1, 2: 2}}, current)
	})
}

func TestBranchIncrement(t *testing.T) {
	tests := []struct {
		name     string
		baseline BranchCounts
		current  BranchCounts
		included bool
	}{
		{"same total, more covered", BranchCounts{1, 4}, BranchCounts{2, 4}, true},
		{"same total, same covered", BranchCounts{2, 4}, BranchCounts{2, 4}, false},
		{"same total, fewer covered", BranchCounts{3, 4}, BranchCounts{1, 4}, false},
		{"total grew, some covered", BranchCounts{2, 2}, BranchCounts{1, 4}, true},
		{"total grew, none covered", BranchCounts{0, 2}, BranchCounts{0, 4}, false},
		{"total shrank, more covered", BranchCounts{0, 4}, BranchCounts{2, 2}, false},
		{"total shrank, same covered", BranchCounts{1, 4}, BranchCounts{1, 2}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			baseline := BranchCoverageData{"a.java": {7: tt.baseline}}
			current := BranchCoverageData{"a.java": {7: tt.current}}

			got := BranchIncrement(baseline, current)
			if tt.included {
				assert.Equal(t, BranchCoverageData{"a.java": {7: tt.current}}, got)
			} else {
				assert.Empty(t, got)
			}
		})
	}

	t.Run("new branch lines qualify even when uncovered", func(t *testing.T) {
		baseline := BranchCoverageData{"a.java": {1: {1, 2}}}
		current := BranchCoverageData{
			"a.java": {1: {1, 2}, 9: {0, 2}},
			"b.java": {3: {2, 2}},
		}
		assert.Equal(t, BranchCoverageData{
			"a.java": {9: {0, 2}},
			"b.java": {3: {2, 2}},
		}, BranchIncrement(baseline, current))
	})
}

func TestIncrement(t *testing.T) {
	before := &Report{
		Line:   LineCoverageData{"a.java": {1: 1}},
		Branch: BranchCoverageData{"a.java": {1: {0, 2}}},
	}
	after := &Report{
		Line:   LineCoverageData{"a.java": {1: 1, 2: 1}},
		Branch: BranchCoverageData{"a.java": {1: {1, 2}}},
	}

	inc := Increment(before, after)
	assert.Equal(t, LineCoverageData{"a.java": {2: 1}}, inc.Line)
	assert.Equal(t, BranchCoverageData{"a.java": {1: {1, 2}}}, inc.Branch)
}
