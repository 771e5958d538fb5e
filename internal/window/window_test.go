package window

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func lineRange(start, end int) []Entry {
	var entries []Entry
	for l := start; l <= end; l++ {
		entries = append(entries, Entry{Line: l})
	}
	return entries
}

func sep() []Entry { return []Entry{{Separator: true}} }

func concat(parts ...[]Entry) []Entry {
	var out []Entry
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}

func TestWindows(t *testing.T) {
	tests := []struct {
		name          string
		lines         []int
		fileLineCount int
		context       int
		want          []Entry
	}{
		{
			name:          "empty input",
			lines:         nil,
			fileLineCount: 100,
			context:       5,
			want:          nil,
		},
		{
			name:          "overlapping windows merge",
			lines:         []int{10, 12},
			fileLineCount: 20,
			context:       1,
			want:          lineRange(9, 13),
		},
		{
			name:          "distant lines get a separator",
			lines:         []int{5, 50},
			fileLineCount: 100,
			context:       2,
			want:          concat(lineRange(3, 7), sep(), lineRange(48, 52)),
		},
		{
			name:          "clamped at file start",
			lines:         []int{1},
			fileLineCount: 10,
			context:       5,
			want:          lineRange(1, 6),
		},
		{
			name:          "clamped at file end",
			lines:         []int{10},
			fileLineCount: 10,
			context:       3,
			want:          lineRange(7, 10),
		},
		{
			name:          "one-line gap keeps windows apart",
			lines:         []int{2, 6},
			fileLineCount: 20,
			context:       1,
			// [1,3] and [5,7] are separated by line 4, so they stay apart
			want: concat(lineRange(1, 3), sep(), lineRange(5, 7)),
		},
		{
			name:          "adjacent windows merge",
			lines:         []int{2, 5},
			fileLineCount: 20,
			context:       1,
			// [1,3] and [4,6]: start 4 <= end 3 + 1
			want: lineRange(1, 6),
		},
		{
			name:          "unsorted and duplicate input",
			lines:         []int{30, 10, 10, 30},
			fileLineCount: 40,
			context:       0,
			want:          concat(lineRange(10, 10), sep(), lineRange(30, 30)),
		},
		{
			name:          "contained window does not shrink span",
			lines:         []int{10, 11},
			fileLineCount: 100,
			context:       5,
			want:          lineRange(5, 16),
		},
		{
			name:          "line beyond file end yields no rows",
			lines:         []int{5, 50},
			fileLineCount: 10,
			context:       2,
			want:          lineRange(3, 7),
		},
		{
			name:          "only lines beyond file end",
			lines:         []int{50, 60},
			fileLineCount: 10,
			context:       0,
			want:          nil,
		},
		{
			name:          "three groups",
			lines:         []int{1, 20, 40},
			fileLineCount: 41,
			context:       1,
			want: concat(lineRange(1, 2), sep(), lineRange(19, 21), sep(),
				lineRange(39, 41)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Windows(tt.lines, tt.fileLineCount, tt.context)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Windows(%v, %d, %d) mismatch (-want +got):\n%s",
					tt.lines, tt.fileLineCount, tt.context, diff)
			}
		})
	}
}

func TestWindows_SeparatorPlacement(t *testing.T) {
	entries := Windows([]int{3, 30, 60, 90}, 100, 2)

	assert.False(t, entries[0].Separator, "separator must not come first")
	assert.False(t, entries[len(entries)-1].Separator, "separator must not come last")
	separators := 0
	for i, e := range entries {
		if !e.Separator {
			continue
		}
		separators++
		assert.False(t, entries[i+1].Separator, "separators must not be consecutive")
		assert.Zero(t, e.Line)
	}
	assert.Equal(t, 3, separators)
}

func TestSpans(t *testing.T) {
	t.Run("should merge overlapping spans", func(t *testing.T) {
		spans := Spans([]int{10, 12}, 20, 1)
		assert.Equal(t, []Span{{Start: 9, End: 13}}, spans)
	})

	t.Run("should keep disjoint spans sorted", func(t *testing.T) {
		spans := Spans([]int{50, 5}, 100, 2)
		assert.Equal(t, []Span{{Start: 3, End: 7}, {Start: 48, End: 52}}, spans)
	})

	t.Run("should return nil for no lines", func(t *testing.T) {
		assert.Nil(t, Spans(nil, 10, 2))
	})

	t.Run("zero-length file clamps to empty span", func(t *testing.T) {
		spans := Spans([]int{1}, 0, 2)
		assert.Equal(t, []Span{{Start: 1, End: 0}}, spans)
		assert.Empty(t, Windows([]int{1}, 0, 2))
	})
}
