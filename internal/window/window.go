// Package window turns a sparse set of interesting line numbers into the
// contiguous, context-padded line ranges shown in a side-by-side diff view.
package window

import "sort"

// Span is a closed interval of 1-based line numbers.
type Span struct {
	Start int
	End   int
}

// Entry is one row of a display window. A separator entry carries no line
// number and marks a gap between two spans.
type Entry struct {
	Line      int
	Separator bool
}

// Spans pads every interesting line with context lines on both sides, clamps
// the result to [1, fileLineCount], and merges spans that overlap or touch.
// Duplicate lines are allowed. fileLineCount and context are not validated.
func Spans(lines []int, fileLineCount, context int) []Span {
	if len(lines) == 0 {
		return nil
	}

	candidates := make([]Span, 0, len(lines))
	for _, line := range lines {
		candidates = append(candidates, Span{
			Start: max(1, line-context),
			End:   min(fileLineCount, line+context),
		})
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Start < candidates[j].Start
	})

	merged := make([]Span, 0, len(candidates))
	cur := candidates[0]
	for _, next := range candidates[1:] {
		if next.Start <= cur.End+1 {
			cur.End = max(cur.End, next.End)
			continue
		}
		merged = append(merged, cur)
		cur = next
	}
	return append(merged, cur)
}

// Windows expands Spans into display rows: every line of every span in
// ascending order, with exactly one separator between consecutive spans.
// Empty spans, left by lines beyond fileLineCount, produce no rows.
func Windows(lines []int, fileLineCount, context int) []Entry {
	var entries []Entry
	for _, s := range Spans(lines, fileLineCount, context) {
		if s.Start > s.End {
			continue
		}
		if len(entries) > 0 {
			entries = append(entries, Entry{Separator: true})
		}
		for line := s.Start; line <= s.End; line++ {
			entries = append(entries, Entry{Line: line})
		}
	}
	return entries
}
