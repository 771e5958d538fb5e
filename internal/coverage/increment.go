package coverage

// LineIncrement returns the lines of current that are new relative to baseline:
// lines absent from baseline, and lines whose baseline hit count is 0 while
// current's is positive. A line already covered in baseline never qualifies,
// whatever its current count.
func LineIncrement(baseline, current LineCoverageData) LineCoverageData {
	result := make(LineCoverageData)
	for _, file := range unionFiles(baseline, current) {
		before := baseline[file]
		added := make(map[int]int)
		for line, count := range current[file] {
			prev, ok := before[line]
			if !ok || (prev == 0 && count > 0) {
				added[line] = count
			}
		}
		if len(added) > 0 {
			result[file] = added
		}
	}
	return result
}

// BranchIncrement returns the branch lines of current that are new or improved
// relative to baseline. A line qualifies when it is absent from baseline, when
// its total is unchanged and strictly more branches are covered, or when its
// total grew and at least one branch is covered. A shrinking total never
// qualifies.
func BranchIncrement(baseline, current BranchCoverageData) BranchCoverageData {
	result := make(BranchCoverageData)
	for _, file := range unionFiles(baseline, current) {
		before := baseline[file]
		added := make(map[int]BranchCounts)
		for line, cur := range current[file] {
			prev, ok := before[line]
			switch {
			case !ok:
				added[line] = cur
			case cur.Total == prev.Total && cur.Covered > prev.Covered:
				added[line] = cur
			case cur.Total > prev.Total && cur.Covered > 0:
				// Qualifies even if fewer branches are covered than before.
				added[line] = cur
			}
		}
		if len(added) > 0 {
			result[file] = added
		}
	}
	return result
}

// Increment computes both line and branch increments from baseline to current.
func Increment(baseline, current *Report) *Report {
	return &Report{
		Line:   LineIncrement(baseline.Line, current.Line),
		Branch: BranchIncrement(baseline.Branch, current.Branch),
	}
}
