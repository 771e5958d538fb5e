package coverage

// DiffLine compares two line coverage datasets file by file. Only presence of
// a line matters: a line on both sides is left out even if its counts differ.
// Files without any difference are omitted.
func DiffLine(first, second LineCoverageData) map[string]LineCoverageDiff {
	result := make(map[string]LineCoverageDiff)
	for _, file := range unionFiles(first, second) {
		onlyFirst, onlySecond := keyDifference(first[file], second[file])
		d := LineCoverageDiff{OnlyInFirst: onlyFirst, OnlyInSecond: onlySecond}
		if !d.Empty() {
			result[file] = d
		}
	}
	return result
}

// DiffBranch is DiffLine for branch coverage.
func DiffBranch(first, second BranchCoverageData) map[string]BranchCoverageDiff {
	result := make(map[string]BranchCoverageDiff)
	for _, file := range unionFiles(first, second) {
		onlyFirst, onlySecond := keyDifference(first[file], second[file])
		d := BranchCoverageDiff{OnlyInFirst: onlyFirst, OnlyInSecond: onlySecond}
		if !d.Empty() {
			result[file] = d
		}
	}
	return result
}

// Compare diffs two reports for both coverage kinds.
func Compare(first, second *Report) *CoverageDiffResult {
	return &CoverageDiffResult{
		Line:   DiffLine(first.Line, second.Line),
		Branch: DiffBranch(first.Branch, second.Branch),
	}
}

// keyDifference returns the entries of a whose key is missing from b, and the
// entries of b whose key is missing from a. Both maps are always non-nil.
func keyDifference[V any](a, b map[int]V) (onlyA, onlyB map[int]V) {
	onlyA = make(map[int]V)
	onlyB = make(map[int]V)
	for line, v := range a {
		if _, ok := b[line]; !ok {
			onlyA[line] = v
		}
	}
	for line, v := range b {
		if _, ok := a[line]; !ok {
			onlyB[line] = v
		}
	}
	return onlyA, onlyB
}
