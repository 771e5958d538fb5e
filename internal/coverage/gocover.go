package coverage

import (
	"io"

	"golang.org/x/tools/cover"
)

// ParseGoProfiles parses a Go coverage profile (go test -coverprofile) at path.
// Go profiles carry no branch counters, so the returned branch data is empty.
func ParseGoProfiles(path string) (*Report, error) {
	profiles, err := cover.ParseProfiles(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return fromProfiles(profiles), nil
}

// ParseGoProfilesFromReader is ParseGoProfiles over an io.Reader.
func ParseGoProfilesFromReader(r io.Reader) (*Report, error) {
	profiles, err := cover.ParseProfilesFromReader(r)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return fromProfiles(profiles), nil
}

// fromProfiles spreads each block's count over the lines it spans. A line
// covered by several blocks keeps the highest count.
func fromProfiles(profiles []*cover.Profile) *Report {
	report := &Report{
		Line:   make(LineCoverageData),
		Branch: make(BranchCoverageData),
	}
	for _, p := range profiles {
		lines := report.Line[p.FileName]
		if lines == nil {
			lines = make(map[int]int)
		}
		for _, b := range p.Blocks {
			if b.Count <= 0 {
				continue
			}
			for line := b.StartLine; line <= b.EndLine; line++ {
				if b.Count > lines[line] {
					lines[line] = b.Count
				}
			}
		}
		if len(lines) > 0 {
			report.Line[p.FileName] = lines
		}
	}
	return report
}
