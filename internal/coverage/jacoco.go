package coverage

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ParseError reports a coverage report that could not be read into the
// package/sourcefile/line hierarchy. No partial data accompanies it.
type ParseError struct {
	Path string // empty when parsing from a reader
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("failed to parse coverage report: %v", e.Err)
	}
	return fmt.Sprintf("failed to parse coverage report %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// JaCoCo XML layout. Packages hang off the report root or off nested groups.
type jacocoNode struct {
	Groups   []jacocoNode    `xml:"group"`
	Packages []jacocoPackage `xml:"package"`
}

type jacocoPackage struct {
	Name        string             `xml:"name,attr"`
	SourceFiles []jacocoSourceFile `xml:"sourcefile"`
}

type jacocoSourceFile struct {
	Name  string       `xml:"name,attr"`
	Lines []jacocoLine `xml:"line"`
}

// Counters are kept as strings so that an absent attribute defaults to 0
// while a malformed one is reported.
type jacocoLine struct {
	Nr string `xml:"nr,attr"`
	CI string `xml:"ci,attr"`
	MB string `xml:"mb,attr"`
	CB string `xml:"cb,attr"`
}

// ParseJaCoCoFile parses the JaCoCo XML report at path.
func ParseJaCoCoFile(path string) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	defer f.Close()

	report, err := ParseJaCoCo(f)
	if err != nil {
		if pe, ok := err.(*ParseError); ok {
			pe.Path = path
		}
		return nil, err
	}
	return report, nil
}

// ParseJaCoCo parses a JaCoCo XML report into line and branch coverage.
func ParseJaCoCo(r io.Reader) (*Report, error) {
	root, err := decodeRoot(xml.NewDecoder(r))
	if err != nil {
		return nil, &ParseError{Err: err}
	}

	report := &Report{
		Line:   make(LineCoverageData),
		Branch: make(BranchCoverageData),
	}
	if err := root.collect(report); err != nil {
		return nil, &ParseError{Err: err}
	}
	return report, nil
}

// decodeRoot decodes the single root element of d. Only the prolog
// (declaration, doctype, comments, whitespace) may precede it and only
// comments, processing instructions and whitespace may follow it.
func decodeRoot(d *xml.Decoder) (*jacocoNode, error) {
	var root jacocoNode
	found := false
	for !found {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return nil, fmt.Errorf("no root element: %w", io.ErrUnexpectedEOF)
			}
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.DecodeElement(&root, &t); err != nil {
				return nil, err
			}
			found = true
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("unexpected text before root element")
			}
		}
	}

	for {
		tok, err := d.Token()
		if err == io.EOF {
			return &root, nil
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return nil, fmt.Errorf("unexpected element <%s> after root element", t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				return nil, fmt.Errorf("unexpected text after root element")
			}
		}
	}
}

// ParseLineCoverage parses a JaCoCo XML report and returns its line coverage.
func ParseLineCoverage(r io.Reader) (LineCoverageData, error) {
	report, err := ParseJaCoCo(r)
	if err != nil {
		return nil, err
	}
	return report.Line, nil
}

// ParseBranchCoverage parses a JaCoCo XML report and returns its branch coverage.
func ParseBranchCoverage(r io.Reader) (BranchCoverageData, error) {
	report, err := ParseJaCoCo(r)
	if err != nil {
		return nil, err
	}
	return report.Branch, nil
}

func (n *jacocoNode) collect(report *Report) error {
	for i := range n.Packages {
		if err := n.Packages[i].collect(report); err != nil {
			return err
		}
	}
	for i := range n.Groups {
		if err := n.Groups[i].collect(report); err != nil {
			return err
		}
	}
	return nil
}

func (p *jacocoPackage) collect(report *Report) error {
	for _, sf := range p.SourceFiles {
		if sf.Name == "" {
			continue
		}
		path := sf.Name
		if p.Name != "" {
			path = p.Name + "/" + sf.Name
		}

		lines := make(map[int]int)
		branches := make(map[int]BranchCounts)
		for _, l := range sf.Lines {
			nr, err := counter(l.Nr, "nr")
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			ci, err := counter(l.CI, "ci")
			if err != nil {
				return fmt.Errorf("%s line %d: %w", path, nr, err)
			}
			mb, err := counter(l.MB, "mb")
			if err != nil {
				return fmt.Errorf("%s line %d: %w", path, nr, err)
			}
			cb, err := counter(l.CB, "cb")
			if err != nil {
				return fmt.Errorf("%s line %d: %w", path, nr, err)
			}

			// Uncovered lines are dropped; uncovered branches are kept.
			if ci > 0 {
				lines[nr] = ci
			}
			if total := mb + cb; total > 0 {
				branches[nr] = BranchCounts{Covered: cb, Total: total}
			}
		}

		if len(lines) > 0 {
			report.Line[path] = lines
		}
		if len(branches) > 0 {
			report.Branch[path] = branches
		}
	}
	return nil
}

func counter(value, name string) (int, error) {
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s attribute %q: %w", name, value, err)
	}
	return n, nil
}
