package report

import (
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/zjy-dev/covdelta/internal/analysis"
	"github.com/zjy-dev/covdelta/internal/coverage"
	"github.com/zjy-dev/covdelta/internal/window"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed templates/style.css
var styleCSS string

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

const (
	lineReportSuffix   = "_line_diff_report.html"
	branchReportSuffix = "_branch_diff_report.html"
)

// LineReportName returns the file name of the line diff page of a case.
func LineReportName(caseName string) string {
	return caseName + lineReportSuffix
}

// BranchReportName returns the file name of the branch diff page of a case.
func BranchReportName(caseName string) string {
	return caseName + branchReportSuffix
}

type diffPage struct {
	Title     string
	Kind      string
	Generated string
	Style     template.CSS
	Tree      []*treeNode
	Files     []fileSection
}

type fileSection struct {
	Anchor    string
	Path      string
	SourceURL template.URL
	Panels    []panel
}

type panel struct {
	Title string
	Rows  []row
}

type row struct {
	Line      int
	Text      string
	Class     string
	Note      string
	Separator bool
}

// HTMLReporter writes side-by-side diff pages for line and branch coverage.
type HTMLReporter struct {
	sources      *SourceReader
	contextLines int
	now          func() time.Time
}

// NewHTMLReporter creates a new HTMLReporter. sourceDir is the root that
// coverage file keys resolve against; contextLines is the number of lines
// shown around every differing line.
func NewHTMLReporter(sourceDir string, contextLines int) *HTMLReporter {
	return &HTMLReporter{
		sources:      NewSourceReader(sourceDir),
		contextLines: contextLines,
		now:          time.Now,
	}
}

// Save writes <case>_line_diff_report.html and <case>_branch_diff_report.html into dir.
func (r *HTMLReporter) Save(result *analysis.PairResult, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	linePage := r.page(result.Name, "line", result.Diff.LineFiles(), func(file string) []panel {
		d := result.Diff.Line[file]
		source := r.sources.Lines(file)
		return []panel{
			r.panel("Lines only in the bug run", "bug-line", source, coverage.SortedLines(d.OnlyInFirst), nil),
			r.panel("Lines only in the correct run", "correct-line", source, coverage.SortedLines(d.OnlyInSecond), nil),
		}
	})
	if err := writePage(filepath.Join(dir, LineReportName(result.Name)), "diff.html", linePage); err != nil {
		return err
	}

	branchPage := r.page(result.Name, "branch", result.Diff.BranchFiles(), func(file string) []panel {
		d := result.Diff.Branch[file]
		source := r.sources.Lines(file)
		return []panel{
			r.panel("Branches only in the bug run", "bug-line", source, coverage.SortedLines(d.OnlyInFirst), branchNote(d.OnlyInFirst)),
			r.panel("Branches only in the correct run", "correct-line", source, coverage.SortedLines(d.OnlyInSecond), branchNote(d.OnlyInSecond)),
		}
	})
	return writePage(filepath.Join(dir, BranchReportName(result.Name)), "diff.html", branchPage)
}

func (r *HTMLReporter) page(caseName, kind string, files []string, panels func(file string) []panel) diffPage {
	anchors := make(map[string]string, len(files))
	sections := make([]fileSection, 0, len(files))
	for i, file := range files {
		anchor := fmt.Sprintf("file-%d", i)
		anchors[file] = anchor
		sections = append(sections, fileSection{
			Anchor:    anchor,
			Path:      file,
			SourceURL: template.URL((&url.URL{Scheme: "file", Path: absPath(r.sources.Path(file))}).String()),
			Panels:    panels(file),
		})
	}

	return diffPage{
		Title:     fmt.Sprintf("%s %s coverage diff", caseName, kind),
		Kind:      kind,
		Generated: r.now().Format("2006-01-02 15:04:05"),
		Style:     template.CSS(styleCSS),
		Tree:      buildTree(files, anchors),
		Files:     sections,
	}
}

// panel renders the context windows around lines. Lines past the end of the
// source still get a row so that every differing line is visible.
func (r *HTMLReporter) panel(title, hitClass string, source []string, lines []int, note func(int) string) panel {
	p := panel{Title: title}
	if len(lines) == 0 {
		return p
	}

	hit := make(map[int]bool, len(lines))
	for _, line := range lines {
		hit[line] = true
	}

	lineCount := max(len(source), lines[len(lines)-1])
	for _, e := range window.Windows(lines, lineCount, r.contextLines) {
		if e.Separator {
			p.Rows = append(p.Rows, row{Separator: true})
			continue
		}

		rw := row{Line: e.Line, Class: "context-line"}
		if e.Line <= len(source) {
			rw.Text = source[e.Line-1]
		} else {
			rw.Text = "// line out of range"
			rw.Class = "context-line out-of-range"
		}
		if hit[e.Line] {
			rw.Class = hitClass
			if note != nil {
				rw.Note = note(e.Line)
			}
		}
		p.Rows = append(p.Rows, rw)
	}
	return p
}

func branchNote(m map[int]coverage.BranchCounts) func(int) string {
	return func(line int) string {
		return "branches: " + m[line].String()
	}
}

func writePage(path, name string, data any) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := templates.ExecuteTemplate(f, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}
	return f.Close()
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return filepath.ToSlash(abs)
	}
	return filepath.ToSlash(path)
}
