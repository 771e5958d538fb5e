package report

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/zjy-dev/covdelta/internal/analysis"
)

// IndexEntry is one case listed on the index page. Exactly one of Result
// and Err is set.
type IndexEntry struct {
	Name   string
	Result *analysis.PairResult
	Err    error
}

type indexPage struct {
	Title     string
	Generated string
	Style     template.CSS
	Body      template.HTML
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Table))

// WriteIndex writes index.html into dir, linking the diff pages of every case.
// Case pages are expected under dir/<case>/.
func WriteIndex(entries []IndexEntry, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}

	var body bytes.Buffer
	if err := markdown.Convert([]byte(IndexMarkdown(entries)), &body); err != nil {
		return fmt.Errorf("failed to render index markdown: %w", err)
	}

	page := indexPage{
		Title:     "Coverage divergence report",
		Generated: time.Now().Format("2006-01-02 15:04:05"),
		Style:     template.CSS(styleCSS),
		Body:      template.HTML(body.String()),
	}
	return writePage(filepath.Join(dir, "index.html"), "index.html", page)
}

// IndexMarkdown returns the markdown summary shown on the index page.
func IndexMarkdown(entries []IndexEntry) string {
	failed := 0
	for _, e := range entries {
		if e.Err != nil {
			failed++
		}
	}

	var sb strings.Builder
	sb.WriteString("## Overview\n\n")
	sb.WriteString(fmt.Sprintf("Analyzed **%d** case pairs", len(entries)))
	if failed > 0 {
		sb.WriteString(fmt.Sprintf(", **%d** failed", failed))
	}
	sb.WriteString(".\n\n")

	if len(entries) == 0 {
		return sb.String()
	}

	sb.WriteString("## Cases\n\n")
	sb.WriteString("| Case | Bug-only lines | Correct-only lines | Bug-only branches | Correct-only branches | Reports |\n")
	sb.WriteString("|---|---:|---:|---:|---:|---|\n")
	for _, e := range entries {
		name := escapeCell(e.Name)
		if e.Err != nil {
			sb.WriteString(fmt.Sprintf("| %s | - | - | - | - | failed: %s |\n", name, escapeCell(e.Err.Error())))
			continue
		}
		t := e.Result.Totals()
		sb.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | [line](%s) / [branch](%s) |\n",
			name, t.BugLines, t.CorrectLines, t.BugBranches, t.CorrectBranches,
			caseLink(e.Name, LineReportName(e.Name)), caseLink(e.Name, BranchReportName(e.Name))))
	}
	return sb.String()
}

func caseLink(caseName, file string) string {
	return path.Join(url.PathEscape(caseName), url.PathEscape(file))
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.Join(strings.Fields(s), " ")
}
