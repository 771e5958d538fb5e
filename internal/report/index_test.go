package report

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexMarkdown(t *testing.T) {
	entries := []IndexEntry{
		{Name: "login", Result: sampleResult()},
		{Name: "pay|ment", Err: errors.New("failed to parse coverage report:\n  bad xml")},
	}

	md := IndexMarkdown(entries)
	assert.Contains(t, md, "Analyzed **2** case pairs, **1** failed.")
	assert.Contains(t, md, "| login | 2 | 0 | 1 | 0 | [line](login/login_line_diff_report.html) / [branch](login/login_branch_diff_report.html) |")
	assert.Contains(t, md, `| pay\|ment | - | - | - | - | failed: failed to parse coverage report: bad xml |`)
}

func TestIndexMarkdown_NoCases(t *testing.T) {
	md := IndexMarkdown(nil)
	assert.Contains(t, md, "Analyzed **0** case pairs.")
	assert.NotContains(t, md, "## Cases")
}

func TestWriteIndex(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, WriteIndex([]IndexEntry{{Name: "login", Result: sampleResult()}}, dir))

	content, err := os.ReadFile(filepath.Join(dir, "index.html"))
	require.NoError(t, err)
	html := string(content)

	assert.Contains(t, html, "<title>Coverage divergence report</title>")
	assert.Contains(t, html, "<table>")
	assert.Contains(t, html, `<a href="login/login_line_diff_report.html">line</a>`)
	assert.Contains(t, html, "<strong>1</strong>")
}

func TestCaseLink(t *testing.T) {
	assert.Equal(t, "my%20case/my%20case_line_diff_report.html", caseLink("my case", LineReportName("my case")))
}
