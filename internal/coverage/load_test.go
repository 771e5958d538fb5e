package coverage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := map[string]string{
		"coverage.xml":  FormatJaCoCo,
		"report":        FormatJaCoCo,
		"cover.out":     FormatGoCover,
		"unit.COV":      FormatGoCover,
		"dir.out/a.xml": FormatJaCoCo,
	}
	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, DetectFormat(path))
		})
	}
}

func TestLoadReport(t *testing.T) {
	dir := t.TempDir()
	xmlPath := filepath.Join(dir, "coverage.xml")
	outPath := filepath.Join(dir, "cover.out")
	require.NoError(t, os.WriteFile(xmlPath, []byte(sampleReport), 0644))
	require.NoError(t, os.WriteFile(outPath, []byte(sampleProfile), 0644))

	t.Run("should detect jacoco", func(t *testing.T) {
		report, err := LoadReport(xmlPath, "")
		require.NoError(t, err)
		assert.Contains(t, report.Line, "com/example/app/Main.java")
	})

	t.Run("should detect go profiles", func(t *testing.T) {
		report, err := LoadReport(outPath, "")
		require.NoError(t, err)
		assert.Contains(t, report.Line, "example.com/m/a.go")
	})

	t.Run("should honor an explicit format", func(t *testing.T) {
		_, err := LoadReport(outPath, FormatJaCoCo)
		assert.Error(t, err)
	})

	t.Run("should reject unknown formats", func(t *testing.T) {
		_, err := LoadReport(xmlPath, "lcov")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown coverage format")
	})
}
