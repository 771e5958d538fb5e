package coverage

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleProfile = `mode: count
example.com/m/a.go:3.14,5.2 2 3
example.com/m/a.go:5.2,7.3 1 1
example.com/m/a.go:9.1,10.2 1 0
example.com/m/b.go:1.1,2.2 1 0
`

func TestParseGoProfiles(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cover.out")
	require.NoError(t, os.WriteFile(path, []byte(sampleProfile), 0644))

	report, err := ParseGoProfiles(path)
	require.NoError(t, err)

	// line 5 is shared by two blocks and keeps the higher count
	assert.Equal(t, LineCoverageData{
		"example.com/m/a.go": {3: 3, 4: 3, 5: 3, 6: 1, 7: 1},
	}, report.Line)
	assert.Empty(t, report.Branch)
}

func TestParseGoProfilesFromReader(t *testing.T) {
	report, err := ParseGoProfilesFromReader(strings.NewReader(sampleProfile))
	require.NoError(t, err)
	assert.Equal(t, []string{"example.com/m/a.go"}, report.Line.Files())

	_, err = ParseGoProfilesFromReader(strings.NewReader("not a profile\n"))
	var pe *ParseError
	assert.True(t, errors.As(err, &pe))
}

func TestParseGoProfiles_MissingFile(t *testing.T) {
	_, err := ParseGoProfiles(filepath.Join(t.TempDir(), "missing.out"))
	var pe *ParseError
	require.True(t, errors.As(err, &pe))
	assert.Contains(t, pe.Path, "missing.out")
}
