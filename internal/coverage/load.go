package coverage

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Report formats understood by LoadReport.
const (
	FormatJaCoCo  = "jacoco"
	FormatGoCover = "gocover"
)

// DetectFormat guesses the format of a coverage file from its extension.
// Go cover profiles are usually written as .out or .cov; everything else is
// treated as JaCoCo XML.
func DetectFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".out", ".cov":
		return FormatGoCover
	default:
		return FormatJaCoCo
	}
}

// LoadReport parses the coverage file at path. An empty format is detected
// from the file extension.
func LoadReport(path, format string) (*Report, error) {
	if format == "" {
		format = DetectFormat(path)
	}
	switch format {
	case FormatJaCoCo:
		return ParseJaCoCoFile(path)
	case FormatGoCover:
		return ParseGoProfiles(path)
	default:
		return nil, fmt.Errorf("unknown coverage format %q", format)
	}
}
