package report

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/simplifiedchinese"
)

// fallbackEncodings are tried in order when a source file is not valid UTF-8.
// ISO-8859-1 maps every byte, so it always succeeds.
var fallbackEncodings = []struct {
	name string
	enc  encoding.Encoding
}{
	{"gbk", simplifiedchinese.GBK},
	{"iso-8859-1", charmap.ISO8859_1},
}

// SourceReader loads source files referenced by coverage file keys.
type SourceReader struct {
	baseDir string
	cache   map[string][]string
}

// NewSourceReader creates a SourceReader resolving file keys against baseDir.
func NewSourceReader(baseDir string) *SourceReader {
	return &SourceReader{
		baseDir: baseDir,
		cache:   make(map[string][]string),
	}
}

// Path returns the on-disk path of a coverage file key.
func (r *SourceReader) Path(fileKey string) string {
	if filepath.IsAbs(fileKey) {
		return fileKey
	}
	return filepath.Join(r.baseDir, filepath.FromSlash(fileKey))
}

// Lines returns the lines of the source file for fileKey without line
// terminators. A file that cannot be read yields a single comment line
// describing the problem, so callers can still render a window.
func (r *SourceReader) Lines(fileKey string) []string {
	if lines, ok := r.cache[fileKey]; ok {
		return lines
	}

	path := r.Path(fileKey)
	lines, err := readLines(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			lines = []string{fmt.Sprintf("// file not found: %s", path)}
		} else {
			lines = []string{fmt.Sprintf("// cannot read file: %s", path)}
		}
	}
	r.cache[fileKey] = lines
	return lines
}

func readLines(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	text, err := decode(data)
	if err != nil {
		return nil, err
	}
	return splitLines(text), nil
}

// decode returns data as UTF-8 text, trying the fallback encodings in order.
// A decoding that produces replacement characters is rejected.
func decode(data []byte) (string, error) {
	if utf8.Valid(data) {
		return string(data), nil
	}
	for _, fb := range fallbackEncodings {
		out, err := fb.enc.NewDecoder().Bytes(data)
		if err != nil || bytesContainRuneError(out) {
			continue
		}
		return string(out), nil
	}
	return "", fmt.Errorf("no matching encoding")
}

func bytesContainRuneError(b []byte) bool {
	return strings.ContainsRune(string(b), utf8.RuneError)
}

func splitLines(text string) []string {
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}
