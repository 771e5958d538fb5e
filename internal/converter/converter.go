// Package converter turns JaCoCo execution data (.ec/.exec) into XML
// reports by running the JaCoCo CLI.
package converter

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/zjy-dev/covdelta/internal/exec"
)

// Converter defines the interface for producing an XML coverage report
// from a raw coverage dump.
type Converter interface {
	Convert(input, output string) error
}

// JaCoCoConverter runs `java -jar <jar> report ...` through an Executor.
type JaCoCoConverter struct {
	executor      exec.Executor
	javaPath      string
	cliJar        string
	classfilesDir string
	sourceDir     string
}

// Config holds the JaCoCo CLI settings.
type Config struct {
	JavaPath      string
	CLIJar        string
	ClassfilesDir string
	SourceDir     string
}

// NewJaCoCoConverter creates a new JaCoCoConverter.
func NewJaCoCoConverter(executor exec.Executor, cfg Config) *JaCoCoConverter {
	javaPath := cfg.JavaPath
	if javaPath == "" {
		javaPath = "java"
	}
	return &JaCoCoConverter{
		executor:      executor,
		javaPath:      javaPath,
		cliJar:        cfg.CLIJar,
		classfilesDir: cfg.ClassfilesDir,
		sourceDir:     cfg.SourceDir,
	}
}

// Convert writes the XML report for input to output. On failure a placeholder
// report carrying the error message is left at output, so later stages can
// still open the path, and the error is returned.
func (c *JaCoCoConverter) Convert(input, output string) error {
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	if err := c.run(input, output); err != nil {
		if perr := WritePlaceholder(output, err.Error()); perr != nil {
			return fmt.Errorf("%w (placeholder not written: %v)", err, perr)
		}
		return err
	}
	return nil
}

func (c *JaCoCoConverter) run(input, output string) error {
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("coverage dump not found: %w", err)
	}
	if c.cliJar == "" {
		return fmt.Errorf("jacoco cli jar is not configured")
	}
	if _, err := os.Stat(c.cliJar); err != nil {
		return fmt.Errorf("jacoco cli jar not found: %w", err)
	}

	args := []string{
		"-jar", c.cliJar, "report", input,
		"--classfiles", c.classfilesDir,
		"--sourcefiles", c.sourceDir,
		"--xml", output,
	}
	result, err := c.executor.Run(c.javaPath, args...)
	if err != nil {
		return fmt.Errorf("failed to run jacoco cli: %w", err)
	}
	if result.ExitCode != 0 {
		return fmt.Errorf("jacoco conversion failed with exit code %d: %s", result.ExitCode, strings.TrimSpace(result.Stderr))
	}
	return nil
}

// WritePlaceholder writes an empty JaCoCo report whose session info carries
// message. The result parses to empty coverage.
func WritePlaceholder(path, message string) error {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString(`<!DOCTYPE report PUBLIC "-//JACOCO//DTD Report 1.1//EN" "report.dtd">` + "\n")
	buf.WriteString(`<report name="Coverage Report">` + "\n")
	buf.WriteString(`  <sessioninfo id="placeholder-error" start="0" dump="0">` + "\n")
	buf.WriteString("    <error>")
	if err := xml.EscapeText(&buf, []byte(message)); err != nil {
		return err
	}
	buf.WriteString("</error>\n")
	buf.WriteString("  </sessioninfo>\n")
	buf.WriteString("</report>\n")

	return os.WriteFile(path, buf.Bytes(), 0644)
}

// NeedsConversion reports whether path is a raw JaCoCo dump rather than an
// XML report.
func NeedsConversion(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ec", ".exec":
		return true
	}
	return false
}
