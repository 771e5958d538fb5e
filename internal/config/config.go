package config

import (
	"fmt"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/viper"

	"github.com/zjy-dev/covdelta/internal/analysis"
)

// ReportConfig controls where and how reports are written.
type ReportConfig struct {
	OutputDir string `mapstructure:"output_dir"`
	// SourceDir is the root that coverage file keys are resolved against
	// when rendering source lines.
	SourceDir    string `mapstructure:"source_dir"`
	ContextLines int    `mapstructure:"context_lines"`
}

// JaCoCoConfig holds the settings of the JaCoCo CLI used to turn execution
// data (.ec/.exec) into XML reports.
type JaCoCoConfig struct {
	JavaPath      string `mapstructure:"java_path"`
	CLIJar        string `mapstructure:"cli_jar"`
	ClassfilesDir string `mapstructure:"classfiles_dir"`
	SourceDir     string `mapstructure:"source_dir"`
	// Timeout in seconds for one conversion.
	Timeout int `mapstructure:"timeout"`
}

// Config is the top-level configuration, read from the "config" key.
type Config struct {
	LogLevel        string              `mapstructure:"log_level"`
	LogDir          string              `mapstructure:"log_dir"`
	Report          ReportConfig        `mapstructure:"report"`
	JaCoCo          JaCoCoConfig        `mapstructure:"jacoco"`
	ContinueOnError bool                `mapstructure:"continue_on_error"`
	Cases           []analysis.PairCase `mapstructure:"cases"`
}

// Default values applied before the config file is read.
const (
	DefaultLogLevel     = "info"
	DefaultOutputDir    = "covdelta_out"
	DefaultContextLines = 5
	DefaultJavaPath     = "java"
	DefaultTimeout      = 120
)

// Load reads a configuration file from the "configs" directory into a struct.
// The configName parameter should be the base name of the file without the extension (e.g., "config").
// The result parameter should be a pointer to a struct that the configuration will be unmarshaled into.
func Load(configName string, result interface{}) error {
	v := newViper()
	v.SetConfigName(configName)
	v.AddConfigPath("configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := v.Unmarshal(result); err != nil {
		return fmt.Errorf("failed to unmarshal config data: %w", err)
	}

	return nil
}

// LoadConfig reads configs/config.yaml and returns its "config" section with
// defaults applied.
func LoadConfig() (*Config, error) {
	var file configFile
	if err := Load("config", &file); err != nil {
		return nil, err
	}
	return &file.Config, nil
}

// LoadConfigFile is LoadConfig for an explicit file path.
func LoadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var file configFile
	if err := v.Unmarshal(&file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	return &file.Config, nil
}

// Validate checks the case list and report settings. All problems are
// reported together.
func (c *Config) Validate() error {
	var result *multierror.Error

	if c.Report.ContextLines < 0 {
		result = multierror.Append(result, fmt.Errorf("report.context_lines must not be negative, got %d", c.Report.ContextLines))
	}
	if len(c.Cases) == 0 {
		result = multierror.Append(result, fmt.Errorf("no cases configured"))
	}

	seen := make(map[string]bool)
	for i, tc := range c.Cases {
		if tc.Name == "" {
			result = multierror.Append(result, fmt.Errorf("case %d: name is required", i))
			continue
		}
		// The name becomes a directory under report.output_dir.
		if filepath.Base(tc.Name) != tc.Name || tc.Name == "." || tc.Name == ".." {
			result = multierror.Append(result, fmt.Errorf("case %q: name must be a plain file name", tc.Name))
		}
		if seen[tc.Name] {
			result = multierror.Append(result, fmt.Errorf("case %q: duplicate name", tc.Name))
		}
		seen[tc.Name] = true

		for _, f := range []struct{ name, path string }{
			{"bug.before", tc.Bug.Before},
			{"bug.after", tc.Bug.After},
			{"correct.before", tc.Correct.Before},
			{"correct.after", tc.Correct.After},
		} {
			if f.path == "" {
				result = multierror.Append(result, fmt.Errorf("case %q: %s is required", tc.Name, f.name))
			}
		}

		switch tc.Format {
		case "", "jacoco", "gocover":
		default:
			result = multierror.Append(result, fmt.Errorf("case %q: unknown format %q", tc.Name, tc.Format))
		}
	}

	return result.ErrorOrNil()
}

type configFile struct {
	Config Config `mapstructure:"config"`
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetDefault("config.log_level", DefaultLogLevel)
	v.SetDefault("config.report.output_dir", DefaultOutputDir)
	v.SetDefault("config.report.context_lines", DefaultContextLines)
	v.SetDefault("config.jacoco.java_path", DefaultJavaPath)
	v.SetDefault("config.jacoco.timeout", DefaultTimeout)
	return v
}
