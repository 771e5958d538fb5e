package app

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/zjy-dev/covdelta/internal/analysis"
	"github.com/zjy-dev/covdelta/internal/config"
	"github.com/zjy-dev/covdelta/internal/converter"
	"github.com/zjy-dev/covdelta/internal/exec"
	"github.com/zjy-dev/covdelta/internal/logger"
	"github.com/zjy-dev/covdelta/internal/report"
	"github.com/zjy-dev/covdelta/internal/workflow"
)

// NewAnalyzeCommand creates the "analyze" subcommand.
func NewAnalyzeCommand(global *globalOptions) *cobra.Command {
	var (
		configPath      string
		outputDir       string
		sourceDir       string
		contextLines    int
		continueOnError bool
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze the configured bug/correct case pairs.",
		Long: `Analyze every case pair listed in the configuration.

For each case this command:
  1. Converts raw JaCoCo dumps (.ec/.exec) to XML with the JaCoCo CLI
  2. Parses the four coverage snapshots
  3. Computes the increment of the bug run and of the correct run
  4. Diffs the two increments
  5. Writes markdown data files and side-by-side HTML diff pages

Output directory structure:
  {output_dir}/
    ├── index.html
    └── {case}/
        ├── {case}_line_diff_report.html
        ├── {case}_branch_diff_report.html
        ├── bug_{case}_line_incremental_data.md
        ├── ...
        └── {arm}_{phase}/coverage.xml   # converted dumps

Configuration:
  Values are loaded from configs/config.yaml (or --config) under the 'config' key.
  Command line flags override the config file values.

Examples:
  # Analyze with settings from configs/config.yaml
  covdelta analyze

  # Use another config file and show more context
  covdelta analyze --config cases.yaml --context 10`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				cfg *config.Config
				err error
			)
			if configPath != "" {
				cfg, err = config.LoadConfigFile(configPath)
			} else {
				cfg, err = config.LoadConfig()
			}
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			// Use config values as defaults, command line flags override
			if cmd.Flags().Changed("output") {
				cfg.Report.OutputDir = outputDir
			}
			if cmd.Flags().Changed("source-dir") {
				cfg.Report.SourceDir = sourceDir
			}
			if cmd.Flags().Changed("context") {
				cfg.Report.ContextLines = contextLines
			}
			if cmd.Flags().Changed("continue-on-error") {
				cfg.ContinueOnError = continueOnError
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = global.logLevel
			}
			logger.SetLevel(cfg.LogLevel)
			if global.format != "" {
				for i := range cfg.Cases {
					if cfg.Cases[i].Format == "" {
						cfg.Cases[i].Format = global.format
					}
				}
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid config: %w", err)
			}
			return runAnalyze(cmd.OutOrStdout(), cfg)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to the config file (default: configs/config.yaml)")
	cmd.Flags().StringVar(&outputDir, "output", config.DefaultOutputDir, "Output directory for reports")
	cmd.Flags().StringVar(&sourceDir, "source-dir", "", "Source root used to render code in HTML reports")
	cmd.Flags().IntVar(&contextLines, "context", config.DefaultContextLines, "Context lines shown around each differing line")
	cmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Keep analyzing remaining cases after a failure")

	return cmd
}

func runAnalyze(out io.Writer, cfg *config.Config) error {
	if cfg.LogDir != "" {
		if err := logger.InitWithFile(cfg.LogLevel, cfg.LogDir); err != nil {
			return err
		}
		defer logger.Close()
		logger.Info("Logging to %s", logger.GetLogFilePath())
	}

	logger.Info("Analyzing %d cases, output: %s", len(cfg.Cases), cfg.Report.OutputDir)

	conv := converter.NewJaCoCoConverter(
		exec.NewCommandExecutor(time.Duration(cfg.JaCoCo.Timeout)*time.Second),
		converter.Config{
			JavaPath:      cfg.JaCoCo.JavaPath,
			CLIJar:        cfg.JaCoCo.CLIJar,
			ClassfilesDir: cfg.JaCoCo.ClassfilesDir,
			SourceDir:     cfg.JaCoCo.SourceDir,
		},
	)

	runner := workflow.NewRunner(workflow.Config{
		Logger:    logger.Default(),
		Converter: conv,
		Reporters: []report.Reporter{
			report.NewMarkdownReporter(),
			report.NewHTMLReporter(cfg.Report.SourceDir, cfg.Report.ContextLines),
		},
		OutputDir:       cfg.Report.OutputDir,
		ContinueOnError: cfg.ContinueOnError,
	})

	result, runErr := runner.Run(cfg.Cases)
	if result != nil {
		if n := len(result.Failed); n > 0 {
			logger.Warn("%d of %d cases failed", n, len(cfg.Cases))
		}
		printAnalyzeSummary(out, result)
	}
	return runErr
}

func printAnalyzeSummary(out io.Writer, result *workflow.Result) {
	var rows [][]string
	var total analysis.FileSummary
	for _, res := range result.Cases {
		t := res.Totals()
		total.BugLines += t.BugLines
		total.CorrectLines += t.CorrectLines
		total.BugBranches += t.BugBranches
		total.CorrectBranches += t.CorrectBranches
		rows = append(rows, []string{res.Name, itoa(len(res.Summary())), itoa(t.BugLines), itoa(t.CorrectLines), itoa(t.BugBranches), itoa(t.CorrectBranches)})
	}
	for _, name := range sortedKeys(result.Failed) {
		rows = append(rows, []string{name, "failed", "-", "-", "-", "-"})
	}

	renderTable(out,
		[]string{"Case", "Files", "Bug-only lines", "Correct-only lines", "Bug-only branches", "Correct-only branches"},
		rows,
		[]string{"Total", "", itoa(total.BugLines), itoa(total.CorrectLines), itoa(total.BugBranches), itoa(total.CorrectBranches)},
	)
	if result.IndexPath != "" {
		fmt.Fprintf(out, "Report: %s\n", result.IndexPath)
	}
}
