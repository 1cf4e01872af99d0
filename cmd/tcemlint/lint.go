package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tcemlint"
)

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Lint CSS/Less classes and markup references",
	Long: `Check stylesheets against the TCEM naming grammar and the UI-pyramid
layering rules, and markup files against the classes those stylesheets define.
Detects malformed names, styled behaviour hooks, misplaced state classes and
undefined references.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, _ []string) error {
		return runLint()
	},
}

func init() {
	f := lintCmd.Flags()
	f.String("source", "styles", "Stylesheet root directory")
	f.StringSlice("styles", []string{
		"layers/**/*.less",
		"layers/**/*.css",
	}, "Glob patterns below the source directory for stylesheets")
	f.StringSlice("markup", []string{
		"templates/**/*.html",
		"templates/**/*.templ",
	}, "File patterns to scan for class references")
	f.Bool("strict", false, "Exit 1 on any issue (CI mode)")
	f.Float64("threshold", 0.0, "Minimum class usage percentage for strict mode")
	f.String("output-format", "", "Output format: issues|summary|full|json|markdown")
	f.Int("max-issues", 0, "Max issues to show (0=unlimited)")
	f.Int("max-same-issues", 0, "Max repeated issues to show (0=unlimited)")
	f.Bool("print-lines", true, "Show source lines with issues")
	f.Bool("print-linter-name", true, "Show (tcemlint) suffix on issues")
}

// runLint is shared between `tcemlint lint` and the bare `tcemlint` call.
func runLint() error {
	config := buildLintConfig()

	result, err := tcemlint.Lint(config)
	if err != nil {
		return fmt.Errorf("lint failed: %w", err)
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)
	outputFormat := getStringWithFallback("output-format", "lint.output-format", "")
	format := tcemlint.DetermineOutputFormat(outputFormat, quiet)

	if !quiet {
		tcemlint.WriteOutput(os.Stdout, result, format, config)
	}

	// Exit code logic - "Soft Gate" approach
	if config.Strict {
		// Strict mode: any issue (error or warning) fails the build
		if len(result.Issues) > 0 {
			os.Exit(1)
		}

		// Also check the usage threshold if specified
		if config.Threshold > 0 && result.UsagePercentage < config.Threshold {
			if !quiet {
				fmt.Fprintf(os.Stderr, "\nStrict mode: usage percentage %.1f%% is below threshold %.1f%%\n",
					result.UsagePercentage, config.Threshold)
			}
			os.Exit(1)
		}
	} else if result.ErrorCount > 0 {
		// Default "Soft Gate" mode: only errors fail the build
		os.Exit(1)
	}

	return nil
}
