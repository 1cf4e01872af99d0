package tcemlint

import (
	"io"
	"os"
)

// DetermineOutputFormat selects the output format based on flags and environment
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Explicit --quiet flag wins (exit code only)
	if quiet {
		return OutputIssues // Issues only, suppressed by the caller
	}

	// Explicit format flag wins
	if formatFlag != "" {
		switch formatFlag {
		case "issues":
			return OutputIssues
		case "summary":
			return OutputSummary
		case "full":
			return OutputFull
		case "json":
			return OutputJSON
		case "markdown", "md":
			return OutputMarkdown
		default:
			// Invalid format, fall through to the default
		}
	}

	// Following golangci-lint's UX: issues only by default
	return OutputIssues
}

// WriteOutput writes the lint result in the specified format
func WriteOutput(w io.Writer, result *LintResult, format OutputFormat, config Config) {
	switch format {
	case OutputIssues:
		// Issues only (golangci-lint format)
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

	case OutputSummary:
		// Statistics and offenders only (no individual issues)
		useColors := shouldUseColors(config)
		verbose := NewVerboseReporter(w, useColors)
		verbose.PrintStatistics(*result)
		verbose.PrintUsageProgress(*result)
		verbose.PrintOffenders(*result)
		verbose.PrintWarnings(*result)

	case OutputFull:
		// Everything: issues + statistics + offenders + unused classes
		reporter := NewReporter(w, config)
		reporter.PrintIssues(result.Issues)
		reporter.PrintSummary(*result)

		verbose := NewVerboseReporter(w, reporter.UseColors())
		verbose.PrintStatistics(*result)
		verbose.PrintUsageProgress(*result)
		verbose.PrintOffenders(*result)
		verbose.PrintUnusedClasses(*result)
		verbose.PrintWarnings(*result)

	case OutputJSON:
		if err := WriteJSON(w, result); err != nil {
			// Log error but don't crash
			os.Stderr.WriteString("Error writing JSON: " + err.Error() + "\n")
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, result); err != nil {
			os.Stderr.WriteString("Error writing Markdown: " + err.Error() + "\n")
		}
	}
}
