package tcemlint

import (
	"fmt"
	"io"
	"sort"
	"time"
)

// WriteMarkdown writes the lint result as a shareable Markdown report.
func WriteMarkdown(w io.Writer, result *LintResult) error {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	fmt.Fprintln(w, "# TCEM Lint Report")
	fmt.Fprintln(w, "")
	fmt.Fprintf(w, "Generated: %s\n", time.Now().Format("2006-01-02 15:04"))
	fmt.Fprintln(w, "")

	fmt.Fprintln(w, "## Summary")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "| Metric | Value |")
	fmt.Fprintln(w, "| --- | --- |")
	fmt.Fprintf(w, "| Issues | %d (%d errors, %d warnings) |\n", len(result.Issues), errors, warnings)
	fmt.Fprintf(w, "| Defined classes | %d |\n", result.TotalClasses)
	fmt.Fprintf(w, "| Referenced from markup | %d (%.1f%%) |\n", result.UsedClasses, result.UsagePercentage)
	fmt.Fprintf(w, "| Unused classes | %d |\n", len(result.UnusedClasses))
	fmt.Fprintf(w, "| Stylesheets parsed | %d |\n", result.StylesheetsParsed)
	fmt.Fprintf(w, "| Markup files scanned | %d |\n", result.FilesScanned)

	if len(result.Issues) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "## Issues")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "| Location | Severity | Rule | Message |")
		fmt.Fprintln(w, "| --- | --- | --- | --- |")

		issues := make([]Issue, len(result.Issues))
		copy(issues, result.Issues)
		sort.Slice(issues, func(i, j int) bool {
			if issues[i].Pos.Filename != issues[j].Pos.Filename {
				return issues[i].Pos.Filename < issues[j].Pos.Filename
			}
			return issues[i].Pos.Line < issues[j].Pos.Line
		})

		for _, issue := range issues {
			severity := issue.Severity
			if severity == "" {
				severity = "info"
			}
			fmt.Fprintf(w, "| `%s:%d:%d` | %s | `%s` | %s |\n",
				issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column,
				severity, issue.Rule, issue.Text)
		}

		if result.TruncatedCount > 0 {
			fmt.Fprintln(w, "")
			fmt.Fprintf(w, "%d issue%s truncated by output limits.\n",
				result.TruncatedCount, pluralize(result.TruncatedCount))
		}
	}

	if len(result.Offenders) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "## Top Offenders")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "| Class | Rule | Occurrences |")
		fmt.Fprintln(w, "| --- | --- | --- |")
		for _, off := range result.Offenders {
			fmt.Fprintf(w, "| `%s` | `%s` | %d |\n", off.ClassName, off.Rule, off.Occurrences)
		}
	}

	if len(result.UnusedClasses) > 0 {
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "## Unused Classes")
		fmt.Fprintln(w, "")
		fmt.Fprintln(w, "| Class | Layer | Defined In |")
		fmt.Fprintln(w, "| --- | --- | --- |")
		for _, u := range result.UnusedClasses {
			fmt.Fprintf(w, "| `%s` | %s | `%s` |\n", u.ClassName, u.Layer, u.DefinedIn)
		}
	}

	return nil
}
