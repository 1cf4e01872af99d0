package tcemlint

import (
	"encoding/json"
	"io"
	"time"
)

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version   string         `json:"version"`
	Timestamp string         `json:"timestamp"`
	Summary   JSONSummary    `json:"summary"`
	Stats     JSONStats      `json:"stats"`
	Issues    []JSONIssue    `json:"issues"`
	Offenders []JSONOffender `json:"offenders"`
	Unused    []JSONUnused   `json:"unused_classes"`
}

// JSONSummary contains high-level issue counts
type JSONSummary struct {
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	FilesScanned int `json:"files_scanned"`
}

// JSONStats contains definition and usage statistics
type JSONStats struct {
	DefinedClasses    int     `json:"defined_classes"`
	UsedClasses       int     `json:"used_classes"`
	UnusedClasses     int     `json:"unused_classes"`
	UsagePercentage   float64 `json:"usage_percentage"`
	StylesheetsParsed int     `json:"stylesheets_parsed"`
	ClassReferences   int     `json:"class_references"`
}

// JSONIssue represents a single linting issue
type JSONIssue struct {
	File        string `json:"file"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	Severity    string `json:"severity"`
	Rule        string `json:"rule"`
	Message     string `json:"message"`
	Linter      string `json:"linter"`
	Source      string `json:"source,omitempty"`      // Optional source line
	Replacement string `json:"replacement,omitempty"` // Optional fix suggestion
}

// JSONOffender is a frequently flagged class name
type JSONOffender struct {
	Class       string `json:"class"`
	Rule        string `json:"rule"`
	Occurrences int    `json:"occurrences"`
}

// JSONUnused is a defined class with no markup reference
type JSONUnused struct {
	Class     string `json:"class"`
	Layer     string `json:"layer"`
	DefinedIn string `json:"defined_in"`
}

// WriteJSON writes the lint result as JSON
func WriteJSON(w io.Writer, result *LintResult) error {
	output := buildJSONOutput(result)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}

// buildJSONOutput converts LintResult to JSONOutput
func buildJSONOutput(result *LintResult) JSONOutput {
	var errors, warnings int
	for _, issue := range result.Issues {
		switch issue.Severity {
		case SeverityError:
			errors++
		case SeverityWarning:
			warnings++
		}
	}

	jsonIssues := make([]JSONIssue, len(result.Issues))
	for i, issue := range result.Issues {
		source := ""
		if len(issue.SourceLines) > 0 {
			source = issue.SourceLines[0]
		}
		replacement := ""
		if issue.Replacement != nil {
			replacement = issue.Replacement.NewText
		}
		jsonIssues[i] = JSONIssue{
			File:        issue.Pos.Filename,
			Line:        issue.Pos.Line,
			Column:      issue.Pos.Column,
			Severity:    issue.Severity,
			Rule:        issue.Rule,
			Message:     issue.Text,
			Linter:      issue.FromLinter,
			Source:      source,
			Replacement: replacement,
		}
	}

	offenders := make([]JSONOffender, len(result.Offenders))
	for i, off := range result.Offenders {
		offenders[i] = JSONOffender{
			Class:       off.ClassName,
			Rule:        off.Rule,
			Occurrences: off.Occurrences,
		}
	}

	unused := make([]JSONUnused, len(result.UnusedClasses))
	for i, u := range result.UnusedClasses {
		unused[i] = JSONUnused{
			Class:     u.ClassName,
			Layer:     u.Layer,
			DefinedIn: u.DefinedIn,
		}
	}

	return JSONOutput{
		Version:   "1.0",
		Timestamp: time.Now().Format(time.RFC3339),
		Summary: JSONSummary{
			TotalIssues:  len(result.Issues),
			Errors:       errors,
			Warnings:     warnings,
			FilesScanned: result.FilesScanned,
		},
		Stats: JSONStats{
			DefinedClasses:    result.TotalClasses,
			UsedClasses:       result.UsedClasses,
			UnusedClasses:     len(result.UnusedClasses),
			UsagePercentage:   result.UsagePercentage,
			StylesheetsParsed: result.StylesheetsParsed,
			ClassReferences:   result.ReferencesFound,
		},
		Issues:    jsonIssues,
		Offenders: offenders,
		Unused:    unused,
	}
}
