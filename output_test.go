package tcemlint

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetermineOutputFormat(t *testing.T) {
	tests := []struct {
		name   string
		flag   string
		quiet  bool
		expect OutputFormat
	}{
		{name: "default", flag: "", expect: OutputIssues},
		{name: "issues", flag: "issues", expect: OutputIssues},
		{name: "summary", flag: "summary", expect: OutputSummary},
		{name: "full", flag: "full", expect: OutputFull},
		{name: "json", flag: "json", expect: OutputJSON},
		{name: "markdown", flag: "markdown", expect: OutputMarkdown},
		{name: "md alias", flag: "md", expect: OutputMarkdown},
		{name: "invalid falls back", flag: "yaml", expect: OutputIssues},
		{name: "quiet wins", flag: "json", quiet: true, expect: OutputIssues},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expect, DetermineOutputFormat(tt.flag, tt.quiet))
		})
	}
}

func sampleResult() *LintResult {
	return &LintResult{
		TotalClasses:      4,
		UsedClasses:       3,
		UsagePercentage:   75.0,
		StylesheetsParsed: 2,
		FilesScanned:      5,
		ReferencesFound:   12,
		ErrorCount:        1,
		Issues: []Issue{
			{
				FromLinter:  "tcemlint",
				Rule:        RuleUndefinedClass,
				Text:        `class "ghostClass" not found in any stylesheet`,
				Severity:    SeverityError,
				SourceLines: []string{`<span class="ghostClass">`},
				Pos:         IssuePos{Filename: "templates/index.html", Line: 3, Column: 14},
			},
			{
				FromLinter: "tcemlint",
				Rule:       RuleBaseLayerClass,
				Text:       `class "sneakyHack" defined in the base layer; base styles elements, not classes`,
				Severity:   SeverityWarning,
				Pos:        IssuePos{Filename: "styles/layers/base/reset.css", Line: 2, Column: 1},
			},
		},
		UnusedClasses: []UnusedClass{
			{ClassName: "deadWeight", Layer: "component", DefinedIn: "styles/layers/components/nav.less:9"},
		},
		Offenders: []Offender{
			{ClassName: "ghostClass", Rule: RuleUndefinedClass, Occurrences: 3},
		},
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, sampleResult()))

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))

	assert.Equal(t, "1.0", output.Version)
	assert.NotEmpty(t, output.Timestamp)

	assert.Equal(t, 2, output.Summary.TotalIssues)
	assert.Equal(t, 1, output.Summary.Errors)
	assert.Equal(t, 1, output.Summary.Warnings)
	assert.Equal(t, 5, output.Summary.FilesScanned)

	assert.Equal(t, 4, output.Stats.DefinedClasses)
	assert.Equal(t, 3, output.Stats.UsedClasses)
	assert.Equal(t, 1, output.Stats.UnusedClasses)
	assert.InDelta(t, 75.0, output.Stats.UsagePercentage, 0.01)
	assert.Equal(t, 12, output.Stats.ClassReferences)

	require.Len(t, output.Issues, 2)
	assert.Equal(t, "templates/index.html", output.Issues[0].File)
	assert.Equal(t, 3, output.Issues[0].Line)
	assert.Equal(t, "undefined-class", output.Issues[0].Rule)
	assert.Equal(t, "error", output.Issues[0].Severity)
	assert.Equal(t, `<span class="ghostClass">`, output.Issues[0].Source)

	require.Len(t, output.Offenders, 1)
	assert.Equal(t, "ghostClass", output.Offenders[0].Class)
	assert.Equal(t, 3, output.Offenders[0].Occurrences)

	require.Len(t, output.Unused, 1)
	assert.Equal(t, "deadWeight", output.Unused[0].Class)
	assert.Equal(t, "component", output.Unused[0].Layer)
}

func TestWriteMarkdown(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMarkdown(&buf, sampleResult()))

	out := buf.String()
	assert.Contains(t, out, "# TCEM Lint Report")
	assert.Contains(t, out, "| Issues | 2 (1 errors, 1 warnings) |")
	assert.Contains(t, out, "| Defined classes | 4 |")
	assert.Contains(t, out, "| Referenced from markup | 3 (75.0%) |")
	assert.Contains(t, out, "`styles/layers/base/reset.css:2:1`")
	assert.Contains(t, out, "`templates/index.html:3:14`")
	assert.Contains(t, out, "ghostClass")
	assert.Contains(t, out, "deadWeight")
}

func TestWriteOutput_IssuesFormat(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, sampleResult(), OutputIssues, Config{PrintLinterName: true})

	out := buf.String()
	assert.Contains(t, out, "templates/index.html:3:14:")
	assert.Contains(t, out, "2 issues (1 error, 1 warning):")
}

func TestWriteOutput_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	WriteOutput(&buf, sampleResult(), OutputJSON, Config{})

	var output JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &output))
	assert.Equal(t, 2, output.Summary.TotalIssues)
}
