package tcemlint

// Config holds linting configuration
type Config struct {
	SourceDir     string   // Stylesheet root, e.g. "styles"
	StyleIncludes []string // Glob patterns below SourceDir, e.g. "layers/**/*.less"
	MarkupPaths   []string // Markup patterns to scan, e.g. "templates/**/*.html"

	Verbose   bool
	Strict    bool    // Exit 1 on any issue (CI mode)
	Threshold float64 // Minimum usage percentage for strict mode

	// Output configuration, golangci-style
	MaxIssues        int  // 0 = unlimited
	MaxSameIssues    int  // 0 = unlimited
	PrintIssuedLines bool // Show source lines with issues (default: true)
	PrintLinterName  bool // Show (tcemlint) suffix (default: true)
	UseColors        bool // Force color output (default: auto-detect)
}

// LintResult contains linting analysis results
type LintResult struct {
	// Statistics
	TotalClasses    int     // Classes defined across all stylesheets
	UsedClasses     int     // Defined classes referenced from markup
	UsagePercentage float64 // UsedClasses / TotalClasses

	// Issues in golangci-lint format
	Issues           []Issue
	IssuesByCategory map[string][]Issue // Grouped by severity

	// Detailed findings
	UnusedClasses     []UnusedClass // Defined but never referenced
	StylesheetsParsed int
	FilesScanned      int // Markup files with class references
	ReferencesFound   int // Class tokens found in markup
	ErrorCount        int
	TruncatedCount    int // Issues removed due to limits

	// Summary
	Warnings  []string
	Offenders []Offender // Most frequently flagged class names
}

// UnusedClass represents a defined class with no markup reference
type UnusedClass struct {
	ClassName string // "userCard-avatar"
	Layer     string // "component"
	DefinedIn string // "styles/layers/components/userCard.less:12"
}

// Offender is a class name that keeps producing the same violation.
// The analog of a quick win: fixing one name clears many issues.
type Offender struct {
	ClassName   string
	Rule        string
	Occurrences int
}

// OutputFormat represents the linter output format
type OutputFormat string

const (
	// OutputIssues shows only errors/warnings in golangci-lint format (CI-friendly)
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and top offenders only (weekly reports)
	OutputSummary OutputFormat = "summary"
	// OutputFull shows issues + statistics + top offenders (interactive development)
	OutputFull OutputFormat = "full"
	// OutputJSON exports structured data in JSON format (tooling integration)
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a Markdown report (shareable reports)
	OutputMarkdown OutputFormat = "markdown"
)
