package tcemlint

// Issue represents a single linting violation in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "tcemlint"
	Rule        string       `json:"Rule"`        // e.g. "bem-separator"
	Text        string       `json:"Text"`        // human-readable message
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	LineRange   *LineRange   `json:"LineRange"`   // Optional range
	Replacement *Replacement `json:"Replacement"` // Optional fix suggestion
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"`
	Line     int    `json:"Line"`
	Column   int    `json:"Column"` // 1-based, exact start of offending class
}

// LineRange specifies a range of lines
type LineRange struct {
	From int `json:"From"`
	To   int `json:"To"`
}

// Replacement provides an automated fix suggestion (future --fix flag)
type Replacement struct {
	NewText      string // e.g. "mainNav_primary" for "mainNav--primary"
	InlineLength int    // Length of text to replace
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Rule identifiers for issues produced outside the name tokenizer.
// Tokenizer rules come from internal/tcem and layer rules from the
// evaluation in linter.go; all share this flat namespace.
const (
	RuleTypedClassStyled      = "typed-class-styled"
	RuleStateStyledAlone      = "state-styled-alone"
	RuleOrphanElement         = "orphan-element"
	RuleBaseLayerClass        = "base-layer-class"
	RuleStateOutsideComponent = "state-outside-component"
	RuleUndefinedClass        = "undefined-class"
	RuleUndefinedState        = "undefined-state"
	RuleStateWithoutComponent = "state-without-component"
	RuleDuplicateClass        = "duplicate-class"
)
