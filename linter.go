// TCEM rule evaluation.
//
// # Two-sided analysis
//
// The linter checks both sides of the class contract:
//
//  1. Stylesheets: every class selector must tokenize cleanly, behaviour
//     hooks (js_/test_) must never carry declarations, state classes must
//     be styled in combination with a component, and the UI pyramid
//     decides which layer may style what.
//  2. Markup: every referenced class must exist in a stylesheet (behaviour
//     hooks exempt), follow the naming grammar, and state classes must
//     accompany a component class.
//
// # Severities
//
// Grammar breaks and undefined references are errors; stylistic drift
// (single-word components, layer placement, unused classes) warns. Errors
// fail the build, warnings only fail under --strict.
package tcemlint

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/yacobolo/tcemlint/internal/pyramid"
	"github.com/yacobolo/tcemlint/internal/tcem"
)

// classDef records where a class was first defined.
type classDef struct {
	Name  string
	File  string
	Line  int
	Layer pyramid.Layer
}

// severityByRule maps every rule to its severity. Rules absent from the
// map are errors.
var severityByRule = map[string]string{
	tcem.RuleComponentSingleWord: SeverityWarning,
	RuleOrphanElement:            SeverityWarning,
	RuleBaseLayerClass:           SeverityWarning,
	RuleStateOutsideComponent:    SeverityWarning,
	RuleUndefinedState:           SeverityWarning,
	RuleStateWithoutComponent:    SeverityWarning,
	RuleDuplicateClass:           SeverityWarning,
}

func severityFor(rule string) string {
	if sev, ok := severityByRule[rule]; ok {
		return sev
	}
	return SeverityError
}

// Lint performs the full analysis: parse stylesheets, evaluate naming and
// layering rules, scan markup, and cross-check the two.
func Lint(config Config) (*LintResult, error) {
	result := &LintResult{}

	// Step 1: Discover and parse stylesheets
	styleFiles, err := scanStyleFiles(config.SourceDir, config.StyleIncludes)
	if err != nil {
		return nil, fmt.Errorf("failed to discover stylesheets: %w", err)
	}

	var sheets []*Stylesheet
	for _, file := range styleFiles {
		sheet, err := ParseStylesheetFile(file, pyramid.FromPath(file, config.SourceDir))
		if err != nil {
			result.Warnings = append(result.Warnings, fmt.Sprintf("failed to parse %s: %v", file, err))
			continue
		}
		sheets = append(sheets, sheet)
	}
	result.StylesheetsParsed = len(sheets)

	// Step 2: Evaluate stylesheet rules
	ev := &evaluator{result: result, offenses: map[offenseKey]int{}}
	ev.evaluateSheets(sheets)

	// Step 3: Scan markup and cross-check
	refs, stats, err := ScanMarkup(config.MarkupPaths)
	if err != nil {
		return nil, fmt.Errorf("failed to scan markup: %w", err)
	}
	result.FilesScanned = stats.FilesScanned
	if config.Verbose && stats.FilesSkipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"skipped %d generated/ignored markup files", stats.FilesSkipped))
	}
	ev.evaluateMarkup(refs)

	// Step 4: Usage statistics
	ev.collectUsage()

	// Step 5: Top offenders
	result.Offenders = topOffenders(ev.offenses, 10)

	// Step 6: Apply issue limiting if configured
	if config.MaxIssues > 0 || config.MaxSameIssues > 0 {
		result.Issues, result.TruncatedCount = limitIssues(result.Issues, config)
	}

	// Group issues by severity and count errors
	result.IssuesByCategory = make(map[string][]Issue)
	for _, issue := range result.Issues {
		result.IssuesByCategory[issue.Severity] = append(result.IssuesByCategory[issue.Severity], issue)
		if issue.Severity == SeverityError {
			result.ErrorCount++
		}
	}

	return result, nil
}

// scanStyleFiles finds all stylesheet files matching the include patterns
func scanStyleFiles(sourceDir string, includes []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)

	for _, pattern := range includes {
		fullPattern := filepath.Join(sourceDir, pattern)

		matches, err := doublestar.FilepathGlob(fullPattern)
		if err != nil {
			return nil, fmt.Errorf("glob pattern %q: %w", pattern, err)
		}

		for _, match := range matches {
			if !seen[match] {
				seen[match] = true
				files = append(files, match)
			}
		}
	}

	sort.Strings(files)
	return files, nil
}

type offenseKey struct {
	class string
	rule  string
}

// evaluator accumulates issues and bookkeeping across both analysis sides.
type evaluator struct {
	result   *LintResult
	defined  []classDef
	defIndex map[string]classDef
	used     map[string]bool
	offenses map[offenseKey]int
}

func (ev *evaluator) addIssue(rule, text string, pos IssuePos, sourceLine string, repl *Replacement) {
	ev.result.Issues = append(ev.result.Issues, Issue{
		FromLinter:  "tcemlint",
		Rule:        rule,
		Text:        text,
		Severity:    severityFor(rule),
		SourceLines: sourceLinesFor(sourceLine),
		Pos:         pos,
		Replacement: repl,
	})
}

func sourceLinesFor(line string) []string {
	if line == "" {
		return nil
	}
	return []string{line}
}

func (ev *evaluator) recordOffense(class, rule string) {
	ev.offenses[offenseKey{class: class, rule: rule}]++
}

// evaluateSheets runs naming and layering rules over parsed stylesheets.
func (ev *evaluator) evaluateSheets(sheets []*Stylesheet) {
	ev.defIndex = make(map[string]classDef)
	// reported dedupes naming problems per class; layerFlagged dedupes
	// layer and duplicate findings per file+class.
	reported := make(map[string]bool)
	layerFlagged := make(map[string]bool)

	for _, sheet := range sheets {
		perFile := make(map[string]bool)
		for i := range sheet.Classes {
			occ := &sheet.Classes[i]
			perFile[occ.Name] = true

			pos := IssuePos{Filename: occ.File, Line: occ.Line, Column: occ.Column}
			parts, probs := tcem.Parse(occ.Name)

			// Register the definition (first occurrence wins).
			if def, ok := ev.defIndex[occ.Name]; !ok {
				def = classDef{Name: occ.Name, File: occ.File, Line: occ.Line, Layer: sheet.Layer}
				ev.defined = append(ev.defined, def)
				ev.defIndex[occ.Name] = def
			} else if def.File != occ.File && !layerFlagged["dup:"+occ.File+":"+occ.Name] {
				layerFlagged["dup:"+occ.File+":"+occ.Name] = true
				ev.addIssue(RuleDuplicateClass,
					fmt.Sprintf("class %q is already defined in %s:%d", occ.Name, def.File, def.Line),
					pos, "", nil)
				ev.recordOffense(occ.Name, RuleDuplicateClass)
			}

			// Naming rules, once per unique class name.
			if !reported[occ.Name] {
				reported[occ.Name] = true
				for _, p := range probs {
					var repl *Replacement
					if p.Rule == tcem.RuleBEMSeparator {
						if fix := tcem.RewriteBEM(occ.Name); fix != "" {
							repl = &Replacement{NewText: fix, InlineLength: len(occ.Name)}
						}
					}
					ev.addIssue(p.Rule, p.Message, pos, "", repl)
					ev.recordOffense(occ.Name, p.Rule)
				}
			}

			// Behaviour hooks must never be styled.
			if (parts.Type == "js" || parts.Type == "test") && occ.Declarations > 0 {
				ev.addIssue(RuleTypedClassStyled,
					fmt.Sprintf("%s hook %q must not carry style declarations", parts.Type, occ.Name),
					pos, "", nil)
				ev.recordOffense(occ.Name, RuleTypedClassStyled)
			}

			if parts.IsState() {
				ev.evaluateStateOccurrence(occ, sheet.Layer, pos, layerFlagged)
			}

			// Base layer styles raw elements only.
			if !sheet.Layer.AllowsClassSelectors() && !layerFlagged["base:"+occ.File+":"+occ.Name] {
				layerFlagged["base:"+occ.File+":"+occ.Name] = true
				ev.addIssue(RuleBaseLayerClass,
					fmt.Sprintf("class %q defined in the %s layer; base styles elements, not classes",
						occ.Name, sheet.Layer),
					pos, "", nil)
				ev.recordOffense(occ.Name, RuleBaseLayerClass)
			}
		}

		ev.checkOrphanElements(sheet, perFile)
	}

	ev.result.TotalClasses = len(ev.defined)
}

// evaluateStateOccurrence checks the two state-class rules: never styled
// alone, and only styled where the pyramid allows it.
func (ev *evaluator) evaluateStateOccurrence(occ *ClassOccurrence, layer pyramid.Layer, pos IssuePos, flagged map[string]bool) {
	alone := true
	for _, c := range occ.Compound {
		if c != occ.Name && !tcem.IsStateName(c) {
			alone = false
			break
		}
	}
	if alone && occ.Declarations > 0 {
		ev.addIssue(RuleStateStyledAlone,
			fmt.Sprintf("state class %q styled without a component class in the selector", occ.Name),
			pos, "", nil)
		ev.recordOffense(occ.Name, RuleStateStyledAlone)
	}

	if !layer.AllowsStateStyling() && !flagged["state:"+occ.File+":"+occ.Name] {
		flagged["state:"+occ.File+":"+occ.Name] = true
		ev.addIssue(RuleStateOutsideComponent,
			fmt.Sprintf("state class %q styled in the %s layer; states belong to components", occ.Name, layer),
			pos, "", nil)
		ev.recordOffense(occ.Name, RuleStateOutsideComponent)
	}
}

// checkOrphanElements warns when an element class is styled in a file that
// never styles its component.
func (ev *evaluator) checkOrphanElements(sheet *Stylesheet, perFile map[string]bool) {
	seen := make(map[string]bool)
	for i := range sheet.Classes {
		occ := &sheet.Classes[i]
		if seen[occ.Name] {
			continue
		}
		seen[occ.Name] = true

		parts, probs := tcem.Parse(occ.Name)
		if len(probs) > 0 || parts.Element == "" {
			continue
		}

		component := parts.Component
		if parts.Type != "" {
			component = parts.Type + "_" + component
		}
		if !perFile[component] {
			ev.addIssue(RuleOrphanElement,
				fmt.Sprintf("element class %q styled without its component %q in the same file",
					occ.Name, component),
				IssuePos{Filename: occ.File, Line: occ.Line, Column: occ.Column}, "", nil)
			ev.recordOffense(occ.Name, RuleOrphanElement)
		}
	}
}

// evaluateMarkup validates class references found in markup against the
// grammar and the set of defined classes.
func (ev *evaluator) evaluateMarkup(refs []ClassReference) {
	ev.used = make(map[string]bool)

	for _, ref := range refs {
		tokens := strings.Fields(ref.FullClassValue)
		ev.result.ReferencesFound += len(tokens)

		hasState := false
		hasComponent := false
		stateClass := ""

		for _, name := range tokens {
			column := findClassColumn(ref.Location.Text, name)
			if column == 0 {
				column = ref.Location.Column
			}
			pos := IssuePos{Filename: ref.Location.File, Line: ref.Location.Line, Column: column}

			parts, probs := tcem.Parse(name)
			for _, p := range probs {
				var repl *Replacement
				if p.Rule == tcem.RuleBEMSeparator {
					if fix := tcem.RewriteBEM(name); fix != "" {
						repl = &Replacement{NewText: fix, InlineLength: len(name)}
					}
				}
				ev.addIssue(p.Rule, p.Message, pos, ref.Location.Text, repl)
				ev.recordOffense(name, p.Rule)
			}

			if _, ok := ev.defIndex[name]; ok {
				ev.used[name] = true
			}

			switch {
			case parts.IsState():
				hasState = true
				if stateClass == "" {
					stateClass = name
				}
			case parts.Type == "js" || parts.Type == "test":
				// Behaviour hooks live in markup and scripts only.
			default:
				hasComponent = hasComponent || len(probs) == 0
			}

			ev.checkDefined(name, parts, probs, pos, ref.Location.Text)
		}

		if hasState && !hasComponent {
			pos := IssuePos{Filename: ref.Location.File, Line: ref.Location.Line, Column: ref.Location.Column}
			ev.addIssue(RuleStateWithoutComponent,
				fmt.Sprintf("state class used without a component class in %q", ref.FullClassValue),
				pos, ref.Location.Text, nil)
			ev.recordOffense(stateClass, RuleStateWithoutComponent)
		}
	}
}

// checkDefined reports markup references to classes no stylesheet defines.
// Behaviour hooks are exempt; undefined states downgrade to a warning
// since they may be toggled by scripts without dedicated styling.
func (ev *evaluator) checkDefined(name string, parts tcem.Parts, probs []tcem.Problem, pos IssuePos, sourceLine string) {
	if len(probs) > 0 {
		return // malformed names are already reported
	}
	if parts.Type == "js" || parts.Type == "test" {
		return
	}
	if _, ok := ev.defIndex[name]; ok {
		return
	}

	if parts.IsState() {
		ev.addIssue(RuleUndefinedState,
			fmt.Sprintf("state class %q is not styled in any stylesheet", name),
			pos, sourceLine, nil)
		ev.recordOffense(name, RuleUndefinedState)
		return
	}

	ev.addIssue(RuleUndefinedClass,
		fmt.Sprintf("class %q not found in any stylesheet", name),
		pos, sourceLine, nil)
	ev.recordOffense(name, RuleUndefinedClass)
}

// collectUsage fills the usage statistics and the unused-class list.
func (ev *evaluator) collectUsage() {
	result := ev.result

	for _, def := range ev.defined {
		if ev.used[def.Name] {
			result.UsedClasses++
			continue
		}
		result.UnusedClasses = append(result.UnusedClasses, UnusedClass{
			ClassName: def.Name,
			Layer:     def.Layer.String(),
			DefinedIn: fmt.Sprintf("%s:%d", def.File, def.Line),
		})
	}

	sort.Slice(result.UnusedClasses, func(i, j int) bool {
		return result.UnusedClasses[i].ClassName < result.UnusedClasses[j].ClassName
	})

	if result.TotalClasses > 0 {
		result.UsagePercentage = float64(result.UsedClasses) / float64(result.TotalClasses) * 100
	}
}

// topOffenders converts the offense tally into a sorted, truncated slice.
func topOffenders(offenses map[offenseKey]int, limit int) []Offender {
	var offenders []Offender
	for key, count := range offenses {
		if count < 2 {
			continue // a single occurrence is not a pattern
		}
		offenders = append(offenders, Offender{
			ClassName:   key.class,
			Rule:        key.rule,
			Occurrences: count,
		})
	}

	sort.Slice(offenders, func(i, j int) bool {
		if offenders[i].Occurrences != offenders[j].Occurrences {
			return offenders[i].Occurrences > offenders[j].Occurrences
		}
		return offenders[i].ClassName < offenders[j].ClassName
	})

	if len(offenders) > limit {
		offenders = offenders[:limit]
	}
	return offenders
}

// limitIssues applies max-issues and max-same-issues constraints
func limitIssues(issues []Issue, config Config) ([]Issue, int) {
	originalCount := len(issues)

	if config.MaxSameIssues > 0 {
		issues = deduplicateSameIssues(issues, config.MaxSameIssues)
	}

	if config.MaxIssues > 0 && len(issues) > config.MaxIssues {
		issues = issues[:config.MaxIssues]
	}

	truncatedCount := originalCount - len(issues)
	return issues, truncatedCount
}

// deduplicateSameIssues limits how many times the same message appears
func deduplicateSameIssues(issues []Issue, maxSame int) []Issue {
	messageCounts := make(map[string]int)
	var filtered []Issue

	for _, issue := range issues {
		if messageCounts[issue.Text] < maxSame {
			filtered = append(filtered, issue)
			messageCounts[issue.Text]++
		}
	}

	return filtered
}
