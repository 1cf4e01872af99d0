// Package tcem parses and validates class names written in the
// {type}_{component}-{element}_{modifier} convention, with separate
// state classes of the form is{State}.
//
// The grammar splits on three separators:
//
//   - "_" after the optional type prefix (js, test) and before the
//     optional modifier
//   - "-" between component and element
//   - the "is" prefix marking a standalone state class (isActive)
//
// All name segments are lowerCamelCase. Components are expected to be
// multi-word so they stay greppable and unambiguous.
package tcem

import (
	"fmt"
	"regexp"
	"strings"
)

// Rule identifiers for naming violations. Stable across releases so they
// can be referenced in suppression comments and CI filters.
const (
	RuleBEMSeparator        = "bem-separator"
	RuleMissingComponent    = "missing-component"
	RuleUnknownType         = "unknown-type"
	RuleComponentCase       = "component-case"
	RuleComponentSingleWord = "component-single-word"
	RuleElementCase         = "element-case"
	RuleExtraElement        = "extra-element"
	RuleModifierCase        = "modifier-case"
	RuleExtraModifier       = "extra-modifier"
	RuleStateCase           = "state-case"
	RuleStateAsSegment      = "state-as-segment"
)

// Parts is the decomposition of a class name.
type Parts struct {
	Type      string // "js", "test", or ""
	Component string
	Element   string
	Modifier  string
	State     string // "Active" for isActive; empty for non-state classes
}

// IsState reports whether the class is a standalone state class.
func (p Parts) IsState() bool { return p.State != "" }

// IsTyped reports whether the class carries a js/test type prefix.
func (p Parts) IsTyped() bool { return p.Type != "" }

// String reassembles the parts into a class name.
func (p Parts) String() string {
	if p.IsState() {
		return "is" + p.State
	}

	var b strings.Builder
	if p.Type != "" {
		b.WriteString(p.Type)
		b.WriteByte('_')
	}
	b.WriteString(p.Component)
	if p.Element != "" {
		b.WriteByte('-')
		b.WriteString(p.Element)
	}
	if p.Modifier != "" {
		b.WriteByte('_')
		b.WriteString(p.Modifier)
	}
	return b.String()
}

// Problem describes a single naming violation.
type Problem struct {
	Rule    string
	Message string
}

var (
	// Types that may prefix a component. Classes with these prefixes are
	// behaviour hooks and must never be styled.
	knownTypes = map[string]bool{"js": true, "test": true}

	lowerCamel   = regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-z0-9]*)*$`)
	statePattern = regexp.MustCompile(`^is[A-Z][A-Za-z0-9]*$`)

	// Looks like an intended type prefix even when the vocabulary check
	// fails: a short all-lowercase segment before the component.
	typeLike = regexp.MustCompile(`^[a-z]{1,4}$`)
)

// IsStateName reports whether name follows the is{State} pattern.
func IsStateName(name string) bool {
	return statePattern.MatchString(name)
}

// Parse decomposes a class name and returns every naming violation found.
// The returned Parts carry a best-effort decomposition even when problems
// are reported, so callers can still reason about the intended structure.
func Parse(class string) (Parts, []Problem) {
	var p Parts
	var probs []Problem

	if class == "" {
		return p, []Problem{{RuleMissingComponent, "empty class name"}}
	}

	// BEM separators are the most common habit carried over from other
	// conventions. Report them with a concrete rewrite when possible.
	if strings.Contains(class, "--") || strings.Contains(class, "__") {
		msg := fmt.Sprintf("class %q uses a BEM separator", class)
		if fix := RewriteBEM(class); fix != "" {
			msg += fmt.Sprintf("; write %q instead", fix)
		}
		return p, append(probs, Problem{RuleBEMSeparator, msg})
	}

	// Standalone state class: isActive, isHidden, ...
	if strings.HasPrefix(class, "is") && len(class) > 2 && class[2] >= 'A' && class[2] <= 'Z' {
		if !IsStateName(class) {
			return p, append(probs, Problem{RuleStateCase,
				fmt.Sprintf("state class %q must match is{State} with UpperCamel state", class)})
		}
		p.State = strings.TrimPrefix(class, "is")
		return p, nil
	}

	segs := strings.Split(class, "_")

	// A leading type prefix is only valid when drawn from the vocabulary.
	if len(segs) > 1 {
		if knownTypes[segs[0]] {
			p.Type = segs[0]
			segs = segs[1:]
		} else if typeLike.MatchString(segs[0]) && len(segs) > 2 {
			// js_nav_active parses as type+component+modifier, so a
			// three-segment name with a short head is an unknown type.
			probs = append(probs, Problem{RuleUnknownType,
				fmt.Sprintf("unknown type prefix %q in %q (known types: js, test)", segs[0], class)})
			p.Type = segs[0]
			segs = segs[1:]
		}
	}

	if len(segs) > 2 {
		probs = append(probs, Problem{RuleExtraModifier,
			fmt.Sprintf("class %q has more than one modifier separator", class)})
		segs = segs[:2]
	}

	base := segs[0]
	if len(segs) == 2 {
		p.Modifier = segs[1]
	}

	names := strings.Split(base, "-")
	if len(names) > 2 {
		probs = append(probs, Problem{RuleExtraElement,
			fmt.Sprintf("class %q has more than one element separator", class)})
		names = names[:2]
	}
	p.Component = names[0]
	if len(names) == 2 {
		p.Element = names[1]
	}

	probs = append(probs, checkSegments(class, p)...)
	return p, probs
}

// checkSegments validates the case rules for each decomposed segment.
func checkSegments(class string, p Parts) []Problem {
	var probs []Problem

	switch {
	case p.Component == "":
		probs = append(probs, Problem{RuleMissingComponent,
			fmt.Sprintf("class %q is missing a component name", class)})
	case !lowerCamel.MatchString(p.Component):
		probs = append(probs, Problem{RuleComponentCase,
			fmt.Sprintf("component %q in %q must be lowerCamelCase", p.Component, class)})
	case !isMultiWord(p.Component):
		probs = append(probs, Problem{RuleComponentSingleWord,
			fmt.Sprintf("component %q in %q should be multi-word (e.g. mainNav, userCard)", p.Component, class)})
	}

	if p.Element != "" {
		switch {
		case IsStateName(p.Element):
			probs = append(probs, Problem{RuleStateAsSegment,
				fmt.Sprintf("state %q in %q must be a separate class, not an element", p.Element, class)})
		case !lowerCamel.MatchString(p.Element):
			probs = append(probs, Problem{RuleElementCase,
				fmt.Sprintf("element %q in %q must be lowerCamelCase", p.Element, class)})
		}
	}

	if p.Modifier != "" {
		switch {
		case IsStateName(p.Modifier):
			probs = append(probs, Problem{RuleStateAsSegment,
				fmt.Sprintf("state %q in %q must be a separate class, not a modifier", p.Modifier, class)})
		case !lowerCamel.MatchString(p.Modifier):
			probs = append(probs, Problem{RuleModifierCase,
				fmt.Sprintf("modifier %q in %q must be lowerCamelCase", p.Modifier, class)})
		}
	}

	return probs
}

// isMultiWord reports whether a lowerCamelCase name has at least two words.
func isMultiWord(name string) bool {
	return strings.IndexFunc(name, func(r rune) bool { return r >= 'A' && r <= 'Z' }) >= 0
}

// RewriteBEM converts BEM separators to their TCEM equivalents:
// "__" (element) becomes "-" and "--" (modifier) becomes "_".
// Returns "" when the rewritten name would still be ambiguous.
func RewriteBEM(class string) string {
	if strings.Count(class, "__") > 1 || strings.Count(class, "--") > 1 {
		return ""
	}
	out := strings.ReplaceAll(class, "__", "-")
	out = strings.ReplaceAll(out, "--", "_")
	return out
}
