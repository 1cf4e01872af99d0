// Package guide runs editorial checks on the style-guide document itself:
// table-of-contents links must resolve to existing headings, and every
// "Bad" example must be paired with a "Good" counterpart.
package guide

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Finding is a single editorial problem in the document.
type Finding struct {
	Line    int
	Rule    string
	Message string
}

// Finding rule identifiers.
const (
	RuleBrokenLink    = "broken-toc-link"
	RuleUnpairedBad   = "unpaired-bad-example"
	RuleEmptyDocument = "empty-document"
)

var (
	headingPattern = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*$`)
	anchorLink     = regexp.MustCompile(`\[[^\]]*\]\(#([^)]+)\)`)
	badMarker      = regexp.MustCompile(`(?i)^(?:\*\*|#{1,6}\s*|>\s*)?bad\b`)
	goodMarker     = regexp.MustCompile(`(?i)^(?:\*\*|#{1,6}\s*|>\s*)?good\b`)
)

// CheckFile reads and checks a style-guide markdown document.
func CheckFile(path string) ([]Finding, error) {
	f, err := os.Open(path) // #nosec G304 - path comes from CLI arguments
	if err != nil {
		return nil, fmt.Errorf("open guide: %w", err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read guide: %w", err)
	}

	return Check(lines), nil
}

// Check runs all editorial checks over the document lines.
func Check(lines []string) []Finding {
	if len(lines) == 0 {
		return []Finding{{Line: 1, Rule: RuleEmptyDocument, Message: "document is empty"}}
	}

	var findings []Finding
	findings = append(findings, checkAnchors(lines)...)
	findings = append(findings, checkExamplePairs(lines)...)
	return findings
}

// checkAnchors verifies that every in-document link resolves to a heading.
func checkAnchors(lines []string) []Finding {
	anchors := map[string]bool{}
	seen := map[string]int{}
	inFence := false

	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if m := headingPattern.FindStringSubmatch(line); m != nil {
			slug := Slugify(m[2])
			// Duplicate headings get numeric suffixes, GitHub-style.
			if n := seen[slug]; n > 0 {
				anchors[fmt.Sprintf("%s-%d", slug, n)] = true
			} else {
				anchors[slug] = true
			}
			seen[slug]++
		}
	}

	var findings []Finding
	inFence = false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		for _, m := range anchorLink.FindAllStringSubmatch(line, -1) {
			if !anchors[m[1]] {
				findings = append(findings, Finding{
					Line:    i + 1,
					Rule:    RuleBrokenLink,
					Message: fmt.Sprintf("link target #%s does not match any heading", m[1]),
				})
			}
		}
	}
	return findings
}

// checkExamplePairs verifies every Bad example is followed by a Good one
// before the next section heading.
func checkExamplePairs(lines []string) []Finding {
	var findings []Finding

	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if !badMarker.MatchString(line) {
			continue
		}

		badLine := i + 1
		paired := false
		for j := i + 1; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if goodMarker.MatchString(next) {
				paired = true
				i = j // continue scanning after the pair
				break
			}
			if badMarker.MatchString(next) || isSectionHeading(next) {
				break
			}
		}

		if !paired {
			findings = append(findings, Finding{
				Line:    badLine,
				Rule:    RuleUnpairedBad,
				Message: "Bad example has no paired Good example in the same section",
			})
		}
	}
	return findings
}

// isSectionHeading matches ## and deeper headings that do not themselves
// carry a Bad/Good marker.
func isSectionHeading(line string) bool {
	if !strings.HasPrefix(line, "#") {
		return false
	}
	return !badMarker.MatchString(line) && !goodMarker.MatchString(line)
}

var slugStrip = regexp.MustCompile(`[^\p{L}\p{N}\s-]`)

// Slugify converts a heading to its GitHub anchor form.
func Slugify(heading string) string {
	s := strings.ToLower(strings.TrimSpace(heading))
	s = slugStrip.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, " ", "-")
	return s
}
