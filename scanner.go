package tcemlint

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
)

// ClassReference represents a class attribute value found in markup
type ClassReference struct {
	FullClassValue string       // Full attribute: "mainNav isActive"
	Location       FileLocation // Where it was found
	LineContent    string       // The full line for context
}

// FileLocation tracks where a class reference was found
type FileLocation struct {
	File   string
	Line   int
	Column int    // 1-based column (exact start of the attribute value)
	Text   string // Full line content for source display
}

// ScanStats tracks file scanning statistics
type ScanStats struct {
	FilesDiscovered int // Total files found by glob patterns
	FilesScanned    int // Files actually scanned (after filtering)
	FilesSkipped    int // Files skipped due to filtering
}

// scanPattern represents a regex pattern for finding class attributes
type scanPattern struct {
	name  string
	regex *regexp.Regexp
}

var (
	// Patterns for finding class attribute values in markup.
	// Ordered from most specific to least specific.
	patterns = []scanPattern{
		{
			name:  "class attribute with double quotes",
			regex: regexp.MustCompile(`class="([^"]+)"`),
		},
		{
			name:  "class attribute with single quotes",
			regex: regexp.MustCompile(`class='([^']+)'`),
		},
		{
			name:  "className attribute",
			regex: regexp.MustCompile(`className="([^"]+)"`),
		},
		{
			name:  "class with string literal in braces",
			regex: regexp.MustCompile(`class=\{\s*"([^"]+)"`),
		},
		{
			name:  "templ.Classes with string",
			regex: regexp.MustCompile(`templ\.Classes\(\s*"([^"]+)"`),
		},
		{
			name:  "templ.KV with string",
			regex: regexp.MustCompile(`templ\.KV\(\s*"([^"]+)"`),
		},
	}

	// Comment patterns to skip
	commentPattern = regexp.MustCompile(`^\s*(//|<!--)`)

	// gitignore caching
	gitIgnoreCache *ignore.GitIgnore
	gitIgnoreOnce  sync.Once
)

// isGenerated checks if a file is generated output that should not be
// linted (templ output, minified bundles).
func isGenerated(path string) bool {
	return strings.HasSuffix(path, "_templ.go") ||
		strings.HasSuffix(path, ".templ.go") ||
		strings.Contains(filepath.Base(path), ".min.")
}

// loadGitIgnore loads the .gitignore file once (thread-safe)
// Gracefully degrades if .gitignore doesn't exist
func loadGitIgnore() *ignore.GitIgnore {
	gitIgnoreOnce.Do(func() {
		gi, err := ignore.CompileIgnoreFile(".gitignore")
		if err != nil {
			// Gracefully degrade - no .gitignore is fine
			gitIgnoreCache = nil
			return
		}
		gitIgnoreCache = gi
	})
	return gitIgnoreCache
}

// shouldSkipFile determines if a file should be excluded from scanning.
//
// Two-layer filtering:
// 1. Pattern check (fast): skip generated/minified files
// 2. Gitignore check: skip gitignored files (only for relative paths)
func shouldSkipFile(path string) bool {
	if isGenerated(path) {
		return true
	}

	// Only apply gitignore to relative paths (paths within the project).
	if !filepath.IsAbs(path) {
		gi := loadGitIgnore()
		if gi != nil && gi.MatchesPath(path) {
			return true
		}
	}

	return false
}

// ScanMarkup scans files matching the given patterns for class references
func ScanMarkup(scanPatterns []string) ([]ClassReference, ScanStats, error) {
	files, stats, err := expandGlobPatterns(scanPatterns)
	if err != nil {
		return nil, stats, err
	}

	var allRefs []ClassReference
	for _, file := range files {
		refs, err := scanFile(file)
		if err != nil {
			// Log warning but continue
			continue
		}
		allRefs = append(allRefs, refs...)
	}

	return allRefs, stats, nil
}

// expandGlobPatterns expands glob patterns to file paths and tracks stats
func expandGlobPatterns(patterns []string) ([]string, ScanStats, error) {
	var allFiles []string
	seen := make(map[string]bool)
	stats := ScanStats{}

	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, stats, err
		}

		for _, match := range matches {
			if seen[match] {
				continue
			}
			info, err := os.Stat(match)
			if err != nil || info.IsDir() {
				continue
			}
			stats.FilesDiscovered++

			if shouldSkipFile(match) {
				stats.FilesSkipped++
			} else {
				allFiles = append(allFiles, match)
				seen[match] = true
				stats.FilesScanned++
			}
		}
	}

	return allFiles, stats, nil
}

// scanFile scans a single file for class references
func scanFile(filePath string) ([]ClassReference, error) {
	// #nosec G304 - path comes from configured glob patterns
	file, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var refs []ClassReference
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		refs = append(refs, extractClassesFromLine(line, lineNum, filePath)...)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return refs, nil
}

// extractClassesFromLine extracts all class attribute values from a line
func extractClassesFromLine(line string, lineNum int, file string) []ClassReference {
	// Skip comments
	if commentPattern.MatchString(line) {
		return nil
	}

	var refs []ClassReference
	seen := make(map[int]bool) // dedupe overlapping pattern matches by value offset

	for _, pattern := range patterns {
		matches := pattern.regex.FindAllStringSubmatchIndex(line, -1)
		for _, match := range matches {
			if len(match) < 4 || seen[match[2]] {
				continue
			}
			seen[match[2]] = true

			refs = append(refs, ClassReference{
				FullClassValue: line[match[2]:match[3]],
				Location: FileLocation{
					File:   file,
					Line:   lineNum,
					Column: match[2] + 1, // 1-indexed start of the value
					Text:   strings.TrimSpace(line),
				},
				LineContent: strings.TrimSpace(line),
			})
		}
	}

	return refs
}

// findClassColumn locates the exact 1-based column where className starts
// within line, preferring a match inside a class attribute.
func findClassColumn(line string, className string) int {
	// Strategy 1: look inside a class= attribute first
	classAttrIdx := strings.Index(line, "class=")
	if classAttrIdx != -1 {
		quoteIdx := strings.IndexAny(line[classAttrIdx:], `"'`)
		if quoteIdx != -1 {
			searchStart := classAttrIdx + quoteIdx + 1

			classesStr := line[searchStart:]
			if endQuote := strings.IndexAny(classesStr, `"'`); endQuote != -1 {
				classesStr = classesStr[:endQuote]
			}

			if idx := indexToken(classesStr, className); idx != -1 {
				return searchStart + idx + 1
			}
		}
	}

	// Strategy 2: quoted occurrence anywhere
	if idx := strings.Index(line, `"`+className+`"`); idx != -1 {
		return idx + 2
	}

	// Strategy 3: direct search
	if idx := indexToken(line, className); idx != -1 {
		return idx + 1
	}

	return 0
}

// indexToken finds className as a whole space-separated token, so "mainNav"
// does not match inside "mainNavWide".
func indexToken(s, className string) int {
	start := 0
	for {
		idx := strings.Index(s[start:], className)
		if idx == -1 {
			return -1
		}
		abs := start + idx
		end := abs + len(className)
		leftOK := abs == 0 || s[abs-1] == ' ' || s[abs-1] == '"' || s[abs-1] == '\''
		rightOK := end == len(s) || s[end] == ' ' || s[end] == '"' || s[end] == '\''
		if leftOK && rightOK {
			return abs
		}
		start = abs + 1
	}
}

// GetRelativePath returns a relative path from the current working directory
func GetRelativePath(absPath string) string {
	cwd, err := os.Getwd()
	if err != nil {
		return absPath
	}

	rel, err := filepath.Rel(cwd, absPath)
	if err != nil {
		return absPath
	}

	return rel
}
