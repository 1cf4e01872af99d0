// Package tcemlint lints CSS/Less sources and markup templates against the
// TCEM class-naming convention and the UI-pyramid layering rules.
//
// # Naming
//
// TCEM composes class names as {type}_{component}-{element}_{modifier},
// with behaviour state expressed as a separate is{State} class:
//
//	.mainNav                  component
//	.mainNav-item             component + element
//	.mainNav-item_compact     component + element + modifier
//	.js_mainNav               behaviour hook, never styled
//	.mainNav.isActive         component in its active state
//
// # Linting
//
// Lint stylesheets and the markup that references them:
//
//	config := tcemlint.Config{
//		SourceDir:     "styles",
//		StyleIncludes: []string{"layers/**/*.less"},
//		MarkupPaths:   []string{"templates/**/*.html"},
//	}
//	result, err := tcemlint.Lint(config)
//
// Issues are reported in golangci-lint format with file:line:col positions,
// severity, and (where a rewrite is unambiguous) a fix suggestion.
//
// # CLI Tool
//
// tcemlint also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/tcemlint/cmd/tcemlint@latest
package tcemlint
