package tcemlint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/tcemlint/internal/pyramid"
)

func classNames(sheet *Stylesheet) []string {
	names := make([]string, 0, len(sheet.Classes))
	for _, occ := range sheet.Classes {
		names = append(names, occ.Name)
	}
	return names
}

func findOccurrence(t *testing.T, sheet *Stylesheet, name string) ClassOccurrence {
	t.Helper()
	for _, occ := range sheet.Classes {
		if occ.Name == name {
			return occ
		}
	}
	t.Fatalf("class %q not found in %v", name, classNames(sheet))
	return ClassOccurrence{}
}

func TestParseStylesheet_SimpleRule(t *testing.T) {
	sheet := ParseStylesheet(".mainNav { color: red; }", "nav.css", pyramid.Component)

	require.Len(t, sheet.Classes, 1)
	occ := sheet.Classes[0]
	assert.Equal(t, "mainNav", occ.Name)
	assert.Equal(t, "nav.css", occ.File)
	assert.Equal(t, 1, occ.Line)
	assert.Equal(t, 1, occ.Column)
	assert.Equal(t, []string{"mainNav"}, occ.Compound)
	assert.Equal(t, 1, occ.Declarations)
}

func TestParseStylesheet_CompoundSelector(t *testing.T) {
	sheet := ParseStylesheet(".mainNav.isActive:hover { display: block; }", "nav.css", pyramid.Component)

	require.Len(t, sheet.Classes, 2)
	for _, occ := range sheet.Classes {
		assert.Equal(t, []string{"mainNav", "isActive"}, occ.Compound)
		assert.Equal(t, []string{":hover"}, occ.Pseudo)
		assert.Equal(t, 1, occ.Declarations)
	}
}

func TestParseStylesheet_DescendantSelectorsAreSeparateCompounds(t *testing.T) {
	sheet := ParseStylesheet(".mainNav .mainNav-item { color: red; }", "nav.css", pyramid.Component)

	require.Len(t, sheet.Classes, 2)
	assert.Equal(t, []string{"mainNav"}, sheet.Classes[0].Compound)
	assert.Equal(t, []string{"mainNav-item"}, sheet.Classes[1].Compound)
}

func TestParseStylesheet_SelectorGroup(t *testing.T) {
	sheet := ParseStylesheet(".mainNav, .sideBar { margin: 0; }", "layout.css", pyramid.Application)

	assert.Equal(t, []string{"mainNav", "sideBar"}, classNames(sheet))
	assert.Equal(t, []string{"mainNav"}, sheet.Classes[0].Compound)
	assert.Equal(t, []string{"sideBar"}, sheet.Classes[1].Compound)
}

func TestParseStylesheet_LessNesting(t *testing.T) {
	content := `.accordionPanel {
  color: blue;
  border: 1px solid;

  .accordionPanel-header {
    font-weight: bold;
  }

  &.isOpen {
    display: block;
  }
}
`
	sheet := ParseStylesheet(content, "accordion.less", pyramid.Component)

	assert.Equal(t, []string{"accordionPanel", "accordionPanel-header", "isOpen"}, classNames(sheet))

	// Nested rule declarations do not count toward the parent.
	parent := findOccurrence(t, sheet, "accordionPanel")
	assert.Equal(t, 2, parent.Declarations)

	header := findOccurrence(t, sheet, "accordionPanel-header")
	assert.Equal(t, 1, header.Declarations)
	assert.Equal(t, 5, header.Line)

	// "&" merges the parent rule's classes into the compound.
	state := findOccurrence(t, sheet, "isOpen")
	assert.Equal(t, []string{"accordionPanel", "isOpen"}, state.Compound)
	assert.Equal(t, 1, state.Declarations)
}

func TestParseStylesheet_MediaQuery(t *testing.T) {
	content := `@media (min-width: 768px) {
  .heroBanner {
    padding: 2rem;
  }
}
`
	sheet := ParseStylesheet(content, "hero.css", pyramid.Component)

	require.Len(t, sheet.Classes, 1)
	assert.Equal(t, "heroBanner", sheet.Classes[0].Name)
	assert.Equal(t, 2, sheet.Classes[0].Line)
	assert.Equal(t, 1, sheet.Classes[0].Declarations)
}

func TestParseStylesheet_KeyframesSkipped(t *testing.T) {
	content := `@keyframes spin {
  from { transform: rotate(0deg); }
  to { transform: rotate(360deg); }
}
.spinnerIcon { animation: spin 1s; }
`
	sheet := ParseStylesheet(content, "spinner.css", pyramid.Component)

	assert.Equal(t, []string{"spinnerIcon"}, classNames(sheet))
}

func TestParseStylesheet_LessMixinsAndVariables(t *testing.T) {
	content := `@accent: #ff6600;

.calloutBox {
  .rounded();
  color: @accent;
}
`
	sheet := ParseStylesheet(content, "callout.less", pyramid.Component)

	// The mixin invocation is not a class occurrence and the variable
	// assignment is not a declaration.
	assert.Equal(t, []string{"calloutBox"}, classNames(sheet))
	assert.Equal(t, 1, sheet.Classes[0].Declarations)
}

func TestParseStylesheet_CommentsIgnored(t *testing.T) {
	content := `/* .ghostClass { color: red; } */
.realClass { color: blue; }
`
	sheet := ParseStylesheet(content, "real.css", pyramid.Component)

	assert.Equal(t, []string{"realClass"}, classNames(sheet))
	assert.Equal(t, 2, sheet.Classes[0].Line)
}

func TestParseStylesheet_TrailingDeclarationWithoutSemicolon(t *testing.T) {
	sheet := ParseStylesheet(".badgePill { color: red }", "badge.css", pyramid.Component)

	require.Len(t, sheet.Classes, 1)
	assert.Equal(t, 1, sheet.Classes[0].Declarations)
}

func TestParseStylesheet_ChildCombinator(t *testing.T) {
	sheet := ParseStylesheet(".cardStack > .cardStack-item { margin: 0; }", "card.css", pyramid.Component)

	require.Len(t, sheet.Classes, 2)
	assert.Equal(t, []string{"cardStack"}, sheet.Classes[0].Compound)
	assert.Equal(t, []string{"cardStack-item"}, sheet.Classes[1].Compound)
}

func TestParseStylesheetFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nav.css")
	require.NoError(t, os.WriteFile(path, []byte(".mainNav { color: red; }"), 0644))

	sheet, err := ParseStylesheetFile(path, pyramid.Component)
	require.NoError(t, err)
	assert.Equal(t, path, sheet.File)
	assert.Equal(t, pyramid.Component, sheet.Layer)
	assert.Equal(t, []string{"mainNav"}, classNames(sheet))
}

func TestParseStylesheetFile_NotFound(t *testing.T) {
	_, err := ParseStylesheetFile("/nonexistent/file.css", pyramid.Component)
	require.Error(t, err)
}
