package tcem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseValid(t *testing.T) {
	tests := []struct {
		name     string
		class    string
		expected Parts
	}{
		{
			name:     "component only",
			class:    "mainNav",
			expected: Parts{Component: "mainNav"},
		},
		{
			name:     "component with element",
			class:    "mainNav-item",
			expected: Parts{Component: "mainNav", Element: "item"},
		},
		{
			name:     "component with modifier",
			class:    "mainNav_compact",
			expected: Parts{Component: "mainNav", Modifier: "compact"},
		},
		{
			name:     "full chain",
			class:    "userCard-avatar_large",
			expected: Parts{Component: "userCard", Element: "avatar", Modifier: "large"},
		},
		{
			name:     "js type prefix",
			class:    "js_mainNav",
			expected: Parts{Type: "js", Component: "mainNav"},
		},
		{
			name:     "test type prefix with element",
			class:    "test_userCard-avatar",
			expected: Parts{Type: "test", Component: "userCard", Element: "avatar"},
		},
		{
			name:     "state class",
			class:    "isActive",
			expected: Parts{State: "Active"},
		},
		{
			name:     "multi-word state class",
			class:    "isLoadingSlow",
			expected: Parts{State: "LoadingSlow"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts, probs := Parse(tt.class)
			assert.Empty(t, probs)
			assert.Equal(t, tt.expected, parts)
			assert.Equal(t, tt.class, parts.String(), "String() must round-trip")
		})
	}
}

func TestParseViolations(t *testing.T) {
	tests := []struct {
		name  string
		class string
		rules []string
	}{
		{
			name:  "bem modifier separator",
			class: "btn--primary",
			rules: []string{RuleBEMSeparator},
		},
		{
			name:  "bem element separator",
			class: "card__header",
			rules: []string{RuleBEMSeparator},
		},
		{
			name:  "single word component",
			class: "nav",
			rules: []string{RuleComponentSingleWord},
		},
		{
			name:  "kebab-case component",
			class: "main-nav-item-label",
			rules: []string{RuleExtraElement},
		},
		{
			name:  "uppercase start",
			class: "MainNav",
			rules: []string{RuleComponentCase},
		},
		{
			name:  "unknown type prefix",
			class: "qa_mainNav_active",
			rules: []string{RuleUnknownType},
		},
		{
			name:  "too many modifiers",
			class: "mainNav_compact_dark",
			rules: []string{RuleExtraModifier},
		},
		{
			name:  "state used as modifier",
			class: "mainNav_isActive",
			rules: []string{RuleStateAsSegment},
		},
		{
			name:  "state used as element",
			class: "mainNav-isOpen",
			rules: []string{RuleStateAsSegment},
		},
		{
			name:  "state class with element separator",
			class: "isActive-item",
			rules: []string{RuleStateCase},
		},
		{
			name:  "empty class",
			class: "",
			rules: []string{RuleMissingComponent},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, probs := Parse(tt.class)
			require.NotEmpty(t, probs)

			var got []string
			for _, p := range probs {
				got = append(got, p.Rule)
			}
			for _, rule := range tt.rules {
				assert.Contains(t, got, rule)
			}
		})
	}
}

func TestParseAmbiguousIsPrefix(t *testing.T) {
	// Components that merely start with "is" are not state classes.
	parts, probs := Parse("islandPanel")
	assert.Empty(t, probs)
	assert.Equal(t, "islandPanel", parts.Component)
	assert.False(t, parts.IsState())
}

func TestParseTwoSegmentsWithoutType(t *testing.T) {
	// "fooBar_baz" is component+modifier, never an unknown type.
	parts, probs := Parse("fooBar_baz")
	assert.Empty(t, probs)
	assert.Equal(t, "fooBar", parts.Component)
	assert.Equal(t, "baz", parts.Modifier)
}

func TestRewriteBEM(t *testing.T) {
	tests := []struct {
		class    string
		expected string
	}{
		{"btn--primary", "btn_primary"},
		{"card__header", "card-header"},
		{"card__header--wide", "card-header_wide"},
		{"a__b__c", ""}, // double element has no unambiguous rewrite
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, RewriteBEM(tt.class), tt.class)
	}
}

func TestIsStateName(t *testing.T) {
	assert.True(t, IsStateName("isActive"))
	assert.True(t, IsStateName("isLoading"))
	assert.False(t, IsStateName("island"))
	assert.False(t, IsStateName("is"))
	assert.False(t, IsStateName("active"))
}
