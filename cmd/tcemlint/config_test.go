package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/knadh/koanf/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// resetKoanf creates a fresh koanf instance for each test.
func resetKoanf() {
	k = koanf.New(".")
	flagSource = nil
}

func TestConfigFileLoading(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".tcemlint.yaml")
	configContent := `
verbose: true

lint:
  source: custom/styles
  strict: true
  threshold: 80.0
  output-format: summary
  styles:
    - "custom/**/*.less"

guide:
  document: docs/styleguide.md
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	assert.True(t, k.Bool("verbose"))
	assert.Equal(t, "custom/styles", k.String("lint.source"))
	assert.True(t, k.Bool("lint.strict"))
	assert.InDelta(t, 80.0, k.Float64("lint.threshold"), 0.01)
	assert.Equal(t, "summary", k.String("lint.output-format"))
	assert.Equal(t, []string{"custom/**/*.less"}, k.Strings("lint.styles"))
	assert.Equal(t, "docs/styleguide.md", k.String("guide.document"))
}

func TestConfigFileNotFound_UsesDefaults(t *testing.T) {
	resetKoanf()

	// Point to non-existent config — should not error
	require.NoError(t, loadConfigFromPath("/nonexistent/.tcemlint.yaml"))

	config := buildLintConfig()
	assert.Equal(t, "styles", config.SourceDir)
	assert.False(t, config.Strict)
	assert.InDelta(t, 0.0, config.Threshold, 0.01)
	assert.Equal(t, 0, config.MaxIssues)
	assert.True(t, config.PrintIssuedLines)
	assert.True(t, config.PrintLinterName)
	assert.Equal(t, []string{
		"layers/**/*.less",
		"layers/**/*.css",
	}, config.StyleIncludes)
	assert.Equal(t, []string{
		"templates/**/*.html",
		"templates/**/*.templ",
	}, config.MarkupPaths)
}

func TestConfigFileUnknownKey_Rejected(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".tcemlint.yaml")
	configContent := `
lint:
  strcit: true
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	err := loadConfigFromPath(configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), configPath)
}

func TestEnvVarOverridesConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".tcemlint.yaml")
	configContent := `
lint:
  source: from-file
  strict: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))

	// Set env vars that should override config file
	t.Setenv("TCEMLINT_LINT_SOURCE", "from-env")
	t.Setenv("TCEMLINT_LINT_STRICT", "true")

	require.NoError(t, loadConfigFromPath(configPath))

	assert.Equal(t, "from-env", k.String("lint.source"))
	assert.True(t, k.Bool("lint.strict"))
}

func TestBuildLintConfig_FromConfigFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	configPath := filepath.Join(dir, ".tcemlint.yaml")
	configContent := `
lint:
  source: web/styles
  strict: true
  threshold: 75.5
  styles:
    - "src/**/*.css"
  markup:
    - "src/**/*.templ"
  max-issues: 10
  print-lines: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(configContent), 0644))
	require.NoError(t, loadConfigFromPath(configPath))

	config := buildLintConfig()
	assert.Equal(t, "web/styles", config.SourceDir)
	assert.True(t, config.Strict)
	assert.InDelta(t, 75.5, config.Threshold, 0.01)
	assert.Equal(t, []string{"src/**/*.css"}, config.StyleIncludes)
	assert.Equal(t, []string{"src/**/*.templ"}, config.MarkupPaths)
	assert.Equal(t, 10, config.MaxIssues)
	assert.False(t, config.PrintIssuedLines)
}

func TestLoadConfigThroughLintCommand_FileBeatsFlagDefaults(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	configContent := `
lint:
  source: web/styles
  strict: true
  threshold: 75.5
  styles:
    - "src/**/*.css"
  markup:
    - "src/**/*.templ"
  print-lines: false
`
	require.NoError(t, os.WriteFile(".tcemlint.yaml", []byte(configContent), 0644))

	// Parse with no arguments: every lint flag keeps its default, and
	// none of those defaults may mask the config file.
	require.NoError(t, lintCmd.ParseFlags(nil))
	require.NoError(t, loadConfig(lintCmd))

	config := buildLintConfig()
	assert.Equal(t, "web/styles", config.SourceDir)
	assert.True(t, config.Strict)
	assert.InDelta(t, 75.5, config.Threshold, 0.01)
	assert.Equal(t, []string{"src/**/*.css"}, config.StyleIncludes)
	assert.Equal(t, []string{"src/**/*.templ"}, config.MarkupPaths)
	assert.False(t, config.PrintIssuedLines)
}

func TestLoadConfigThroughLintCommand_ExplicitFlagBeatsFile(t *testing.T) {
	resetKoanf()

	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".tcemlint.yaml", []byte(`
lint:
  source: web/styles
`), 0644))

	require.NoError(t, lintCmd.ParseFlags([]string{"--source", "cli/styles"}))
	t.Cleanup(func() {
		f := lintCmd.Flags().Lookup("source")
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	require.NoError(t, loadConfig(lintCmd))

	config := buildLintConfig()
	assert.Equal(t, "cli/styles", config.SourceDir)
}

func TestInitCommand_CreatesConfigFile(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".tcemlint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "lint:")
	assert.Contains(t, string(data), "guide:")
}

func TestInitCommand_RefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".tcemlint.yaml", []byte("verbose: false"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestInitCommand_ForceOverwrite(t *testing.T) {
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(origDir)
	})

	require.NoError(t, os.WriteFile(".tcemlint.yaml", []byte("verbose: false"), 0644))

	cmd := rootCmd
	cmd.SetArgs([]string{"init", "--force"})
	require.NoError(t, cmd.Execute())

	data, err := os.ReadFile(".tcemlint.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "lint:")
}

func TestVersionCommand(t *testing.T) {
	cmd := rootCmd
	cmd.SetArgs([]string{"version"})
	require.NoError(t, cmd.Execute())
}

func TestGetStringWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, "default", getStringWithFallback("flag-key", "config.key", "default"))
}

func TestGetBoolWithFallback(t *testing.T) {
	resetKoanf()

	assert.False(t, getBoolWithFallback("flag-key", "config.key", false))
	assert.True(t, getBoolWithFallback("flag-key", "config.key", true))
}

func TestGetIntWithFallback(t *testing.T) {
	resetKoanf()

	assert.Equal(t, 42, getIntWithFallback("flag-key", "config.key", 42))
}

func TestGetFloat64WithFallback(t *testing.T) {
	resetKoanf()

	assert.InDelta(t, 3.14, getFloat64WithFallback("flag-key", "config.key", 3.14), 0.01)
}
