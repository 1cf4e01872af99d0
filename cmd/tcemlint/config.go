package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"

	"github.com/yacobolo/tcemlint"
	"github.com/yacobolo/tcemlint/internal/schema"
)

var k = koanf.New(".")

// flagSource is the command whose flags were loaded by loadConfig. The
// fallback helpers use it to tell explicitly set flags from their
// defaults, which posflag also merges into k under the bare flag key.
var flagSource *cobra.Command

func flagChanged(name string) bool {
	return flagSource != nil && flagSource.Flags().Changed(name)
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	// Resolve config file path from flag
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = ".tcemlint.yaml"
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// 3. CLI flags (highest precedence - only explicitly set flags win in
	// the fallback helpers; unchanged flag defaults land under the bare
	// flag key but never mask file or env values)
	flagSource = cmd
	if err := k.Load(posflag.Provider(cmd.Flags(), ".", k), nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// Separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	// 1. Config file (lowest precedence among providers), schema-checked
	// first so option typos fail loudly.
	if data, err := os.ReadFile(configPath); err == nil { // #nosec G304 - path comes from CLI flag
		if err := schema.ValidateConfig(data); err != nil {
			return fmt.Errorf("config file %s: %w", configPath, err)
		}
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// 2. Environment variables (TCEMLINT_* prefix)
	if err := k.Load(env.Provider("TCEMLINT_", ".", func(s string) string {
		// TCEMLINT_LINT_STRICT -> lint.strict
		// TCEMLINT_VERBOSE -> verbose
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "TCEMLINT_")),
			"_", ".",
		)
	}), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

// buildLintConfig constructs the library's Config struct from koanf state.
func buildLintConfig() tcemlint.Config {
	config := tcemlint.Config{
		SourceDir:        getStringWithFallback("source", "lint.source", "styles"),
		Verbose:          getBoolWithFallback("verbose", "verbose", false),
		Strict:           getBoolWithFallback("strict", "lint.strict", false),
		Threshold:        getFloat64WithFallback("threshold", "lint.threshold", 0.0),
		MaxIssues:        getIntWithFallback("max-issues", "lint.max-issues", 0),
		MaxSameIssues:    getIntWithFallback("max-same-issues", "lint.max-same-issues", 0),
		PrintIssuedLines: getBoolWithFallback("print-lines", "lint.print-lines", true),
		PrintLinterName:  getBoolWithFallback("print-linter-name", "lint.print-linter-name", true),
		UseColors:        getBoolWithFallback("color", "color", false),
	}

	// Handle patterns: an explicitly set flag wins, then the config key
	if flagChanged("styles") {
		config.StyleIncludes = k.Strings("styles")
	} else if styles := k.Strings("lint.styles"); len(styles) > 0 {
		config.StyleIncludes = styles
	} else {
		config.StyleIncludes = []string{
			"layers/**/*.less",
			"layers/**/*.css",
		}
	}

	if flagChanged("markup") {
		config.MarkupPaths = k.Strings("markup")
	} else if markup := k.Strings("lint.markup"); len(markup) > 0 {
		config.MarkupPaths = markup
	} else {
		config.MarkupPaths = []string{
			"templates/**/*.html",
			"templates/**/*.templ",
		}
	}

	return config
}

// getStringWithFallback checks the flag when it was explicitly set, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if flagChanged(flagKey) {
		return k.String(flagKey)
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getBoolWithFallback checks the flag when it was explicitly set, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if flagChanged(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag when it was explicitly set, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if flagChanged(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}

// getFloat64WithFallback checks the flag when it was explicitly set, then the config file key, then returns the default.
func getFloat64WithFallback(flagKey, configKey string, defaultVal float64) float64 {
	if flagChanged(flagKey) {
		return k.Float64(flagKey)
	}
	if k.Exists(configKey) {
		return k.Float64(configKey)
	}
	return defaultVal
}
