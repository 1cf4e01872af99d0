package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Generate a default .tcemlint.yaml config file",
	Long:  `Create a .tcemlint.yaml configuration file in the current directory with sensible defaults.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		force, _ := cmd.Flags().GetBool("force")

		if _, err := os.Stat(".tcemlint.yaml"); err == nil && !force {
			return fmt.Errorf(".tcemlint.yaml already exists (use --force to overwrite)")
		}

		if err := os.WriteFile(".tcemlint.yaml", []byte(defaultConfig), 0644); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Println("Created .tcemlint.yaml")
		return nil
	},
}

const defaultConfig = `# tcemlint configuration
# Docs: https://github.com/yacobolo/tcemlint

# Shared settings
verbose: false
quiet: false
color: false             # force colored output even when not a TTY

# Linting settings
lint:
  source: styles
  styles:
    - "layers/**/*.less"
    - "layers/**/*.css"
  markup:
    - "templates/**/*.html"
    - "templates/**/*.templ"
  strict: false
  threshold: 0.0
  output-format: issues  # issues | summary | full | json | markdown
  max-issues: 0          # 0 = unlimited
  max-same-issues: 0     # 0 = unlimited
  print-lines: true
  print-linter-name: true

# Editorial checks on the style-guide document
guide:
  document: STYLEGUIDE.md
`

func init() {
	initCmd.Flags().Bool("force", false, "Overwrite existing config file")
}
