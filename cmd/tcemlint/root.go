package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tcemlint",
	Short: "TCEM class-naming linter for CSS/Less projects",
	Long: `Lint stylesheets and markup against the TCEM naming convention:
{type}_{component}-{element}_{modifier} with separate is{State} classes,
scoped by the five-layer UI pyramid.`,
	// Default behavior: run lint when no subcommand is given.
	// loadConfig must run here because PreRunE of lintCmd is not
	// triggered when delegating via rootCmd.RunE.
	RunE: func(cmd *cobra.Command, _ []string) error {
		if err := loadConfig(cmd); err != nil {
			return err
		}
		return runLint()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().Bool("quiet", false, "Suppress all output (exit code only)")
	rootCmd.PersistentFlags().Bool("color", false, "Force color output")
	rootCmd.PersistentFlags().String("config", ".tcemlint.yaml", "Config file path")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(guideCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}
