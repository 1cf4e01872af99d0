package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/tcemlint/internal/guide"
)

var guideCmd = &cobra.Command{
	Use:   "guide [document]",
	Short: "Run editorial checks on the style-guide document",
	Long: `Verify the style-guide markdown itself: every table-of-contents link
must resolve to an existing heading, and every Bad example must be paired
with a Good example in the same section.`,
	Args: cobra.MaximumNArgs(1),
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(_ *cobra.Command, args []string) error {
		document := getStringWithFallback("document", "guide.document", "STYLEGUIDE.md")
		if len(args) == 1 {
			document = args[0]
		}

		findings, err := guide.CheckFile(document)
		if err != nil {
			return err
		}

		quiet := getBoolWithFallback("quiet", "quiet", false)
		if !quiet {
			for _, f := range findings {
				fmt.Printf("%s:%d: %s (%s)\n", document, f.Line, f.Message, f.Rule)
			}
			if len(findings) == 0 {
				fmt.Printf("%s: no editorial problems found\n", document)
			}
		}

		if len(findings) > 0 {
			os.Exit(1)
		}
		return nil
	},
}

func init() {
	guideCmd.Flags().String("document", "", "Style-guide document to check")
}
