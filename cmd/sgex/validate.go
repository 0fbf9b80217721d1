package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/validation"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate staged files",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		files, err := wb.ground.Files()
		if err != nil {
			return err
		}

		summary := wb.validator().ValidateStaged(files)
		printSummary(summary)

		if !summary.IsValid {
			return fmt.Errorf("validation found %d file(s) with errors", summary.InvalidElements)
		}
		return nil
	},
}

func printSummary(summary *validation.Summary) {
	fmt.Printf("Validated %d file(s): %d valid, %d invalid, %d empty\n",
		summary.TotalElements, summary.ValidElements, summary.InvalidElements, summary.MissingElements)

	for _, issue := range summary.Issues {
		loc := issue.Path
		if issue.Line > 0 {
			loc = fmt.Sprintf("%s:%d", issue.Path, issue.Line)
		}
		fmt.Printf("  [%s] %s: %s\n", issue.Severity, loc, issue.Message)
		if issue.Suggestion != "" {
			fmt.Printf("           suggestion: %s\n", issue.Suggestion)
		}
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
