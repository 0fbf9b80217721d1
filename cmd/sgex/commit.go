package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/commit"
	"github.com/litlfred/sgex/pkg/github"
)

var (
	flagCommitMessage  string
	flagCommitOverride bool
)

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit all staged files to GitHub as one commit",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		orchestrator := commit.New(wb.ground, wb.validator(), wb.client)

		result, err := orchestrator.Commit(cmd.Context(), commit.Request{
			Message:  flagCommitMessage,
			Override: flagCommitOverride,
		})
		if err != nil {
			switch {
			case errors.Is(err, commit.ErrValidationBlocked):
				return fmt.Errorf("%w (run 'sgex validate' for details, or pass --override to proceed anyway)", err)
			case errors.Is(err, github.ErrPermissionDenied):
				return fmt.Errorf("%w (staged files are preserved)", err)
			default:
				return err
			}
		}

		fmt.Printf("Committed %d file(s) to %s: %s\n", result.Commit.Files, wb.scope, result.Commit.SHA)
		if result.Commit.URL != "" {
			fmt.Println(result.Commit.URL)
		}
		if result.Overridden {
			fmt.Println("Note: validation errors were overridden for this commit.")
		}
		return nil
	},
}

func init() {
	commitCmd.Flags().StringVarP(&flagCommitMessage, "message", "m", "", "Commit message (required)")
	commitCmd.Flags().BoolVar(&flagCommitOverride, "override", false, "Proceed despite validation errors")
	commitCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(commitCmd)
}
