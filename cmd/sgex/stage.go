package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/staging"
)

var (
	flagStageFrom string
	flagStageType string
)

var stageCmd = &cobra.Command{
	Use:   "stage",
	Short: "Manage the staging ground of pending edits",
}

var stageAddCmd = &cobra.Command{
	Use:   "add <repo-path>",
	Short: "Stage a file for the next commit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		repoPath := args[0]
		localPath := flagStageFrom
		if localPath == "" {
			localPath = repoPath
		}

		content, err := os.ReadFile(localPath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", localPath, err)
		}

		fileType := staging.FileType(flagStageType)
		if flagStageType == "" {
			fileType = staging.DetectFileType(repoPath)
		}

		if err := wb.ground.AddFile(repoPath, string(content), fileType); err != nil {
			return err
		}

		fmt.Printf("Staged %s (%d bytes, %s) for %s\n", repoPath, len(content), fileType, wb.scope)
		return nil
	},
}

var stageRemoveCmd = &cobra.Command{
	Use:   "remove <repo-path>",
	Short: "Unstage a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		if err := wb.ground.RemoveFile(args[0]); err != nil {
			return err
		}
		fmt.Printf("Unstaged %s\n", args[0])
		return nil
	},
}

var stageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List staged files",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		files, err := wb.ground.Files()
		if err != nil {
			return err
		}

		if len(files) == 0 {
			fmt.Printf("Nothing staged for %s\n", wb.scope)
			return nil
		}

		fmt.Printf("Staged for %s:\n", wb.scope)
		for _, f := range files {
			fmt.Printf("  %-16s %8d  %s\n", f.Type, f.SizeBytes, f.Path)
		}
		return nil
	},
}

var stageDiscardCmd = &cobra.Command{
	Use:   "discard",
	Short: "Discard all staged edits for the current branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		n := wb.ground.Len()
		if err := wb.ground.Clear(); err != nil {
			return err
		}
		fmt.Printf("Discarded %d staged file(s) for %s\n", n, wb.scope)
		return nil
	},
}

func init() {
	stageAddCmd.Flags().StringVarP(&flagStageFrom, "from", "f", "", "Local file to read content from (default: the repo path itself)")
	stageAddCmd.Flags().StringVarP(&flagStageType, "type", "t", "", "File type: content, configuration, documentation (default: by extension)")

	stageCmd.AddCommand(stageAddCmd)
	stageCmd.AddCommand(stageRemoveCmd)
	stageCmd.AddCommand(stageListCmd)
	stageCmd.AddCommand(stageDiscardCmd)
	rootCmd.AddCommand(stageCmd)
}
