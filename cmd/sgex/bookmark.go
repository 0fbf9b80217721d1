package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/bookmarks"
	"github.com/litlfred/sgex/pkg/config"
)

var flagBookmarkTitle string

var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage bookmarked DAK repositories",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Bookmark the current repository and branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		list := bookmarks.NewList(wb.stateDir)
		err = list.Add(bookmarks.Bookmark{
			Owner:  wb.scope.Owner,
			Repo:   wb.scope.Repo,
			Branch: wb.scope.Branch,
			Title:  flagBookmarkTitle,
		})
		if err != nil {
			return err
		}

		fmt.Printf("Bookmarked %s\n", wb.scope)
		return nil
	},
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove the bookmark for the current repository and branch",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(false)
		if err != nil {
			return err
		}

		list := bookmarks.NewList(wb.stateDir)
		if err := list.Remove(wb.scope.Owner, wb.scope.Repo, wb.scope.Branch); err != nil {
			return err
		}

		fmt.Printf("Removed bookmark for %s\n", wb.scope)
		return nil
	},
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List bookmarks",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromCurrentDir()
		if err != nil {
			return err
		}
		stateDir, _ := cfg.ResolveString(flagStateDir, cfg.StateDir, cfg.EffectiveStateDir())

		list := bookmarks.NewList(stateDir)
		all, err := list.All()
		if err != nil {
			return err
		}

		if len(all) == 0 {
			fmt.Println("No bookmarks.")
			return nil
		}
		for _, b := range all {
			if b.Title != "" {
				fmt.Printf("  %-40s %s\n", b.Key(), b.Title)
			} else {
				fmt.Printf("  %s\n", b.Key())
			}
		}
		return nil
	},
}

func init() {
	bookmarkAddCmd.Flags().StringVar(&flagBookmarkTitle, "title", "", "Display title for the bookmark")

	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)
	rootCmd.AddCommand(bookmarkCmd)
}
