package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/dak"
)

var flagFetchOut string

var lsCmd = &cobra.Command{
	Use:   "ls [path]",
	Short: "List a directory of the repository at the working branch",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		path := ""
		if len(args) == 1 {
			path = strings.Trim(args[0], "/")
		}

		entries, err := wb.client.ListDirectory(cmd.Context(), wb.scope.Owner, wb.scope.Repo, path, wb.scope.Branch)
		if err != nil {
			return err
		}

		for _, e := range entries {
			if e.Type == "dir" {
				fmt.Printf("  %-8s %8s  %s/\n", e.Type, "", e.Name)
				continue
			}
			fmt.Printf("  %-8s %8d  %s\n", e.Type, e.Size, e.Name)
		}
		return nil
	},
}

var fetchCmd = &cobra.Command{
	Use:   "fetch <repo-path>",
	Short: "Download a repository file for local editing",
	Long: `Fetch downloads a file from the working branch so it can be edited
locally and staged again with 'sgex stage add'.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		repoPath := args[0]
		file, err := wb.client.GetFileContent(cmd.Context(), wb.scope.Owner, wb.scope.Repo, repoPath, wb.scope.Branch)
		if err != nil {
			return err
		}

		out := flagFetchOut
		if out == "" {
			out = filepath.Base(repoPath)
		}
		if out == "-" {
			fmt.Print(file.Content)
			return nil
		}

		if err := os.WriteFile(out, []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("Fetched %s (%d bytes) to %s\n", repoPath, file.Size, out)
		return nil
	},
}

var pagesCmd = &cobra.Command{
	Use:   "pages",
	Short: "List the narrative pages declared by the DAK",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		cfg, isDAK, err := dak.Detect(cmd.Context(), wb.client, wb.scope.Owner, wb.scope.Repo, wb.scope.Branch)
		if err != nil {
			return err
		}
		if cfg == nil {
			return fmt.Errorf("%s/%s has no %s", wb.scope.Owner, wb.scope.Repo, dak.SushiConfigPath)
		}
		if !isDAK {
			fmt.Printf("Note: %s/%s does not declare %s\n", wb.scope.Owner, wb.scope.Repo, dak.SmartBaseDependency)
		}

		pages, err := cfg.PageList()
		if err != nil {
			return err
		}
		if len(pages) == 0 {
			fmt.Println("No pages declared")
			return nil
		}
		printPages(pages, 0)
		return nil
	},
}

func printPages(pages []dak.Page, depth int) {
	indent := strings.Repeat("  ", depth+1)
	for _, p := range pages {
		if p.Title != "" {
			fmt.Printf("%s%s (%s)\n", indent, p.Title, p.Filename)
		} else {
			fmt.Printf("%s%s\n", indent, p.Filename)
		}
		printPages(p.Children, depth+1)
	}
}

func init() {
	fetchCmd.Flags().StringVarP(&flagFetchOut, "out", "o", "", "Local path to write to, or - for stdout (default: the file's basename)")

	rootCmd.AddCommand(lsCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(pagesCmd)
}
