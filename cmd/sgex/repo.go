package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/github"
)

var (
	flagRepoDescription string
	flagRepoPrivate     bool
	flagRepoTemplate    string
)

// defaultDAKTemplate is the empty IG template new DAK repos start from
const defaultDAKTemplate = "WorldHealthOrganization/smart-ig-empty"

var repoCmd = &cobra.Command{
	Use:   "repo",
	Short: "Inspect and create DAK repositories",
}

var repoCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a repository, by default from the SMART IG template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := github.NewClientFromEnv(
			github.WithRetryConfig(github.DefaultRetryConfig()),
		)
		if err != nil {
			return err
		}

		req := &github.NewRepository{
			Name:        args[0],
			Description: flagRepoDescription,
			Private:     flagRepoPrivate,
		}
		if flagRepoTemplate != "" {
			owner, repo, err := splitRepo(flagRepoTemplate)
			if err != nil {
				return err
			}
			req.TemplateOwner = owner
			req.TemplateRepo = repo
		}

		info, err := client.CreateRepository(cmd.Context(), req)
		if err != nil {
			return err
		}

		fmt.Printf("Created %s (default branch %s)\n%s\n", info.FullName, info.DefaultBranch, info.HTMLURL)
		return nil
	},
}

var repoInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show repository metadata",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		info, err := wb.client.GetRepository(cmd.Context(), wb.scope.Owner, wb.scope.Repo)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", info.FullName)
		if info.Description != "" {
			fmt.Printf("  %s\n", info.Description)
		}
		fmt.Printf("  default branch: %s\n", info.DefaultBranch)
		fmt.Printf("  %s\n", info.HTMLURL)
		return nil
	},
}

func init() {
	repoCreateCmd.Flags().StringVar(&flagRepoDescription, "description", "", "Repository description")
	repoCreateCmd.Flags().BoolVar(&flagRepoPrivate, "private", false, "Create a private repository")
	repoCreateCmd.Flags().StringVar(&flagRepoTemplate, "template", defaultDAKTemplate, "Template repository (owner/name), empty for none")

	repoCmd.AddCommand(repoCreateCmd)
	repoCmd.AddCommand(repoInfoCmd)
	rootCmd.AddCommand(repoCmd)
}
