package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	flagIssueTitle  string
	flagIssueBody   string
	flagIssueLabels []string
	flagUseMarker   bool
)

var issueCmd = &cobra.Command{
	Use:   "issue",
	Short: "Create issues and comments on the DAK repository",
}

var issueCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an issue",
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagIssueTitle == "" {
			return fmt.Errorf("--title is required")
		}

		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		url, err := wb.client.CreateIssue(cmd.Context(), wb.scope.Owner, wb.scope.Repo, flagIssueTitle, flagIssueBody, flagIssueLabels)
		if err != nil {
			return err
		}

		fmt.Printf("Created issue: %s\n", url)
		return nil
	},
}

var issueCommentCmd = &cobra.Command{
	Use:   "comment <issue-number>",
	Short: "Comment on an issue or PR",
	Long: "Comment on an issue or PR. With --managed, the comment is identified by a marker\n" +
		"and updated in place on repeat invocations instead of posting duplicates.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		number, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid issue number %q", args[0])
		}
		if flagIssueBody == "" {
			return fmt.Errorf("--body is required")
		}

		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		var id int64
		if flagUseMarker {
			id, err = wb.client.UpsertMarkedComment(cmd.Context(), wb.scope.Owner, wb.scope.Repo, number, "", flagIssueBody)
		} else {
			id, err = wb.client.CreateIssueComment(cmd.Context(), wb.scope.Owner, wb.scope.Repo, number, flagIssueBody)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Comment %d on issue #%d\n", id, number)
		return nil
	},
}

func init() {
	issueCreateCmd.Flags().StringVar(&flagIssueTitle, "title", "", "Issue title")
	issueCreateCmd.Flags().StringVar(&flagIssueBody, "body", "", "Issue body")
	issueCreateCmd.Flags().StringSliceVar(&flagIssueLabels, "label", nil, "Label to apply (repeatable)")

	issueCommentCmd.Flags().StringVar(&flagIssueBody, "body", "", "Comment body")
	issueCommentCmd.Flags().BoolVar(&flagUseMarker, "managed", false, "Maintain a single marker-identified comment")

	issueCmd.AddCommand(issueCreateCmd)
	issueCmd.AddCommand(issueCommentCmd)
	rootCmd.AddCommand(issueCmd)
}
