package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var flagWorkflowRef string

var workflowCmd = &cobra.Command{
	Use:   "workflow",
	Short: "Inspect and trigger GitHub Actions workflows",
}

var workflowListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the workflows defined in the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		workflows, err := wb.client.ListWorkflows(cmd.Context(), wb.scope.Owner, wb.scope.Repo)
		if err != nil {
			return err
		}

		if len(workflows) == 0 {
			fmt.Printf("No workflows in %s/%s\n", wb.scope.Owner, wb.scope.Repo)
			return nil
		}
		for _, wf := range workflows {
			fmt.Printf("  %-12d %-10s %s\n", wf.ID, wf.State, wf.Path)
		}
		return nil
	},
}

var workflowRunCmd = &cobra.Command{
	Use:   "run <workflow-id-or-file>",
	Short: "Dispatch a workflow on the working branch",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		id, err := resolveWorkflowID(cmd, wb, args[0])
		if err != nil {
			return err
		}

		ref := flagWorkflowRef
		if ref == "" {
			ref = wb.scope.Branch
		}

		if err := wb.client.TriggerWorkflow(cmd.Context(), wb.scope.Owner, wb.scope.Repo, id, ref, nil); err != nil {
			return err
		}
		fmt.Printf("Dispatched workflow %d on %s\n", id, ref)
		return nil
	},
}

var workflowRerunCmd = &cobra.Command{
	Use:   "rerun <run-id>",
	Short: "Re-run a completed workflow run",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		runID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("run id must be numeric, got %q", args[0])
		}

		if err := wb.client.RerunWorkflowRun(cmd.Context(), wb.scope.Owner, wb.scope.Repo, runID); err != nil {
			return err
		}
		fmt.Printf("Re-running workflow run %d\n", runID)
		return nil
	},
}

// resolveWorkflowID accepts either a numeric workflow id or a workflow
// filename like ghbuild.yml and resolves it against the repository.
func resolveWorkflowID(cmd *cobra.Command, wb *workbench, spec string) (int64, error) {
	if id, err := strconv.ParseInt(spec, 10, 64); err == nil {
		return id, nil
	}

	workflows, err := wb.client.ListWorkflows(cmd.Context(), wb.scope.Owner, wb.scope.Repo)
	if err != nil {
		return 0, err
	}
	for _, wf := range workflows {
		if wf.Path == spec || strings.HasSuffix(wf.Path, "/"+spec) {
			return wf.ID, nil
		}
	}
	return 0, fmt.Errorf("no workflow named %q in %s/%s", spec, wb.scope.Owner, wb.scope.Repo)
}

func init() {
	workflowRunCmd.Flags().StringVar(&flagWorkflowRef, "ref", "", "Git ref to dispatch on (default: the working branch)")

	workflowCmd.AddCommand(workflowListCmd)
	workflowCmd.AddCommand(workflowRunCmd)
	workflowCmd.AddCommand(workflowRerunCmd)
	rootCmd.AddCommand(workflowCmd)
}
