package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// ListWorkflows lists the Actions workflows defined in a repository
func (c *Client) ListWorkflows(ctx context.Context, owner, repo string) ([]WorkflowInfo, error) {
	opts := &github.ListOptions{PerPage: 100}

	var all []WorkflowInfo
	for {
		workflows, resp, err := c.GitHubClient().Actions.ListWorkflows(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list workflows: %w", err)
		}

		for _, wf := range workflows.Workflows {
			if wf == nil {
				continue
			}
			all = append(all, WorkflowInfo{
				ID:    wf.GetID(),
				Name:  wf.GetName(),
				Path:  wf.GetPath(),
				State: wf.GetState(),
			})
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

// ListWorkflowRuns lists recent workflow runs for a branch, newest first
func (c *Client) ListWorkflowRuns(ctx context.Context, owner, repo, branch string, maxResults int) ([]WorkflowRun, error) {
	opts := &github.ListWorkflowRunsOptions{
		Branch:      branch,
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var all []WorkflowRun
	for {
		runs, resp, err := c.GitHubClient().Actions.ListRepositoryWorkflowRuns(ctx, owner, repo, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to list workflow runs: %w", err)
		}

		for _, run := range runs.WorkflowRuns {
			if run == nil {
				continue
			}
			if maxResults > 0 && len(all) >= maxResults {
				return all, nil
			}
			all = append(all, convertFromGitHubWorkflowRun(run))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return all, nil
}

func convertFromGitHubWorkflowRun(run *github.WorkflowRun) WorkflowRun {
	return WorkflowRun{
		ID:         run.GetID(),
		Name:       run.GetName(),
		HeadBranch: run.GetHeadBranch(),
		HeadSHA:    run.GetHeadSHA(),
		Status:     run.GetStatus(),
		Conclusion: run.GetConclusion(),
		URL:        run.GetHTMLURL(),
		CreatedAt:  run.GetCreatedAt().Time,
		UpdatedAt:  run.GetUpdatedAt().Time,
	}
}

// TriggerWorkflow dispatches a workflow on the given ref
func (c *Client) TriggerWorkflow(ctx context.Context, owner, repo string, workflowID int64, ref string, inputs map[string]interface{}) error {
	event := github.CreateWorkflowDispatchEventRequest{
		Ref:    ref,
		Inputs: inputs,
	}
	_, err := c.GitHubClient().Actions.CreateWorkflowDispatchEventByID(ctx, owner, repo, workflowID, event)
	if err != nil {
		return fmt.Errorf("failed to trigger workflow %d: %w", workflowID, err)
	}
	return nil
}

// RerunWorkflowRun re-runs a completed workflow run
func (c *Client) RerunWorkflowRun(ctx context.Context, owner, repo string, runID int64) error {
	_, err := c.GitHubClient().Actions.RerunWorkflowByID(ctx, owner, repo, runID)
	if err != nil {
		return fmt.Errorf("failed to rerun workflow run %d: %w", runID, err)
	}
	return nil
}
