// Package status surfaces repository health for the workbench status
// panel: workflows, recent workflow runs and releases. Fetches are
// parallel and best-effort; a failed branch leaves partial data and a
// warning rather than aborting the rest.
package status

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/litlfred/sgex/pkg/github"
	"github.com/litlfred/sgex/pkg/log"
)

// maxRunsShown limits the workflow runs fetched for display
const maxRunsShown = 20

// Source is the slice of the GitHub client the fetcher needs
type Source interface {
	ListWorkflows(ctx context.Context, owner, repo string) ([]github.WorkflowInfo, error)
	ListWorkflowRuns(ctx context.Context, owner, repo, branch string, maxResults int) ([]github.WorkflowRun, error)
	ListReleases(ctx context.Context, owner, repo string) ([]github.ReleaseInfo, error)
}

// Snapshot is one status fetch. Nil slices mean the corresponding
// fetch failed; the error is recorded in Errors.
type Snapshot struct {
	Workflows []github.WorkflowInfo `json:"workflows,omitempty"`
	Runs      []github.WorkflowRun  `json:"runs,omitempty"`
	Releases  []github.ReleaseInfo  `json:"releases,omitempty"`
	Errors    []string              `json:"errors,omitempty"`
	FetchedAt time.Time             `json:"fetched_at"`
}

// Partial reports whether any branch of the fetch failed
func (s *Snapshot) Partial() bool {
	return len(s.Errors) > 0
}

// Fetcher fetches status snapshots for one repository branch
type Fetcher struct {
	source Source
	owner  string
	repo   string
	branch string
}

// NewFetcher creates a fetcher for owner/repo@branch
func NewFetcher(source Source, owner, repo, branch string) *Fetcher {
	return &Fetcher{source: source, owner: owner, repo: repo, branch: branch}
}

// Fetch gathers workflows, runs and releases in parallel. Each branch
// that fails contributes a warning and an entry in Snapshot.Errors;
// Fetch itself only fails when the context is cancelled.
func (f *Fetcher) Fetch(ctx context.Context) (*Snapshot, error) {
	snapshot := &Snapshot{FetchedAt: time.Now()}
	var mu sync.Mutex

	record := func(what string, err error) {
		mu.Lock()
		defer mu.Unlock()
		snapshot.Errors = append(snapshot.Errors, what+": "+err.Error())
		log.Warn("status fetch branch failed", "what", what, "error", err)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		workflows, err := f.source.ListWorkflows(gctx, f.owner, f.repo)
		if err != nil {
			record("workflows", err)
			return nil
		}
		mu.Lock()
		snapshot.Workflows = workflows
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		runs, err := f.source.ListWorkflowRuns(gctx, f.owner, f.repo, f.branch, maxRunsShown)
		if err != nil {
			record("workflow runs", err)
			return nil
		}
		mu.Lock()
		snapshot.Runs = runs
		mu.Unlock()
		return nil
	})

	g.Go(func() error {
		releases, err := f.source.ListReleases(gctx, f.owner, f.repo)
		if err != nil {
			record("releases", err)
			return nil
		}
		mu.Lock()
		snapshot.Releases = releases
		mu.Unlock()
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return snapshot, nil
}
