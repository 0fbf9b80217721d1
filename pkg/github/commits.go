package github

import (
	"context"
	"fmt"
	"time"

	"github.com/google/go-github/v68/github"
)

// CommitFiles writes a set of files to a branch as one commit using the
// git data API: blobs, then a tree on top of the branch head, then a
// commit, then a ref update. Either the ref update lands or nothing
// does; partially uploaded blobs are unreachable and harmless.
func (c *Client) CommitFiles(ctx context.Context, owner, repo, branch, message string, files []CommitFile) (*CommitResult, error) {
	if len(files) == 0 {
		return nil, fmt.Errorf("no files to commit")
	}

	gh := c.GitHubClient()

	ref, _, err := gh.Git.GetRef(ctx, owner, repo, "refs/heads/"+branch)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve branch %s: %w", branch, err)
	}
	parentSHA := ref.GetObject().GetSHA()

	entries := make([]*github.TreeEntry, 0, len(files))
	for _, f := range files {
		blob, _, err := gh.Git.CreateBlob(ctx, owner, repo, &github.Blob{
			Content:  github.Ptr(f.Content),
			Encoding: github.Ptr("utf-8"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to create blob for %s: %w", f.Path, err)
		}
		entries = append(entries, &github.TreeEntry{
			Path: github.Ptr(f.Path),
			Mode: github.Ptr("100644"),
			Type: github.Ptr("blob"),
			SHA:  blob.SHA,
		})
	}

	tree, _, err := gh.Git.CreateTree(ctx, owner, repo, parentSHA, entries)
	if err != nil {
		return nil, fmt.Errorf("failed to create tree: %w", err)
	}

	commit, _, err := gh.Git.CreateCommit(ctx, owner, repo, &github.Commit{
		Message: github.Ptr(message),
		Tree:    tree,
		Parents: []*github.Commit{{SHA: github.Ptr(parentSHA)}},
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create commit: %w", err)
	}

	ref.Object.SHA = commit.SHA
	if _, _, err := gh.Git.UpdateRef(ctx, owner, repo, ref, false); err != nil {
		return nil, fmt.Errorf("failed to update branch %s: %w", branch, err)
	}

	return &CommitResult{
		SHA:     commit.GetSHA(),
		URL:     commit.GetHTMLURL(),
		Branch:  branch,
		Message: message,
		Files:   len(files),
		Created: time.Now(),
	}, nil
}

// GetBranch fetches head information for a branch
func (c *Client) GetBranch(ctx context.Context, owner, repo, branch string) (*BranchInfo, error) {
	b, _, err := c.GitHubClient().Repositories.GetBranch(ctx, owner, repo, branch, 1)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch branch %s: %w", branch, err)
	}

	return &BranchInfo{
		Name:      b.GetName(),
		SHA:       b.GetCommit().GetSHA(),
		Protected: b.GetProtected(),
	}, nil
}
