package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// GetFileContent fetches a single file at the given ref using go-github SDK.
// The returned content is decoded text.
func (c *Client) GetFileContent(ctx context.Context, owner, repo, path, ref string) (*RepoFile, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}

	file, _, _, err := c.GitHubClient().Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch file %s: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("path %s is a directory, not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode file %s: %w", path, err)
	}

	return &RepoFile{
		Path:    file.GetPath(),
		SHA:     file.GetSHA(),
		Size:    file.GetSize(),
		Content: content,
		HTMLURL: file.GetHTMLURL(),
	}, nil
}

// ListDirectory lists the entries of a directory at the given ref
func (c *Client) ListDirectory(ctx context.Context, owner, repo, path, ref string) ([]DirEntry, error) {
	opts := &github.RepositoryContentGetOptions{Ref: ref}

	file, dir, _, err := c.GitHubClient().Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list directory %s: %w", path, err)
	}
	if file != nil {
		return nil, fmt.Errorf("path %s is a file, not a directory", path)
	}

	entries := make([]DirEntry, 0, len(dir))
	for _, e := range dir {
		if e == nil {
			continue
		}
		entries = append(entries, DirEntry{
			Name: e.GetName(),
			Path: e.GetPath(),
			Type: e.GetType(),
			Size: e.GetSize(),
			SHA:  e.GetSHA(),
		})
	}

	return entries, nil
}
