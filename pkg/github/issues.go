package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v68/github"
)

// StatusCommentMarker is the HTML comment marker identifying the
// workbench's managed status comment on an issue or PR.
const StatusCommentMarker = "<!-- sgex-deployment-status-comment -->"

// CreateIssue creates a new GitHub issue and returns its URL
func (c *Client) CreateIssue(ctx context.Context, owner, repo, title, body string, labels []string) (string, error) {
	req := &github.IssueRequest{
		Title:  &title,
		Body:   &body,
		Labels: &labels,
	}

	issue, _, err := c.GitHubClient().Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return "", fmt.Errorf("failed to create issue: %w", err)
	}

	return issue.GetHTMLURL(), nil
}

// CreateIssueComment creates a new comment on an issue or PR
func (c *Client) CreateIssueComment(ctx context.Context, owner, repo string, issueNumber int, body string) (int64, error) {
	comment, _, err := c.GitHubClient().Issues.CreateComment(ctx, owner, repo, issueNumber, &github.IssueComment{Body: &body})
	if err != nil {
		return 0, fmt.Errorf("failed to create issue comment: %w", err)
	}
	return comment.GetID(), nil
}

// EditIssueComment edits an existing issue or PR comment
func (c *Client) EditIssueComment(ctx context.Context, owner, repo string, commentID int64, body string) error {
	_, _, err := c.GitHubClient().Issues.EditComment(ctx, owner, repo, commentID, &github.IssueComment{Body: &body})
	if err != nil {
		return fmt.Errorf("failed to edit issue comment: %w", err)
	}
	return nil
}

// ListIssueComments fetches comments for an issue with pagination
func (c *Client) ListIssueComments(ctx context.Context, owner, repo string, issueNumber int) ([]IssueComment, error) {
	opts := &github.IssueListCommentsOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}

	var allComments []IssueComment
	for {
		comments, resp, err := c.GitHubClient().Issues.ListComments(ctx, owner, repo, issueNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch issue comments: %w", err)
		}

		for _, comment := range comments {
			allComments = append(allComments, convertFromGitHubIssueComment(comment))
		}

		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return allComments, nil
}

// convertFromGitHubIssueComment converts a github.IssueComment to our IssueComment type
func convertFromGitHubIssueComment(comment *github.IssueComment) IssueComment {
	author := ""
	if user := comment.GetUser(); user != nil {
		author = user.GetLogin()
	}

	return IssueComment{
		CommentID: comment.GetID(),
		URL:       comment.GetHTMLURL(),
		Body:      comment.GetBody(),
		Author:    author,
		CreatedAt: comment.GetCreatedAt().Time,
		UpdatedAt: comment.GetUpdatedAt().Time,
	}
}

// UpsertMarkedComment creates or updates the single managed comment on
// an issue identified by marker. The marker is prepended to the body if
// absent so later invocations find the same comment instead of posting
// duplicates.
func (c *Client) UpsertMarkedComment(ctx context.Context, owner, repo string, issueNumber int, marker, body string) (int64, error) {
	if marker == "" {
		marker = StatusCommentMarker
	}
	if !strings.Contains(body, marker) {
		body = marker + "\n" + body
	}

	comments, err := c.ListIssueComments(ctx, owner, repo, issueNumber)
	if err != nil {
		return 0, fmt.Errorf("failed to find managed comment: %w", err)
	}

	for _, comment := range comments {
		if strings.Contains(comment.Body, marker) {
			if err := c.EditIssueComment(ctx, owner, repo, comment.CommentID, body); err != nil {
				return 0, err
			}
			return comment.CommentID, nil
		}
	}

	return c.CreateIssueComment(ctx, owner, repo, issueNumber, body)
}
