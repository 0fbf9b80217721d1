package github

import (
	"context"
	"fmt"

	"github.com/google/go-github/v68/github"
)

// NewRepository describes a repository to be created
type NewRepository struct {
	Name        string
	Description string
	Private     bool
	// TemplateOwner/TemplateRepo, when set, create the repository from
	// a template (how new DAK repos are bootstrapped from
	// smart-ig-empty).
	TemplateOwner string
	TemplateRepo  string
}

// CreateRepository creates a repository for the authenticated user,
// optionally from a template repository.
func (c *Client) CreateRepository(ctx context.Context, req *NewRepository) (*RepositoryInfo, error) {
	gh := c.GitHubClient()

	var repo *github.Repository
	var err error

	if req.TemplateOwner != "" && req.TemplateRepo != "" {
		repo, _, err = gh.Repositories.CreateFromTemplate(ctx, req.TemplateOwner, req.TemplateRepo, &github.TemplateRepoRequest{
			Name:        github.Ptr(req.Name),
			Description: github.Ptr(req.Description),
			Private:     github.Ptr(req.Private),
		})
	} else {
		repo, _, err = gh.Repositories.Create(ctx, "", &github.Repository{
			Name:        github.Ptr(req.Name),
			Description: github.Ptr(req.Description),
			Private:     github.Ptr(req.Private),
		})
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create repository %s: %w", req.Name, err)
	}

	return convertFromGitHubRepository(repo), nil
}

// GetRepository fetches repository metadata
func (c *Client) GetRepository(ctx context.Context, owner, repo string) (*RepositoryInfo, error) {
	r, _, err := c.GitHubClient().Repositories.Get(ctx, owner, repo)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch repository %s/%s: %w", owner, repo, err)
	}
	return convertFromGitHubRepository(r), nil
}

func convertFromGitHubRepository(repo *github.Repository) *RepositoryInfo {
	owner := ""
	if repo.GetOwner() != nil {
		owner = repo.GetOwner().GetLogin()
	}
	return &RepositoryInfo{
		Owner:         owner,
		Name:          repo.GetName(),
		FullName:      repo.GetFullName(),
		Description:   repo.GetDescription(),
		DefaultBranch: repo.GetDefaultBranch(),
		Private:       repo.GetPrivate(),
		HTMLURL:       repo.GetHTMLURL(),
	}
}
