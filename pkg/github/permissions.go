package github

import (
	"context"
	"fmt"
	"strings"
)

// writePermissions are the repository permission levels that allow
// committing through the API.
var writePermissions = map[string]bool{
	"admin":    true,
	"maintain": true,
	"write":    true,
}

// CheckWritePermission reports whether the given user can push to the
// repository, via the collaborator permission endpoint.
func (c *Client) CheckWritePermission(ctx context.Context, owner, repo, user string) (bool, error) {
	perm, _, err := c.GitHubClient().Repositories.GetPermissionLevel(ctx, owner, repo, user)
	if err != nil {
		return false, fmt.Errorf("failed to check permission for %s on %s/%s: %w", user, owner, repo, err)
	}

	return writePermissions[perm.GetPermission()], nil
}

// GetCurrentUser retrieves the authenticated user's identity information.
// Returns ActorInfo with login and type (User or App).
func (c *Client) GetCurrentUser(ctx context.Context) (*ActorInfo, error) {
	user, _, err := c.GitHubClient().Users.Get(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	info := &ActorInfo{
		Login:  user.GetLogin(),
		Type:   user.GetType(),
		Source: "token",
	}

	// Bot usernames end with "[bot]", extract the app slug
	// e.g., "github-actions[bot]" -> "github-actions"
	if user.GetType() == "Bot" && info.Login != "" {
		if idx := strings.Index(info.Login, "[bot]"); idx > 0 {
			info.AppSlug = info.Login[:idx]
			info.Type = "App"
		}
	}

	return info, nil
}
