package github

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// WorkbenchRepoOwner is the GitHub repository owner for sgex itself
	WorkbenchRepoOwner = "litlfred"
	// WorkbenchRepoName is the GitHub repository name for sgex itself
	WorkbenchRepoName = "sgex"
	// VersionCheckCacheFile is the filename for the version check cache
	VersionCheckCacheFile = "version_check_cache.json"
	// VersionCheckCacheTTL is the time-to-live for the version check cache (24 hours)
	VersionCheckCacheTTL = 24 * time.Hour
	// VersionCheckEnvVar is the environment variable to disable version checking
	VersionCheckEnvVar = "SGEX_NO_VERSION_CHECK"
)

// versionCacheData represents the cached version check data
type versionCacheData struct {
	LatestVersion string       `json:"latest_version"`
	CacheTime     time.Time    `json:"cache_time"`
	ReleaseInfo   *ReleaseInfo `json:"release_info,omitempty"`
}

// FetchLatestRelease fetches the latest release from GitHub.
// Uses direct HTTP to avoid go-github dependency for this simple operation.
func (c *Client) FetchLatestRelease(ctx context.Context, owner, repo string) (*ReleaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", c.baseURL, owner, repo)

	req, err := c.NewRequest(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var release ReleaseInfo
	resp, err := c.Do(req, &release)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	defer resp.Close()

	return &release, nil
}

// ListReleases fetches releases for a repository, newest first,
// excluding drafts.
func (c *Client) ListReleases(ctx context.Context, owner, repo string) ([]ReleaseInfo, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases?per_page=100", c.baseURL, owner, repo)

	req, err := c.NewRequest(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var releases []ReleaseInfo
	resp, err := c.Do(req, &releases)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}
	defer resp.Close()

	filtered := releases[:0]
	for _, r := range releases {
		if !r.Draft {
			filtered = append(filtered, r)
		}
	}

	return filtered, nil
}

// CheckLatestWorkbenchRelease returns the latest stable sgex release,
// consulting a 24h on-disk cache first so repeated CLI invocations do
// not burn API quota. Set SGEX_NO_VERSION_CHECK to disable.
func (c *Client) CheckLatestWorkbenchRelease(ctx context.Context, cacheDir string) (*ReleaseInfo, error) {
	if os.Getenv(VersionCheckEnvVar) != "" {
		return nil, nil
	}

	cachePath := filepath.Join(cacheDir, VersionCheckCacheFile)
	if cached := readVersionCache(cachePath); cached != nil {
		return cached.ReleaseInfo, nil
	}

	// /releases/latest already excludes drafts and prereleases
	latest, err := c.FetchLatestRelease(ctx, WorkbenchRepoOwner, WorkbenchRepoName)
	if err != nil {
		return nil, err
	}
	if !strings.HasPrefix(latest.TagName, "v") {
		return nil, nil
	}

	writeVersionCache(cachePath, &versionCacheData{
		LatestVersion: latest.TagName,
		CacheTime:     time.Now(),
		ReleaseInfo:   latest,
	})

	return latest, nil
}

func readVersionCache(path string) *versionCacheData {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var cached versionCacheData
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil
	}
	if time.Since(cached.CacheTime) > VersionCheckCacheTTL {
		return nil
	}
	return &cached
}

func writeVersionCache(path string, data *versionCacheData) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return
	}
	buf, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return
	}
	// Cache write failures are non-fatal
	_ = os.WriteFile(path, buf, 0644)
}
