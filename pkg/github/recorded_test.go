package github

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// setupRecordedClient creates a client backed by VCR fixtures. Tests
// using it skip when no fixture has been recorded yet.
func setupRecordedClient(t *testing.T, fixtureName string) (*Client, *Recorder) {
	t.Helper()

	fixturesDir := filepath.Join("testdata", "fixtures")
	if _, err := os.Stat(fixturesDir); os.IsNotExist(err) {
		t.Skipf("fixtures directory not found. To record fixtures, run: SGEX_VCR_MODE=record GITHUB_TOKEN=your_token go test ./pkg/github/...")
	}

	rec, err := NewRecorder(t, fixtureName)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			t.Skipf("fixture %q not found. To record it, run: SGEX_VCR_MODE=record GITHUB_TOKEN=your_token go test -v ./pkg/github/ -run %s", fixtureName, t.Name())
		}
		t.Fatalf("failed to create recorder: %v", err)
	}

	var token string
	if rec.IsRecording() {
		token = os.Getenv(TokenEnv)
		if token == "" {
			t.Fatalf("%s must be set when recording fixtures", TokenEnv)
		}
	} else {
		// Dummy token for replay; it is filtered from recordings
		token = "test-token"
	}

	testClient := NewClient(token,
		WithTimeout(10*time.Second),
		WithHTTPClient(rec.HTTPClient()),
	)

	return testClient, rec
}

func TestGetRepositoryRecorded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping recorded test in short mode")
	}

	client, rec := setupRecordedClient(t, "get_repository")
	defer rec.Stop()

	repo, err := client.GetRepository(t.Context(), "WorldHealthOrganization", "smart-ig-empty")
	if err != nil {
		t.Fatalf("GetRepository() error = %v", err)
	}

	if repo.Name != "smart-ig-empty" {
		t.Errorf("Name = %q, want %q", repo.Name, "smart-ig-empty")
	}
	if repo.Owner == "" {
		t.Error("Owner should not be empty")
	}
}

func TestFetchLatestReleaseRecorded(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping recorded test in short mode")
	}

	client, rec := setupRecordedClient(t, "fetch_latest_release")
	defer rec.Stop()

	release, err := client.FetchLatestRelease(t.Context(), "WorldHealthOrganization", "smart-anc")
	if err != nil {
		t.Fatalf("FetchLatestRelease() error = %v", err)
	}

	if release.TagName == "" {
		t.Error("TagName should not be empty")
	}
	if release.Draft {
		t.Error("latest release should not be a draft")
	}
}
