package status

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litlfred/sgex/pkg/github"
)

type mockSource struct {
	workflowsErr error
	runsErr      error
	releasesErr  error
}

func (m *mockSource) ListWorkflows(ctx context.Context, owner, repo string) ([]github.WorkflowInfo, error) {
	if m.workflowsErr != nil {
		return nil, m.workflowsErr
	}
	return []github.WorkflowInfo{{ID: 1, Name: "CI", State: "active"}}, nil
}

func (m *mockSource) ListWorkflowRuns(ctx context.Context, owner, repo, branch string, maxResults int) ([]github.WorkflowRun, error) {
	if m.runsErr != nil {
		return nil, m.runsErr
	}
	return []github.WorkflowRun{{ID: 10, Name: "CI", Status: "completed", Conclusion: "success"}}, nil
}

func (m *mockSource) ListReleases(ctx context.Context, owner, repo string) ([]github.ReleaseInfo, error) {
	if m.releasesErr != nil {
		return nil, m.releasesErr
	}
	return []github.ReleaseInfo{{TagName: "v1.2.0"}}, nil
}

func TestFetchAllSucceed(t *testing.T) {
	f := NewFetcher(&mockSource{}, "who", "anc-dak", "main")

	snapshot, err := f.Fetch(t.Context())
	require.NoError(t, err)

	assert.Len(t, snapshot.Workflows, 1)
	assert.Len(t, snapshot.Runs, 1)
	assert.Len(t, snapshot.Releases, 1)
	assert.False(t, snapshot.Partial())
	assert.False(t, snapshot.FetchedAt.IsZero())
}

func TestFetchBestEffortOnPartialFailure(t *testing.T) {
	f := NewFetcher(&mockSource{runsErr: errors.New("boom")}, "who", "anc-dak", "main")

	snapshot, err := f.Fetch(t.Context())
	require.NoError(t, err, "one failed branch must not abort the fetch")

	assert.Len(t, snapshot.Workflows, 1)
	assert.Nil(t, snapshot.Runs)
	assert.Len(t, snapshot.Releases, 1)
	assert.True(t, snapshot.Partial())
	require.Len(t, snapshot.Errors, 1)
	assert.Contains(t, snapshot.Errors[0], "workflow runs")
}

func TestFetchAllFail(t *testing.T) {
	src := &mockSource{
		workflowsErr: errors.New("a"),
		runsErr:      errors.New("b"),
		releasesErr:  errors.New("c"),
	}
	f := NewFetcher(src, "who", "anc-dak", "main")

	snapshot, err := f.Fetch(t.Context())
	require.NoError(t, err)
	assert.Len(t, snapshot.Errors, 3)
}

func TestFetchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	f := NewFetcher(&mockSource{}, "who", "anc-dak", "main")
	_, err := f.Fetch(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPollerTicks(t *testing.T) {
	var ticks atomic.Int64
	p := NewPoller(10*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})

	p.Start(t.Context())
	time.Sleep(55 * time.Millisecond)
	p.Stop()

	got := ticks.Load()
	assert.GreaterOrEqual(t, got, int64(3), "expected immediate tick plus interval ticks")

	// No ticks after Stop
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, got, ticks.Load())
}

func TestPollerSkipsOverlappingTicks(t *testing.T) {
	var mu sync.Mutex
	inFlight, maxInFlight, total := 0, 0, 0

	p := NewPoller(5*time.Millisecond, func(ctx context.Context) {
		mu.Lock()
		inFlight++
		total++
		if inFlight > maxInFlight {
			maxInFlight = inFlight
		}
		mu.Unlock()

		// Slower than the interval to force overlap pressure
		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		inFlight--
		mu.Unlock()
	})

	p.Start(t.Context())
	time.Sleep(100 * time.Millisecond)
	p.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, maxInFlight, "at most one tick in flight")
	assert.Greater(t, total, 1)
}

func TestPollerStopIdempotent(t *testing.T) {
	p := NewPoller(time.Millisecond, func(ctx context.Context) {})
	p.Start(t.Context())
	p.Stop()
	p.Stop()
}

func TestPollerStartWhileRunningIsNoop(t *testing.T) {
	var ticks atomic.Int64
	p := NewPoller(5*time.Millisecond, func(ctx context.Context) {
		ticks.Add(1)
	})

	p.Start(t.Context())
	p.Start(t.Context())
	time.Sleep(12 * time.Millisecond)
	p.Stop()

	// A double start must not double the tick rate: with a 5ms
	// interval and ~12ms window a single loop fires at most 4 times.
	assert.LessOrEqual(t, ticks.Load(), int64(4))
}
