package commit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litlfred/sgex/pkg/github"
	"github.com/litlfred/sgex/pkg/staging"
	"github.com/litlfred/sgex/pkg/validation"
)

// mockCollaborator counts calls so tests can assert which network
// operations were (not) issued.
type mockCollaborator struct {
	mu sync.Mutex

	user        *github.ActorInfo
	userErr     error
	canWrite    bool
	permErr     error
	commitErr   error
	permChecks  int
	commitCalls int

	// blockCommit, when set, holds CommitFiles until released
	blockCommit chan struct{}
}

func (m *mockCollaborator) GetCurrentUser(ctx context.Context) (*github.ActorInfo, error) {
	if m.userErr != nil {
		return nil, m.userErr
	}
	if m.user != nil {
		return m.user, nil
	}
	return &github.ActorInfo{Login: "litlfred", Type: "User"}, nil
}

func (m *mockCollaborator) CheckWritePermission(ctx context.Context, owner, repo, user string) (bool, error) {
	m.mu.Lock()
	m.permChecks++
	m.mu.Unlock()
	return m.canWrite, m.permErr
}

func (m *mockCollaborator) CommitFiles(ctx context.Context, owner, repo, branch, message string, files []github.CommitFile) (*github.CommitResult, error) {
	m.mu.Lock()
	m.commitCalls++
	m.mu.Unlock()
	if m.blockCommit != nil {
		<-m.blockCommit
	}
	if m.commitErr != nil {
		return nil, m.commitErr
	}
	return &github.CommitResult{SHA: "new-sha", Branch: branch, Message: message, Files: len(files)}, nil
}

func newTestOrchestrator(t *testing.T, collab Collaborator) (*Orchestrator, *staging.Ground) {
	t.Helper()

	ground := staging.New(staging.NewStore(t.TempDir()))
	require.NoError(t, ground.Initialize(staging.Scope{Owner: "who", Repo: "anc-dak", Branch: "main"}))

	return New(ground, validation.New(), collab), ground
}

func TestCommitRejectsBlankMessage(t *testing.T) {
	o, _ := newTestOrchestrator(t, &mockCollaborator{canWrite: true})

	_, err := o.Commit(t.Context(), Request{Message: "   "})
	assert.ErrorIs(t, err, ErrEmptyMessage)
}

func TestCommitRejectsEmptyStaging(t *testing.T) {
	collab := &mockCollaborator{canWrite: true}
	o, _ := newTestOrchestrator(t, collab)

	_, err := o.Commit(t.Context(), Request{Message: "update"})
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Zero(t, collab.permChecks, "no network call for an empty commit")
	assert.Zero(t, collab.commitCalls)
}

func TestCommitBlockedByValidation(t *testing.T) {
	collab := &mockCollaborator{canWrite: true}
	o, ground := newTestOrchestrator(t, collab)

	require.NoError(t, ground.AddFile("input/fsh/p.fsh", `Parent: "Unterminated`, staging.FileTypeContent))

	_, err := o.Commit(t.Context(), Request{Message: "update"})
	assert.ErrorIs(t, err, ErrValidationBlocked)
	assert.Zero(t, collab.commitCalls)
	assert.Equal(t, 1, ground.Len(), "staged files preserved on failure")
}

func TestCommitOverrideProceedsAndIsRecorded(t *testing.T) {
	collab := &mockCollaborator{canWrite: true}
	o, ground := newTestOrchestrator(t, collab)

	require.NoError(t, ground.AddFile("input/fsh/p.fsh", `Parent: "Unterminated`, staging.FileTypeContent))

	result, err := o.Commit(t.Context(), Request{Message: "update", Override: true})
	require.NoError(t, err)
	assert.True(t, result.Overridden)
	assert.Equal(t, 1, collab.commitCalls)
	assert.Equal(t, 0, ground.Len(), "staging cleared after successful commit")
}

func TestCommitPermissionDeniedBeforeWrite(t *testing.T) {
	collab := &mockCollaborator{canWrite: false}
	o, ground := newTestOrchestrator(t, collab)

	require.NoError(t, ground.AddFile("input/fsh/p.fsh", "Profile: ANCContact\n", staging.FileTypeContent))

	_, err := o.Commit(t.Context(), Request{Message: "update"})
	assert.ErrorIs(t, err, github.ErrPermissionDenied)
	assert.Equal(t, 1, collab.permChecks)
	assert.Zero(t, collab.commitCalls, "write call must not be issued without permission")
	assert.Equal(t, 1, ground.Len())
}

func TestCommitSuccessClearsStaging(t *testing.T) {
	collab := &mockCollaborator{canWrite: true}
	o, ground := newTestOrchestrator(t, collab)

	require.NoError(t, ground.AddFile("input/fsh/p.fsh", "Profile: ANCContact\n", staging.FileTypeContent))
	require.NoError(t, ground.AddFile("sushi-config.yaml", "id: who.anc\n", staging.FileTypeConfiguration))

	result, err := o.Commit(t.Context(), Request{Message: "Update profiles"})
	require.NoError(t, err)
	assert.Equal(t, "new-sha", result.Commit.SHA)
	assert.False(t, result.Overridden)
	assert.Equal(t, 0, ground.Len())

	// A second immediate commit with nothing new staged is again NoChanges
	_, err = o.Commit(t.Context(), Request{Message: "again"})
	assert.ErrorIs(t, err, ErrNoChanges)
	assert.Equal(t, 1, collab.commitCalls)
}

func TestCommitFailurePreservesStaging(t *testing.T) {
	collab := &mockCollaborator{canWrite: true, commitErr: &github.APIError{StatusCode: 409, Message: "merge conflict"}}
	o, ground := newTestOrchestrator(t, collab)

	require.NoError(t, ground.AddFile("input/fsh/p.fsh", "Profile: ANCContact\n", staging.FileTypeContent))

	_, err := o.Commit(t.Context(), Request{Message: "update"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "merge conflict")
	assert.Equal(t, 1, ground.Len(), "failed commit must preserve staged files")

	// Failure releases the single-flight guard; retry is possible
	collab.commitErr = nil
	_, err = o.Commit(t.Context(), Request{Message: "retry"})
	assert.NoError(t, err)
}

func TestSingleFlightGuard(t *testing.T) {
	release := make(chan struct{})
	collab := &mockCollaborator{canWrite: true, blockCommit: release}
	o, ground := newTestOrchestrator(t, collab)

	require.NoError(t, ground.AddFile("input/fsh/p.fsh", "Profile: ANCContact\n", staging.FileTypeContent))

	firstDone := make(chan error, 1)
	go func() {
		_, err := o.Commit(context.Background(), Request{Message: "first"})
		firstDone <- err
	}()

	// Wait until the first commit reaches the collaborator
	for {
		collab.mu.Lock()
		started := collab.commitCalls > 0
		collab.mu.Unlock()
		if started {
			break
		}
		time.Sleep(time.Millisecond)
	}

	_, err := o.Commit(context.Background(), Request{Message: "second"})
	assert.ErrorIs(t, err, ErrCommitInFlight)

	close(release)
	require.NoError(t, <-firstDone)
}
