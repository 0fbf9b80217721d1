// Package commit turns a validated staging snapshot into a single
// commit against GitHub. The orchestrator owns the commit-time rules:
// no empty commits, no commits past unresolved validation errors
// without an explicit override, no writes without write permission,
// and at most one commit in flight per staging ground.
package commit

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/litlfred/sgex/pkg/github"
	"github.com/litlfred/sgex/pkg/log"
	"github.com/litlfred/sgex/pkg/staging"
	"github.com/litlfred/sgex/pkg/validation"
)

var (
	// ErrNoChanges is returned when nothing is staged
	ErrNoChanges = errors.New("no staged changes to commit")
	// ErrEmptyMessage is returned for a blank commit message
	ErrEmptyMessage = errors.New("commit message must not be blank")
	// ErrValidationBlocked is returned when staged files have
	// unresolved validation errors and no override was given
	ErrValidationBlocked = errors.New("commit blocked by validation errors")
	// ErrCommitInFlight is returned when a commit for this ground is
	// already running
	ErrCommitInFlight = errors.New("a commit is already in progress")
)

// Collaborator is the slice of the GitHub client the orchestrator
// needs. *github.Client satisfies it; tests substitute mocks.
type Collaborator interface {
	GetCurrentUser(ctx context.Context) (*github.ActorInfo, error)
	CheckWritePermission(ctx context.Context, owner, repo, user string) (bool, error)
	CommitFiles(ctx context.Context, owner, repo, branch, message string, files []github.CommitFile) (*github.CommitResult, error)
}

// Request carries the user's commit intent
type Request struct {
	Message string
	// Override proceeds past validation errors. It is an explicit,
	// recorded user decision, never a silent bypass.
	Override bool
}

// Result reports a completed commit
type Result struct {
	Commit     *github.CommitResult `json:"commit"`
	Summary    *validation.Summary  `json:"summary"`
	Overridden bool                 `json:"overridden,omitempty"`
}

// Orchestrator coordinates staging ground, validator and collaborator
// for the commit workflow. One orchestrator serves one ground.
type Orchestrator struct {
	ground    *staging.Ground
	validator *validation.Validator
	collab    Collaborator

	mu       sync.Mutex
	inFlight bool
}

// New creates an orchestrator over the given ground
func New(ground *staging.Ground, validator *validation.Validator, collab Collaborator) *Orchestrator {
	return &Orchestrator{
		ground:    ground,
		validator: validator,
		collab:    collab,
	}
}

// Validate runs the validator over the current staging snapshot
func (o *Orchestrator) Validate() (*validation.Summary, error) {
	files, err := o.ground.Files()
	if err != nil {
		return nil, err
	}
	return o.validator.ValidateStaged(files), nil
}

// Commit validates, checks write permission, and writes all staged
// files as one commit. On success the staging ground is cleared; on
// any failure staged files are preserved for retry. Once the write
// call is issued the operation is not cancellable.
func (o *Orchestrator) Commit(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, ErrEmptyMessage
	}

	if err := o.acquire(); err != nil {
		return nil, err
	}
	defer o.release()

	scope := o.ground.Scope()

	files, err := o.ground.Files()
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, ErrNoChanges
	}

	summary := o.validator.ValidateStaged(files)
	if !summary.IsValid {
		if !req.Override {
			return nil, fmt.Errorf("%w: %d file(s) with errors", ErrValidationBlocked, summary.InvalidElements)
		}
		log.Warn("validation errors overridden by user",
			"scope", scope.String(),
			"invalid_files", summary.InvalidElements)
	}

	user, err := o.collab.GetCurrentUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to identify user: %w", err)
	}

	allowed, err := o.collab.CheckWritePermission(ctx, scope.Owner, scope.Repo, user.Login)
	if err != nil {
		return nil, fmt.Errorf("permission check failed: %w", err)
	}
	if !allowed {
		return nil, fmt.Errorf("%s cannot push to %s/%s: %w", user.Login, scope.Owner, scope.Repo, github.ErrPermissionDenied)
	}

	commitFiles := make([]github.CommitFile, len(files))
	for i, f := range files {
		commitFiles[i] = github.CommitFile{Path: f.Path, Content: f.Content}
	}

	result, err := o.collab.CommitFiles(ctx, scope.Owner, scope.Repo, scope.Branch, req.Message, commitFiles)
	if err != nil {
		// Staged files stay put so the user can retry or adjust
		return nil, fmt.Errorf("commit failed: %w", err)
	}

	if err := o.ground.Clear(); err != nil {
		// The commit landed; a stale staging file is recoverable by an
		// explicit discard, so report but don't fail the commit.
		log.Error("failed to clear staging ground after commit",
			"scope", scope.String(), "error", err)
	}

	log.Info("committed staged changes",
		"scope", scope.String(),
		"sha", result.SHA,
		"files", len(files),
		"overridden", req.Override && !summary.IsValid)

	return &Result{
		Commit:     result,
		Summary:    summary,
		Overridden: req.Override && !summary.IsValid,
	}, nil
}

func (o *Orchestrator) acquire() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.inFlight {
		return ErrCommitInFlight
	}
	o.inFlight = true
	return nil
}

func (o *Orchestrator) release() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.inFlight = false
}
