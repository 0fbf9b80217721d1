// Package staging implements the local staging ground: the set of
// pending file edits for one DAK repository branch, accumulated before
// they are committed to GitHub as a single commit. The ground is
// durable across restarts; every mutation is persisted to the state
// directory.
package staging

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"
)

// ErrNotInitialized is returned by mutating operations before
// Initialize has bound the ground to a repository branch.
var ErrNotInitialized = errors.New("staging ground not initialized")

// FileType classifies a staged file for display and validation routing
type FileType string

const (
	// FileTypeContent is DAK content (FSH, CQL, BPMN, measures)
	FileTypeContent FileType = "content"
	// FileTypeConfiguration is build/IG configuration (sushi-config.yaml, ig.ini)
	FileTypeConfiguration FileType = "configuration"
	// FileTypeDocumentation is narrative content (markdown pages)
	FileTypeDocumentation FileType = "documentation"
)

// StagedFile is one pending edit, keyed by repository-relative path
type StagedFile struct {
	Path       string    `json:"path"`
	Content    string    `json:"content"`
	Type       FileType  `json:"type"`
	SizeBytes  int       `json:"size_bytes"`
	ModifiedAt time.Time `json:"modified_at"`
}

// Scope identifies the repository branch a ground is bound to
type Scope struct {
	Owner  string `json:"owner"`
	Repo   string `json:"repo"`
	Branch string `json:"branch"`
}

// String returns the canonical owner/repo@branch form
func (s Scope) String() string {
	return fmt.Sprintf("%s/%s@%s", s.Owner, s.Repo, s.Branch)
}

// IsZero reports whether the scope is unbound
func (s Scope) IsZero() bool {
	return s.Owner == "" && s.Repo == "" && s.Branch == ""
}

// Ground holds the pending edits for one scope. Construct with New;
// all operations except Initialize fail with ErrNotInitialized until a
// scope is bound.
type Ground struct {
	mu    sync.RWMutex
	store *Store
	scope Scope
	files map[string]StagedFile
	now   func() time.Time
}

// New creates an uninitialized ground backed by the given store
func New(store *Store) *Ground {
	return &Ground{
		store: store,
		now:   time.Now,
	}
}

// Initialize binds the ground to a scope and loads any previously
// persisted entries for that exact (owner, repo, branch) key.
func (g *Ground) Initialize(scope Scope) error {
	if scope.Owner == "" || scope.Repo == "" || scope.Branch == "" {
		return fmt.Errorf("incomplete scope: %s", scope)
	}

	files, err := g.store.Load(scope)
	if err != nil {
		return fmt.Errorf("failed to load staging ground for %s: %w", scope, err)
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.scope = scope
	g.files = files
	return nil
}

// Scope returns the bound scope (zero value when uninitialized)
func (g *Ground) Scope() Scope {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.scope
}

// AddFile inserts or replaces the entry for path and persists the
// ground. Re-adding a path replaces the prior entry and updates its
// modification time.
func (g *Ground) AddFile(path, content string, fileType FileType) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.scope.IsZero() {
		return ErrNotInitialized
	}
	if path == "" {
		return fmt.Errorf("staged file path must not be empty")
	}

	g.files[path] = StagedFile{
		Path:       path,
		Content:    content,
		Type:       fileType,
		SizeBytes:  len(content),
		ModifiedAt: g.now(),
	}

	return g.store.Save(g.scope, g.files)
}

// RemoveFile deletes the entry for path. Removing an absent path is a
// no-op, not an error.
func (g *Ground) RemoveFile(path string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.scope.IsZero() {
		return ErrNotInitialized
	}
	if _, ok := g.files[path]; !ok {
		return nil
	}

	delete(g.files, path)
	return g.store.Save(g.scope, g.files)
}

// Files returns a snapshot of staged files ordered by path
func (g *Ground) Files() ([]StagedFile, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if g.scope.IsZero() {
		return nil, ErrNotInitialized
	}

	files := make([]StagedFile, 0, len(g.files))
	for _, f := range g.files {
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	return files, nil
}

// Get returns the staged file for path if present
func (g *Ground) Get(path string) (StagedFile, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	f, ok := g.files[path]
	return f, ok
}

// Len returns the number of staged files
func (g *Ground) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.files)
}

// Clear empties the ground and its persisted scope. Invoked after a
// successful commit or an explicit discard.
func (g *Ground) Clear() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.scope.IsZero() {
		return ErrNotInitialized
	}

	g.files = make(map[string]StagedFile)
	return g.store.Save(g.scope, g.files)
}

// DetectFileType classifies a path by extension the way the editors do
func DetectFileType(path string) FileType {
	switch {
	case hasSuffix(path, ".md"):
		return FileTypeDocumentation
	case hasSuffix(path, ".yaml"), hasSuffix(path, ".yml"), hasSuffix(path, ".ini"), hasSuffix(path, ".json"):
		return FileTypeConfiguration
	default:
		return FileTypeContent
	}
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
