// Package bookmarks keeps the user's list of DAK repositories and
// branches for quick access across sessions.
package bookmarks

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"
)

// BookmarksFile is the filename under the state directory
const BookmarksFile = "bookmarks.json"

// Bookmark marks one repository branch the user works on
type Bookmark struct {
	Owner   string    `json:"owner"`
	Repo    string    `json:"repo"`
	Branch  string    `json:"branch"`
	Title   string    `json:"title,omitempty"`
	AddedAt time.Time `json:"added_at"`
}

// Key returns the identity of the bookmark within the list
func (b Bookmark) Key() string {
	return fmt.Sprintf("%s/%s@%s", b.Owner, b.Repo, b.Branch)
}

// List manages the persisted bookmark collection
type List struct {
	mu   sync.Mutex
	path string
}

// NewList creates a list stored under stateDir
func NewList(stateDir string) *List {
	return &List{path: filepath.Join(stateDir, BookmarksFile)}
}

// Add inserts a bookmark, replacing any existing entry with the same
// owner/repo/branch.
func (l *List) Add(b Bookmark) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if b.Owner == "" || b.Repo == "" || b.Branch == "" {
		return fmt.Errorf("bookmark requires owner, repo and branch")
	}
	if b.AddedAt.IsZero() {
		b.AddedAt = time.Now()
	}

	all, err := l.load()
	if err != nil {
		return err
	}

	replaced := false
	for i := range all {
		if all[i].Key() == b.Key() {
			all[i] = b
			replaced = true
			break
		}
	}
	if !replaced {
		all = append(all, b)
	}

	return l.save(all)
}

// Remove deletes the bookmark with the same owner/repo/branch.
// Removing an absent bookmark is a no-op.
func (l *List) Remove(owner, repo, branch string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load()
	if err != nil {
		return err
	}

	key := Bookmark{Owner: owner, Repo: repo, Branch: branch}.Key()
	filtered := all[:0]
	for _, b := range all {
		if b.Key() != key {
			filtered = append(filtered, b)
		}
	}
	if len(filtered) == len(all) {
		return nil
	}

	return l.save(filtered)
}

// All returns bookmarks sorted by key
func (l *List) All() ([]Bookmark, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	all, err := l.load()
	if err != nil {
		return nil, err
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Key() < all[j].Key() })
	return all, nil
}

func (l *List) load() ([]Bookmark, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read bookmarks: %w", err)
	}

	var all []Bookmark
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, fmt.Errorf("failed to parse bookmarks: %w", err)
	}
	return all, nil
}

func (l *List) save(all []Bookmark) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal bookmarks: %w", err)
	}

	if err := os.WriteFile(l.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write bookmarks: %w", err)
	}
	return nil
}
