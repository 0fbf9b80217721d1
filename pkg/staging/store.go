package staging

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// persistedScope is the on-disk shape of one staging scope
type persistedScope struct {
	Scope Scope        `json:"scope"`
	Files []StagedFile `json:"files"`
}

// Store persists staging scopes to a state directory, one JSON file
// per (owner, repo, branch) key.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir, defaulting to
// ~/.sgex/staging when dir is empty.
func NewStore(dir string) *Store {
	if dir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			dir = filepath.Join(os.TempDir(), ".sgex-staging")
		} else {
			dir = filepath.Join(homeDir, ".sgex", "staging")
		}
	}
	return &Store{dir: dir}
}

// Dir returns the store's root directory
func (s *Store) Dir() string {
	return s.dir
}

// Load reads the persisted entries for scope. A missing file yields an
// empty ground, not an error.
func (s *Store) Load(scope Scope) (map[string]StagedFile, error) {
	data, err := os.ReadFile(s.scopePath(scope))
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]StagedFile), nil
		}
		return nil, fmt.Errorf("failed to read staging state: %w", err)
	}

	var persisted persistedScope
	if err := json.Unmarshal(data, &persisted); err != nil {
		return nil, fmt.Errorf("failed to parse staging state: %w", err)
	}

	files := make(map[string]StagedFile, len(persisted.Files))
	for _, f := range persisted.Files {
		files[f.Path] = f
	}
	return files, nil
}

// Save writes the entries for scope. The write goes through a temp
// file and rename so a crash never leaves a truncated state file.
func (s *Store) Save(scope Scope, files map[string]StagedFile) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("failed to create staging state directory: %w", err)
	}

	persisted := persistedScope{Scope: scope, Files: make([]StagedFile, 0, len(files))}
	for _, f := range files {
		persisted.Files = append(persisted.Files, f)
	}

	data, err := json.MarshalIndent(persisted, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal staging state: %w", err)
	}

	path := s.scopePath(scope)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write staging state: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("failed to replace staging state: %w", err)
	}

	return nil
}

// Remove deletes the persisted state for scope
func (s *Store) Remove(scope Scope) error {
	err := os.Remove(s.scopePath(scope))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove staging state: %w", err)
	}
	return nil
}

// scopePath derives a deterministic filename from the scope key.
// Branch names may contain slashes, so the key is hashed.
func (s *Store) scopePath(scope Scope) string {
	sum := sha256.Sum256([]byte(scope.String()))
	name := fmt.Sprintf("%s_%s_%s.json", scope.Owner, scope.Repo, hex.EncodeToString(sum[:8]))
	return filepath.Join(s.dir, name)
}
