package dak

import (
	"context"
	"fmt"

	"github.com/litlfred/sgex/pkg/github"
)

// ContentReader is the slice of the GitHub client detection needs
type ContentReader interface {
	GetFileContent(ctx context.Context, owner, repo, path, ref string) (*github.RepoFile, error)
}

// Detect fetches sushi-config.yaml at ref and reports whether the
// repository is a DAK. A repository without a sushi-config is simply
// not a DAK, not an error; malformed YAML is an error.
func Detect(ctx context.Context, reader ContentReader, owner, repo, ref string) (*SushiConfig, bool, error) {
	file, err := reader.GetFileContent(ctx, owner, repo, SushiConfigPath, ref)
	if err != nil {
		if github.IsNotFoundError(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s from %s/%s: %w", SushiConfigPath, owner, repo, err)
	}

	cfg, err := ParseSushiConfig([]byte(file.Content))
	if err != nil {
		return nil, false, err
	}

	return cfg, cfg.IsDAK(), nil
}
