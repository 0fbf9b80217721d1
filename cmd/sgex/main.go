package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/config"
	"github.com/litlfred/sgex/pkg/github"
	"github.com/litlfred/sgex/pkg/log"
	"github.com/litlfred/sgex/pkg/staging"
	"github.com/litlfred/sgex/pkg/validation"
)

var (
	flagRepo     string
	flagBranch   string
	flagStateDir string
	flagLogLevel string
)

var rootCmd = &cobra.Command{
	Use:   "sgex",
	Short: "sgex is a workbench for editing WHO SMART Guidelines DAK content on GitHub.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadFromCurrentDir()
		if err != nil {
			return err
		}
		level, _ := cfg.ResolveString(flagLogLevel, cfg.LogLevel, "info")
		return log.Configure(level)
	},
}

// workbench bundles the resolved environment a command runs against
type workbench struct {
	cfg      *config.ProjectConfig
	scope    staging.Scope
	ground   *staging.Ground
	client   *github.Client
	stateDir string
}

// newWorkbench resolves flags and config into a bound staging ground.
// Commands that need GitHub also get an authenticated client.
func newWorkbench(needClient bool) (*workbench, error) {
	cfg, err := config.LoadFromCurrentDir()
	if err != nil {
		return nil, err
	}

	repoSpec, _ := cfg.ResolveString(flagRepo, cfg.Repository, "")
	if repoSpec == "" {
		return nil, fmt.Errorf("no repository given: use --repo owner/name or set repository in %s", config.ConfigPath)
	}
	owner, repo, err := splitRepo(repoSpec)
	if err != nil {
		return nil, err
	}
	branch, _ := cfg.ResolveString(flagBranch, cfg.Branch, "main")

	stateDir, _ := cfg.ResolveString(flagStateDir, cfg.StateDir, cfg.EffectiveStateDir())

	scope := staging.Scope{Owner: owner, Repo: repo, Branch: branch}
	ground := staging.New(staging.NewStore(filepath.Join(stateDir, "staging")))
	if err := ground.Initialize(scope); err != nil {
		return nil, err
	}

	wb := &workbench{cfg: cfg, scope: scope, ground: ground, stateDir: stateDir}

	if needClient {
		client, err := github.NewClientFromEnv(
			github.WithRateLimitTracking(true),
			github.WithRetryConfig(github.DefaultRetryConfig()),
		)
		if err != nil {
			return nil, err
		}
		wb.client = client
	}

	return wb, nil
}

func (wb *workbench) validator() *validation.Validator {
	return validation.New()
}

// splitRepo parses "owner/name"
func splitRepo(spec string) (string, string, error) {
	parts := strings.SplitN(spec, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("repository must be owner/name, got %q", spec)
	}
	return parts[0], parts[1], nil
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagRepo, "repo", "r", "", "DAK repository (owner/name)")
	rootCmd.PersistentFlags().StringVarP(&flagBranch, "branch", "b", "", "Working branch (default main)")
	rootCmd.PersistentFlags().StringVar(&flagStateDir, "state-dir", "", "Directory for staging state and caches (default ~/.sgex)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
}

func main() {
	defer log.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
