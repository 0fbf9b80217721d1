package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/config"
	"github.com/litlfred/sgex/pkg/github"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the sgex version and check for updates",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("sgex %s\n", version)

		token := os.Getenv(github.TokenEnv)
		if token == "" {
			token = os.Getenv(github.WorkbenchTokenEnv)
		}
		// The release check is anonymous-friendly; an empty token still works
		client := github.NewClient(token)

		cfg, err := config.LoadFromCurrentDir()
		if err != nil {
			return nil
		}
		cacheDir := filepath.Join(cfg.EffectiveStateDir(), "cache")

		latest, err := client.CheckLatestWorkbenchRelease(cmd.Context(), cacheDir)
		if err != nil || latest == nil {
			// Version check is best-effort; stay quiet on failure
			return nil
		}
		if latest.TagName != "" && latest.TagName != "v"+version && latest.TagName != version {
			fmt.Printf("Latest release: %s (%s)\n", latest.TagName, latest.HTMLURL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
