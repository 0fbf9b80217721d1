package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/litlfred/sgex/pkg/dak"
	"github.com/litlfred/sgex/pkg/status"
)

var (
	flagStatusWatch    bool
	flagStatusInterval time.Duration
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show workflows, runs and releases for the repository",
	RunE: func(cmd *cobra.Command, args []string) error {
		wb, err := newWorkbench(true)
		if err != nil {
			return err
		}

		cfg, isDAK, err := dak.Detect(cmd.Context(), wb.client, wb.scope.Owner, wb.scope.Repo, wb.scope.Branch)
		if err != nil {
			return err
		}
		if isDAK {
			fmt.Printf("%s (%s) - SMART Guidelines DAK\n", cfg.Title, cfg.ID)
		} else {
			fmt.Printf("%s/%s is not a SMART Guidelines DAK repository\n", wb.scope.Owner, wb.scope.Repo)
		}

		if info, err := wb.client.GetBranch(cmd.Context(), wb.scope.Owner, wb.scope.Repo, wb.scope.Branch); err == nil {
			fmt.Printf("Branch %s at %s\n", info.Name, info.SHA[:min(8, len(info.SHA))])
		}

		fetcher := status.NewFetcher(wb.client, wb.scope.Owner, wb.scope.Repo, wb.scope.Branch)

		if !flagStatusWatch {
			snapshot, err := fetcher.Fetch(cmd.Context())
			if err != nil {
				return err
			}
			printSnapshot(snapshot)

			if rl, err := wb.client.GetRateLimitStatus(); err == nil && rl.Limit > 0 {
				fmt.Printf("API quota: %d/%d remaining (resets %s)\n", rl.Remaining, rl.Limit, rl.Reset.Format(time.TimeOnly))
			}
			return nil
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		poller := status.NewPoller(flagStatusInterval, func(ctx context.Context) {
			snapshot, err := fetcher.Fetch(ctx)
			if err != nil {
				return
			}
			printSnapshot(snapshot)
		})

		poller.Start(ctx)
		<-ctx.Done()
		poller.Stop()
		return nil
	},
}

func printSnapshot(s *status.Snapshot) {
	fmt.Printf("--- %s ---\n", s.FetchedAt.Format(time.TimeOnly))

	if len(s.Workflows) > 0 {
		fmt.Printf("Workflows:\n")
		for _, wf := range s.Workflows {
			fmt.Printf("  %-30s %s\n", wf.Name, wf.State)
		}
	}
	if len(s.Runs) > 0 {
		fmt.Printf("Recent runs:\n")
		for _, run := range s.Runs {
			conclusion := run.Conclusion
			if conclusion == "" {
				conclusion = run.Status
			}
			fmt.Printf("  %-30s %-12s %s\n", run.Name, conclusion, run.HeadSHA[:min(8, len(run.HeadSHA))])
		}
	}
	if len(s.Releases) > 0 {
		fmt.Printf("Releases:\n")
		for _, r := range s.Releases {
			fmt.Printf("  %-16s %s\n", r.TagName, r.Name)
		}
	}
	for _, e := range s.Errors {
		fmt.Printf("warning: %s\n", e)
	}
}

func init() {
	statusCmd.Flags().BoolVarP(&flagStatusWatch, "watch", "w", false, "Keep refreshing until interrupted")
	statusCmd.Flags().DurationVar(&flagStatusInterval, "interval", status.DefaultPollInterval, "Refresh interval in watch mode")
	rootCmd.AddCommand(statusCmd)
}
