package main

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"showsaver/internal/api"
	"showsaver/internal/poll"
	"showsaver/internal/releases"
	"showsaver/internal/render"
)

func newWatchCommand(cmdCtx *commandContext) *cobra.Command {
	var noReleases bool

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard of the download queue and new releases",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			cli, err := cmdCtx.apiClient()
			if err != nil {
				return err
			}
			logger := cmdCtx.log()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			sessionID := uuid.NewString()
			logger.Info("watch session started", slog.String("session_id", sessionID))
			defer logger.Info("watch session ended", slog.String("session_id", sessionID))

			out := cmd.OutOrStdout()
			live := isTerminal(out)
			colorize := render.Colorize(cfg.Display.Color, out)
			view := render.NewView(out, live)

			poller := poll.NewQueuePoller(cli, time.Duration(cfg.Polling.QueueInterval)*time.Second, cfg.Display.CompletedTail, logger, func(items []api.QueueViewItem) {
				view.SetRegion(render.RegionQueue, render.QueueTable(items, colorize))
			})

			var feed *releases.Feed
			if !noReleases {
				feed = releases.NewFeed(cli, cfg.Display.ReleaseLimit, logger, func(cards []releases.Card) {
					view.SetRegion(render.RegionReleases, render.ReleasesTable(cards))
				})
				if err := feed.Refresh(ctx, false); err != nil {
					logger.Warn("release feed unavailable", slog.Any("error", err))
					view.SetRegion(render.RegionReleases, "New releases unavailable.")
				}
			}

			handle := poller.Start(ctx)
			<-ctx.Done()
			handle.Stop()
			if feed != nil {
				feed.Wait()
			}

			if !live {
				fmt.Fprint(out, view.Snapshot())
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&noReleases, "no-releases", false, "Hide the new releases panel")
	return cmd
}
