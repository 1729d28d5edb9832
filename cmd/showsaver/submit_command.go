package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"showsaver/internal/api"
	"showsaver/internal/format"
	"showsaver/internal/history"
	"showsaver/internal/poll"
	"showsaver/internal/render"
	"showsaver/internal/submit"
)

func newSubmitCommand(cmdCtx *commandContext) *cobra.Command {
	var noFollow bool

	cmd := &cobra.Command{
		Use:   "submit <url>",
		Short: "Queue a video download and follow it to completion",
		Args:  cobra.ExactArgs(1),
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

			ctrl := submit.NewController(cli, nil, logger)
			result, err := ctrl.Submit(ctx, args[0])
			if err != nil {
				return err
			}
			if !result.Accepted {
				return errors.New(result.Message)
			}

			out := cmd.OutOrStdout()
			position := "-"
			if result.QueuePosition > 0 {
				position = strconv.Itoa(result.QueuePosition)
			}
			if result.Message != "" {
				fmt.Fprintln(out, result.Message)
			}
			fmt.Fprintf(out, "Job ID: %s\n", result.JobID)
			fmt.Fprintf(out, "Queue position: %s\n", position)

			store := openHistory(cfg.History.Enabled, cfg.History.Path, logger)
			if store != nil {
				defer store.Close()
				if _, err := store.Add(ctx, result.URL, result.JobID); err != nil {
					logger.Warn("record submission", slog.Any("error", err))
				}
			}

			if noFollow || result.JobID == "" {
				return nil
			}
			return followJob(ctx, cmdCtx, cmd, cfg.Polling.JobInterval, cfg.Display.Color, result.JobID, store)
		},
	}

	cmd.Flags().BoolVar(&noFollow, "no-follow", false, "Exit after submission instead of tracking the job")
	return cmd
}

// followJob polls one job until it reaches a terminal status or the user
// interrupts. Failed jobs surface as a command error so the exit code
// reflects the outcome.
func followJob(ctx context.Context, cmdCtx *commandContext, cmd *cobra.Command, intervalSeconds int, colorMode, jobID string, store *history.Store) error {
	cli, err := cmdCtx.apiClient()
	if err != nil {
		return err
	}
	logger := cmdCtx.log()
	out := cmd.OutOrStdout()
	colorize := render.Colorize(colorMode, out)

	view := render.NewView(out, isTerminal(out))
	live := isTerminal(out)

	var mu sync.Mutex
	var final api.JobStatus
	var lastPanel string

	onStatus := func(status api.JobStatus) {
		panel := render.JobPanel(status, colorize)
		mu.Lock()
		final = status
		changed := panel != lastPanel
		lastPanel = panel
		mu.Unlock()

		if live {
			view.SetRegion(render.RegionStats, panel)
		} else if changed {
			fmt.Fprintln(out, panel)
		}
	}

	// The job is queued the moment the server accepts it; show that before
	// the first poll tick lands.
	onStatus(api.JobStatus{ID: jobID, Status: api.StatusQueued})

	poller := poll.NewJobPoller(cli, time.Duration(intervalSeconds)*time.Second, logger, onStatus)
	handle := poller.Start(ctx, jobID)
	<-handle.Done()

	mu.Lock()
	status := final
	mu.Unlock()

	if store != nil {
		recordOutcome(store, jobID, status, logger)
	}

	switch status.Status {
	case api.StatusFailed:
		return fmt.Errorf("download failed: %s", format.Error(status.Error))
	case api.StatusCompleted:
		return nil
	default:
		// Interrupted before a terminal status; the job keeps running
		// server-side.
		return ctx.Err()
	}
}

func recordOutcome(store *history.Store, jobID string, status api.JobStatus, logger *slog.Logger) {
	var outcome history.Outcome
	switch status.Status {
	case api.StatusCompleted:
		outcome = history.OutcomeCompleted
	case api.StatusFailed:
		outcome = history.OutcomeFailed
	default:
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := store.RecordOutcome(ctx, jobID, outcome, status.Filename, status.Error); err != nil {
		logger.Warn("record outcome", slog.Any("error", err))
	}
}

// openHistory opens the submission history store, treating any failure as a
// soft error; tracking history never blocks a download.
func openHistory(enabled bool, path string, logger *slog.Logger) *history.Store {
	if !enabled || path == "" {
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		logger.Warn("open history store", slog.Any("error", err))
		return nil
	}
	return store
}
