package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"showsaver/internal/releases"
	"showsaver/internal/render"
	"showsaver/internal/submit"
)

func newReleasesCommand(cmdCtx *commandContext) *cobra.Command {
	var forceRefresh bool
	var limit int

	cmd := &cobra.Command{
		Use:   "releases",
		Short: "Browse newly released episodes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			cli, err := cmdCtx.apiClient()
			if err != nil {
				return err
			}

			effectiveLimit := cfg.Display.ReleaseLimit
			if limit > 0 {
				effectiveLimit = limit
			}

			feed := releases.NewFeed(cli, effectiveLimit, cmdCtx.log(), nil)
			if err := feed.Refresh(cmd.Context(), forceRefresh); err != nil {
				return err
			}
			feed.Wait()

			fmt.Fprintln(cmd.OutOrStdout(), render.ReleasesTable(feed.Cards()))
			return nil
		},
	}

	cmd.Flags().BoolVar(&forceRefresh, "refresh", false, "Bypass the server-side release cache")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum number of releases to show")

	cmd.AddCommand(newReleasesQueueCommand(cmdCtx))
	return cmd
}

func newReleasesQueueCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "queue <url>",
		Short: "Queue a release for download",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cli, err := cmdCtx.apiClient()
			if err != nil {
				return err
			}

			ctrl := submit.NewController(cli, nil, cmdCtx.log())
			result, err := ctrl.Submit(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !result.Accepted {
				return errors.New(result.Message)
			}

			out := cmd.OutOrStdout()
			if result.Message != "" {
				fmt.Fprintln(out, result.Message)
			}
			position := "-"
			if result.QueuePosition > 0 {
				position = strconv.Itoa(result.QueuePosition)
			}
			fmt.Fprintf(out, "Job ID: %s\n", result.JobID)
			fmt.Fprintf(out, "Queue position: %s\n", position)
			return nil
		},
	}
}
