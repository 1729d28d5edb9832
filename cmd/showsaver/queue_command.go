package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"showsaver/internal/api"
	"showsaver/internal/render"
)

func newQueueCommand(cmdCtx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "queue",
		Short: "Show the server download queue",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			cli, err := cmdCtx.apiClient()
			if err != nil {
				return err
			}

			snap, err := cli.Queue(cmd.Context())
			if err != nil {
				return fmt.Errorf("fetch queue: %w", err)
			}
			if !snap.Success {
				return errors.New("queue endpoint reported failure")
			}

			out := cmd.OutOrStdout()
			colorize := render.Colorize(cfg.Display.Color, out)
			items := api.BuildQueueView(snap, cfg.Display.CompletedTail)
			table := render.QueueTable(items, colorize)
			if table == "" {
				fmt.Fprintln(out, "Queue is empty.")
				return nil
			}
			fmt.Fprintln(out, table)
			if snap.QueueSize > 0 {
				fmt.Fprintf(out, "%d item(s) waiting\n", snap.QueueSize)
			}
			return nil
		},
	}
}
