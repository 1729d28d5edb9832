package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"showsaver/internal/format"
	"showsaver/internal/history"
	"showsaver/internal/render"
)

func newHistoryCommand(cmdCtx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent submissions recorded by this client",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := cmdCtx.ensureConfig()
			if err != nil {
				return err
			}
			if !cfg.History.Enabled || cfg.History.Path == "" {
				return errors.New("submission history is disabled in configuration")
			}

			store, err := history.Open(cfg.History.Path)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			entries, err := store.List(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No submissions recorded yet.")
				return nil
			}

			rows := make([][]string, 0, len(entries))
			for _, entry := range entries {
				rows = append(rows, []string{
					entry.SubmittedAt.Local().Format("2006-01-02 15:04"),
					format.TitleFromURL(entry.URL),
					string(entry.Outcome),
					historyDetail(entry),
				})
			}
			fmt.Fprintln(out, render.Table(
				[]string{"SUBMITTED", "TITLE", "OUTCOME", "DETAIL"},
				rows,
				[]render.Alignment{render.AlignLeft, render.AlignLeft, render.AlignLeft, render.AlignLeft},
			))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of entries to show")
	return cmd
}

func historyDetail(entry history.Entry) string {
	switch entry.Outcome {
	case history.OutcomeCompleted:
		return entry.Filename
	case history.OutcomeFailed:
		return format.Error(entry.ErrorMessage)
	default:
		return ""
	}
}
