package render

import (
	"fmt"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"showsaver/internal/api"
	"showsaver/internal/format"
	"showsaver/internal/releases"
)

// Alignment selects the column alignment for Table.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Table renders a rounded-border table. Short rows are padded with empty
// cells; aligns applies per column and defaults to left.
func Table(headers []string, rows [][]string, aligns []Alignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

// QueueTable renders the unified queue view: active downloads first, then
// waiting items, then the recently completed tail. An empty view renders as
// an empty string so a live region disappears entirely when the queue
// drains; one-shot callers print their own empty message.
func QueueTable(items []api.QueueViewItem, colorize bool) string {
	if len(items) == 0 {
		return ""
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		status := format.StatusLabel(item.Status)
		if colorize {
			status = paintStatus(status, item.Status)
		}
		rows = append(rows, []string{
			format.TitleFromURL(item.URL),
			status,
			queueStepCell(item),
			queueProgressCell(item),
		})
	}
	return Table(
		[]string{"TITLE", "STATUS", "STEP", "PROGRESS"},
		rows,
		[]Alignment{AlignLeft, AlignLeft, AlignLeft, AlignRight},
	)
}

func queueStepCell(item api.QueueViewItem) string {
	if item.DisplayStatus != api.DisplayDownloading {
		return ""
	}
	label := format.StepType(item.StepType)
	if item.TotalSteps > 1 {
		label = fmt.Sprintf("%s (%s)", label, format.StepProgress(item.Step, item.TotalSteps))
	}
	return label
}

func queueProgressCell(item api.QueueViewItem) string {
	if item.DisplayStatus != api.DisplayDownloading {
		return ""
	}
	return strconv.Itoa(item.Progress) + "%"
}

// ReleasesTable renders the new-releases feed. Cards still awaiting detail
// responses show their URL-derived title and no duration badge.
func ReleasesTable(cards []releases.Card) string {
	if len(cards) == 0 {
		return "No new releases found."
	}

	rows := make([][]string, 0, len(cards))
	for i, card := range cards {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			format.DisplayTitle(card.Title, card.URL),
			format.Duration(card.Duration),
			card.URL,
		})
	}
	return Table(
		[]string{"#", "TITLE", "DURATION", "URL"},
		rows,
		[]Alignment{AlignRight, AlignLeft, AlignRight, AlignLeft},
	)
}

// JobPanel renders the followed-job status block: badge line, then the
// progress or outcome detail for the current state.
func JobPanel(status api.JobStatus, colorize bool) string {
	badge := format.StatusBadge(string(status.Status))
	if colorize {
		badge = paintStatus(badge, string(status.Status))
	}
	lines := []string{fmt.Sprintf("Status: %s", badge)}

	switch status.Status {
	case api.StatusDownloading:
		label := format.StepType(status.StepType)
		if status.TotalSteps > 1 {
			label = fmt.Sprintf("%s (%s)", label, format.StepProgress(status.Step, status.TotalSteps))
		}
		lines = append(lines, fmt.Sprintf("%s: %d%%", label, status.Progress))
	case api.StatusCompleted:
		lines = append(lines, format.Filename(status.Filename))
	case api.StatusFailed:
		lines = append(lines, format.Error(status.Error))
	case api.StatusQueued:
		lines = append(lines, "Waiting in queue...")
	}

	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}
