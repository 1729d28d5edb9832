package render

import (
	"bytes"
	"strings"
	"testing"

	"showsaver/internal/api"
	"showsaver/internal/releases"
)

func TestViewSetRegionIsIdempotent(t *testing.T) {
	var buf bytes.Buffer
	view := NewView(&buf, true)

	view.SetRegion(RegionQueue, "queue body")
	first := buf.String()
	view.SetRegion(RegionQueue, "queue body")
	if buf.String() != first {
		t.Fatal("repeated identical update repainted the surface")
	}
}

func TestViewRegionsRenderInFixedOrder(t *testing.T) {
	view := NewView(&bytes.Buffer{}, false)
	view.SetRegion(RegionReleases, "releases")
	view.SetRegion(RegionResponse, "response")
	view.SetRegion(RegionQueue, "queue")

	snapshot := view.Snapshot()
	respIdx := strings.Index(snapshot, "response")
	queueIdx := strings.Index(snapshot, "queue")
	relIdx := strings.Index(snapshot, "releases")
	if respIdx < 0 || queueIdx < 0 || relIdx < 0 {
		t.Fatalf("missing region in snapshot: %q", snapshot)
	}
	if !(respIdx < queueIdx && queueIdx < relIdx) {
		t.Fatalf("regions out of order: %q", snapshot)
	}
}

func TestViewClearRegionHidesContent(t *testing.T) {
	view := NewView(&bytes.Buffer{}, false)
	view.SetRegion(RegionStats, "stats line")
	view.ClearRegion(RegionStats)
	if strings.Contains(view.Snapshot(), "stats line") {
		t.Fatal("cleared region still rendered")
	}
}

func TestViewLiveRepaintRewindsPreviousPaint(t *testing.T) {
	var buf bytes.Buffer
	view := NewView(&buf, true)

	view.SetRegion(RegionQueue, "one line")
	view.SetRegion(RegionQueue, "another line")

	out := buf.String()
	if !strings.Contains(out, "\x1b[1A\x1b[J") {
		t.Fatalf("expected one-line rewind sequence in %q", out)
	}
	if !strings.HasSuffix(out, "another line\n") {
		t.Fatalf("surface does not end with latest content: %q", out)
	}
}

func TestQueueTableRowsAndCells(t *testing.T) {
	items := []api.QueueViewItem{
		{
			QueueEntry: api.QueueEntry{
				URL: "https://www.dropout.tv/videos/ep-1", Status: "downloading",
				Progress: 42, Step: 2, TotalSteps: 3, StepType: "audio",
			},
			DisplayStatus: api.DisplayDownloading,
		},
		{
			QueueEntry:    api.QueueEntry{URL: "https://www.dropout.tv/videos/ep-2", Status: "queued"},
			DisplayStatus: api.DisplayQueued,
		},
	}

	out := QueueTable(items, false)
	for _, want := range []string{"ep-1", "ep-2", "Downloading audio", "Step 2/3", "42%", "Queued"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "\x1b[") {
		t.Fatalf("uncolored table contains ANSI escapes:\n%s", out)
	}
}

func TestQueueTableEmptyHidesLiveRegion(t *testing.T) {
	if got := QueueTable(nil, false); got != "" {
		t.Fatalf("empty queue = %q, want empty string", got)
	}

	// A drained queue clears its region rather than painting a placeholder.
	view := NewView(&bytes.Buffer{}, false)
	view.SetRegion(RegionQueue, QueueTable([]api.QueueViewItem{
		{QueueEntry: api.QueueEntry{URL: "u", Status: "queued"}, DisplayStatus: api.DisplayQueued},
	}, false))
	view.SetRegion(RegionQueue, QueueTable(nil, false))
	if view.Snapshot() != "" {
		t.Fatalf("drained queue still rendered: %q", view.Snapshot())
	}
}

func TestQueueTableColorsStatus(t *testing.T) {
	items := []api.QueueViewItem{
		{
			QueueEntry:    api.QueueEntry{URL: "u", Status: "failed"},
			DisplayStatus: api.DisplayCompleted,
		},
	}
	out := QueueTable(items, true)
	if !strings.Contains(out, ansiRed+"Failed"+ansiReset) {
		t.Fatalf("failed status not painted red:\n%s", out)
	}
}

func TestReleasesTableFallbackTitleAndDuration(t *testing.T) {
	cards := []releases.Card{
		{URL: "https://www.dropout.tv/videos/mystery-ep"},
		{URL: "u2", Title: "Known Episode", Duration: 3725},
	}

	out := ReleasesTable(cards)
	for _, want := range []string{"mystery-ep", "Known Episode", "1:02:05"} {
		if !strings.Contains(out, want) {
			t.Fatalf("table missing %q:\n%s", want, out)
		}
	}
}

func TestReleasesTableEmpty(t *testing.T) {
	if got := ReleasesTable(nil); got != "No new releases found." {
		t.Fatalf("empty releases = %q", got)
	}
}

func TestJobPanelStates(t *testing.T) {
	tests := []struct {
		name   string
		status api.JobStatus
		want   []string
	}{
		{
			name: "downloading multi step",
			status: api.JobStatus{
				Status: api.StatusDownloading, Progress: 60,
				Step: 1, TotalSteps: 2, StepType: "video",
			},
			want: []string{"Status: DOWNLOADING", "Downloading video (Step 1/2): 60%"},
		},
		{
			name:   "completed without filename",
			status: api.JobStatus{Status: api.StatusCompleted},
			want:   []string{"Status: COMPLETED", "File saved: download"},
		},
		{
			name:   "failed without message",
			status: api.JobStatus{Status: api.StatusFailed},
			want:   []string{"Status: FAILED", "Unknown error occurred"},
		},
		{
			name:   "queued",
			status: api.JobStatus{Status: api.StatusQueued},
			want:   []string{"Status: QUEUED", "Waiting in queue..."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := JobPanel(tt.status, false)
			for _, want := range tt.want {
				if !strings.Contains(out, want) {
					t.Fatalf("panel missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestColorizeModes(t *testing.T) {
	var buf bytes.Buffer
	if Colorize("always", &buf) != true {
		t.Fatal("always mode should colorize any writer")
	}
	if Colorize("never", &buf) != false {
		t.Fatal("never mode should not colorize")
	}
	if Colorize("auto", &buf) != false {
		t.Fatal("auto mode should not colorize a plain buffer")
	}
}
