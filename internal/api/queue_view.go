package api

// DisplayStatus is the client-assigned grouping tag for queue rendering. It
// is distinct from the server's freeform status string.
type DisplayStatus string

const (
	DisplayDownloading DisplayStatus = "downloading"
	DisplayQueued      DisplayStatus = "queued"
	DisplayCompleted   DisplayStatus = "completed"
)

// QueueViewItem is one row of the unified queue render model.
type QueueViewItem struct {
	QueueEntry
	DisplayStatus DisplayStatus
}

// BuildQueueView flattens a snapshot into render order: downloading items in
// given order, queued items in given order, then the last completedTail
// completed items reversed so the most recent comes first. The result is
// recomputed from scratch on every snapshot; callers must not retain or
// diff previous views.
func BuildQueueView(snap QueueSnapshot, completedTail int) []QueueViewItem {
	if completedTail <= 0 {
		completedTail = 3
	}

	size := len(snap.Downloading) + len(snap.Queued) + min(completedTail, len(snap.Completed))
	items := make([]QueueViewItem, 0, size)

	for _, entry := range snap.Downloading {
		items = append(items, QueueViewItem{QueueEntry: entry, DisplayStatus: DisplayDownloading})
	}
	for _, entry := range snap.Queued {
		items = append(items, QueueViewItem{QueueEntry: entry, DisplayStatus: DisplayQueued})
	}

	completed := snap.Completed
	if len(completed) > completedTail {
		completed = completed[len(completed)-completedTail:]
	}
	for i := len(completed) - 1; i >= 0; i-- {
		items = append(items, QueueViewItem{QueueEntry: completed[i], DisplayStatus: DisplayCompleted})
	}

	return items
}
