package api

// Status represents the lifecycle of a download job as reported by the
// server. The client never derives transitions locally; it renders whatever
// the server reports and only uses Terminal to stop polling.
type Status string

const (
	StatusQueued      Status = "queued"
	StatusDownloading Status = "downloading"
	StatusCompleted   Status = "completed"
	StatusFailed      Status = "failed"
)

// String returns the raw server status value.
func (s Status) String() string {
	return string(s)
}

// Terminal reports whether polling should stop for a job in this state.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}
