package api

// Wire types for the showsaver server JSON contract. Field names follow the
// server's snake_case payloads.

// QueueEntry is one item in the global queue snapshot.
type QueueEntry struct {
	URL        string `json:"url"`
	Status     string `json:"status"`
	Progress   int    `json:"progress,omitempty"`
	Step       int    `json:"step,omitempty"`
	TotalSteps int    `json:"total_steps,omitempty"`
	StepType   string `json:"step_type,omitempty"`
}

// QueueSnapshot is the GET /queue response. The completed bucket is
// server-ordered oldest-first; view building relies on that ordering when it
// reverses the tail.
type QueueSnapshot struct {
	Success     bool         `json:"success"`
	Downloading []QueueEntry `json:"downloading"`
	Queued      []QueueEntry `json:"queued"`
	Completed   []QueueEntry `json:"completed"`
	QueueSize   int          `json:"queue_size,omitempty"`
}

// JobStatus is the server-authoritative projection of a single job.
type JobStatus struct {
	ID         string `json:"id,omitempty"`
	URL        string `json:"url,omitempty"`
	Status     Status `json:"status"`
	Progress   int    `json:"progress,omitempty"`
	Step       int    `json:"step,omitempty"`
	TotalSteps int    `json:"total_steps,omitempty"`
	StepType   string `json:"step_type,omitempty"`
	Filename   string `json:"filename,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JobStatusResponse is the GET /status/{jobId} response.
type JobStatusResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message,omitempty"`
	Status  JobStatus `json:"status"`
}

// SubmitRequest is the POST /submit body.
type SubmitRequest struct {
	Text string `json:"text"`
}

// SubmitResponse is the POST /submit response. JobID and QueuePosition are
// present only on acceptance.
type SubmitResponse struct {
	Success       bool   `json:"success"`
	Message       string `json:"message"`
	JobID         string `json:"job_id,omitempty"`
	URL           string `json:"url,omitempty"`
	QueuePosition int    `json:"queue_position,omitempty"`
	Status        string `json:"status,omitempty"`
}

// ReleaseVideo is a candidate video in the new-releases feed. Title,
// Thumbnail, and Duration may be absent until enrichment.
type ReleaseVideo struct {
	URL       string `json:"url"`
	Title     string `json:"title,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Duration  int    `json:"duration,omitempty"`
	ID        string `json:"id,omitempty"`
}

// ReleaseListResponse is the GET /dropout/new-releases response.
type ReleaseListResponse struct {
	Success bool           `json:"success"`
	Videos  []ReleaseVideo `json:"videos"`
	Cached  bool           `json:"cached,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// EpisodeInfo carries enrichment detail for a single release.
type EpisodeInfo struct {
	Title     string `json:"title,omitempty"`
	Thumbnail string `json:"thumbnail,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// EpisodeInfoResponse is the GET /dropout/info response.
type EpisodeInfoResponse struct {
	Success bool        `json:"success"`
	Info    EpisodeInfo `json:"info"`
}
