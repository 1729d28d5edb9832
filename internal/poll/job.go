package poll

import (
	"context"
	"log/slog"
	"time"

	"showsaver/internal/api"
	"showsaver/internal/logging"
)

// JobSource fetches the status of a single job.
type JobSource interface {
	JobStatus(ctx context.Context, jobID string) (api.JobStatusResponse, error)
}

// JobPoller follows one job until the server reports a terminal status, then
// stops itself. Status values are passed through as reported; the poller
// never validates transition order.
type JobPoller struct {
	source   JobSource
	interval time.Duration
	logger   *slog.Logger
	onStatus func(api.JobStatus)
}

// NewJobPoller builds a job poller. onStatus runs on every successful tick,
// including the terminal one.
func NewJobPoller(source JobSource, interval time.Duration, logger *slog.Logger, onStatus func(api.JobStatus)) *JobPoller {
	if interval <= 0 {
		interval = time.Second
	}
	return &JobPoller{
		source:   source,
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "job-poller"),
		onStatus: onStatus,
	}
}

// Start begins polling jobID every interval. The loop exits on its own once
// a terminal status is observed; the handle's Done channel closes either
// way, so callers can wait on it to follow a job to completion.
func (p *JobPoller) Start(ctx context.Context, jobID string) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	handle := newHandle(cancel)

	go func() {
		defer handle.finish()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if terminal := p.tick(ctx, jobID); terminal {
					return
				}
			}
		}
	}()

	return handle
}

// tick fetches one status. Errors and unsuccessful responses skip the tick;
// the job may simply not be registered yet right after submission.
func (p *JobPoller) tick(ctx context.Context, jobID string) bool {
	resp, err := p.source.JobStatus(ctx, jobID)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Debug("job status fetch failed", slog.String("job_id", jobID), slog.Any("error", err))
		}
		return false
	}
	if !resp.Success {
		p.logger.Debug("job status reported failure", slog.String("job_id", jobID), slog.String("message", resp.Message))
		return false
	}

	p.onStatus(resp.Status)
	return resp.Status.Status.Terminal()
}
