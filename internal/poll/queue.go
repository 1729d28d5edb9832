package poll

import (
	"context"
	"log/slog"
	"time"

	"showsaver/internal/api"
	"showsaver/internal/logging"
)

// QueueSource fetches the global queue snapshot.
type QueueSource interface {
	Queue(ctx context.Context) (api.QueueSnapshot, error)
}

// QueuePoller periodically fetches the queue snapshot and hands the caller a
// freshly built render model. Failed ticks keep the previous view: the
// callback simply is not invoked, and the next tick retries at the same
// cadence with no backoff.
type QueuePoller struct {
	source   QueueSource
	interval time.Duration
	tail     int
	logger   *slog.Logger
	onView   func([]api.QueueViewItem)
}

// NewQueuePoller builds a queue poller. onView receives the unified render
// model on every successful tick, including an empty slice when the queue
// has drained.
func NewQueuePoller(source QueueSource, interval time.Duration, completedTail int, logger *slog.Logger, onView func([]api.QueueViewItem)) *QueuePoller {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &QueuePoller{
		source:   source,
		interval: interval,
		tail:     completedTail,
		logger:   logging.NewComponentLogger(logger, "queue-poller"),
		onView:   onView,
	}
}

// Start begins polling: one immediate fetch, then one per interval until the
// returned handle is stopped or ctx is cancelled.
func (p *QueuePoller) Start(ctx context.Context) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	handle := newHandle(cancel)

	go func() {
		defer handle.finish()

		p.tick(ctx)

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				p.tick(ctx)
			}
		}
	}()

	return handle
}

func (p *QueuePoller) tick(ctx context.Context) {
	snap, err := p.source.Queue(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Warn("queue snapshot fetch failed", slog.Any("error", err))
		}
		return
	}
	if !snap.Success {
		p.logger.Warn("queue snapshot reported failure")
		return
	}
	p.onView(api.BuildQueueView(snap, p.tail))
}
