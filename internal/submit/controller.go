package submit

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"

	"showsaver/internal/api"
	"showsaver/internal/client"
	"showsaver/internal/logging"
	"showsaver/internal/poll"
)

// MessageConnectFailed is shown for any transport-level submission failure.
// The server's own rejection messages pass through untouched.
const MessageConnectFailed = "Failed to connect to the server. Please try again."

var (
	// ErrEmptyInput rejects a blank submission before any network traffic.
	ErrEmptyInput = errors.New("no URL provided")

	// ErrInFlight rejects a submission while a previous one is unresolved.
	ErrInFlight = errors.New("submission already in flight")
)

// Submitter sends one submission request to the server.
type Submitter interface {
	Submit(ctx context.Context, text string) (api.SubmitResponse, error)
}

// FollowStarter launches a status poller for an accepted job and returns its
// handle. Nil disables following.
type FollowStarter func(ctx context.Context, jobID string) *poll.Handle

// Result is the user-facing outcome of one submission attempt.
type Result struct {
	Accepted      bool
	Message       string
	JobID         string
	URL           string
	QueuePosition int
}

// Controller owns the submission lifecycle: it trims and validates input,
// guards against concurrent submissions, re-arms itself when the attempt
// resolves, and on acceptance supersedes any previously followed job with a
// poller for the new one.
type Controller struct {
	submitter Submitter
	follow    FollowStarter
	logger    *slog.Logger

	mu       sync.Mutex
	inFlight bool
	active   *poll.Handle
}

// NewController builds a controller. follow may be nil when accepted jobs
// should not be tracked.
func NewController(submitter Submitter, follow FollowStarter, logger *slog.Logger) *Controller {
	return &Controller{
		submitter: submitter,
		follow:    follow,
		logger:    logging.NewComponentLogger(logger, "submit"),
	}
}

// Submit runs one submission attempt. Whitespace-only input returns
// ErrEmptyInput without touching the network. While an attempt is unresolved
// further calls return ErrInFlight; the controller re-arms on every exit
// path. Transport failures surface as a non-accepted Result carrying the
// generic connectivity message.
func (c *Controller) Submit(ctx context.Context, text string) (Result, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{}, ErrEmptyInput
	}

	c.mu.Lock()
	if c.inFlight {
		c.mu.Unlock()
		return Result{}, ErrInFlight
	}
	c.inFlight = true
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.inFlight = false
		c.mu.Unlock()
	}()

	resp, err := c.submitter.Submit(ctx, text)
	if err != nil {
		if client.IsUnavailable(err) {
			c.logger.Warn("server unreachable", slog.Any("error", err))
		} else {
			c.logger.Warn("submission transport failure", slog.Any("error", err))
		}
		return Result{Message: MessageConnectFailed}, nil
	}
	if !resp.Success {
		return Result{Message: resp.Message}, nil
	}

	result := Result{
		Accepted:      true,
		Message:       resp.Message,
		JobID:         resp.JobID,
		URL:           resp.URL,
		QueuePosition: resp.QueuePosition,
	}

	if c.follow != nil && resp.JobID != "" {
		c.superseded(c.follow(ctx, resp.JobID))
	}
	return result, nil
}

// superseded installs a new active poller, stopping the previous one first so
// at most one followed job exists at a time.
func (c *Controller) superseded(next *poll.Handle) {
	c.mu.Lock()
	prev := c.active
	c.active = next
	c.mu.Unlock()

	if prev != nil {
		prev.Stop()
	}
}

// Active returns the handle of the currently followed job, or nil.
func (c *Controller) Active() *poll.Handle {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Clear stops following the current job, if any. The job itself keeps
// running server-side.
func (c *Controller) Clear() {
	c.superseded(nil)
}
