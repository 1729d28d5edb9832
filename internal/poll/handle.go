package poll

import (
	"context"
	"sync"
)

// Handle owns a running poll loop. The party that starts a poller is solely
// responsible for stopping it; starting a replacement never implicitly stops
// a predecessor.
type Handle struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

func newHandle(cancel context.CancelFunc) *Handle {
	return &Handle{cancel: cancel, done: make(chan struct{})}
}

// Stop cancels the loop and waits for it to exit. Safe to call more than
// once and on a handle whose loop already finished on its own.
func (h *Handle) Stop() {
	if h == nil {
		return
	}
	h.once.Do(h.cancel)
	<-h.done
}

// Done is closed when the loop has exited, whether stopped or self-finished.
func (h *Handle) Done() <-chan struct{} {
	return h.done
}

func (h *Handle) finish() {
	close(h.done)
}
