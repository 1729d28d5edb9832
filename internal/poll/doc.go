// Package poll contains the two background polling loops that keep the
// client's view of server state fresh: a queue snapshot poller and a
// per-job status poller.
//
// Both return an explicit Handle from Start. Ownership of that handle is the
// cancellation model: whoever starts a loop stops it, and a new loop is only
// started after the old handle's Stop has returned. Failed ticks are logged
// and skipped; polling continues at the same fixed cadence with no backoff,
// trading efficiency for a client that recovers the moment the server does.
package poll
