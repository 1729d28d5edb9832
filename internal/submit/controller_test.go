package submit_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net"
	"strings"
	"sync"
	"testing"
	"time"

	"showsaver/internal/api"
	"showsaver/internal/logging"
	"showsaver/internal/poll"
	"showsaver/internal/submit"
)

type fakeSubmitter struct {
	mu    sync.Mutex
	calls int
	resp  api.SubmitResponse
	err   error
	gate  chan struct{}
}

func (f *fakeSubmitter) Submit(ctx context.Context, text string) (api.SubmitResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.gate != nil {
		<-f.gate
	}
	return f.resp, f.err
}

func (f *fakeSubmitter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// followRecorder hands out live poll handles backed by an idle goroutine so
// supersede semantics can be observed.
type followRecorder struct {
	mu     sync.Mutex
	jobIDs []string
}

func (f *followRecorder) start(ctx context.Context, jobID string) *poll.Handle {
	f.mu.Lock()
	f.jobIDs = append(f.jobIDs, jobID)
	f.mu.Unlock()

	source := jobSourceFunc(func(ctx context.Context, id string) (api.JobStatusResponse, error) {
		return api.JobStatusResponse{Success: true, Status: api.JobStatus{Status: api.StatusDownloading}}, nil
	})
	poller := poll.NewJobPoller(source, time.Hour, logging.NewNop(), func(api.JobStatus) {})
	return poller.Start(ctx, jobID)
}

func (f *followRecorder) followed() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.jobIDs...)
}

type jobSourceFunc func(ctx context.Context, jobID string) (api.JobStatusResponse, error)

func (fn jobSourceFunc) JobStatus(ctx context.Context, jobID string) (api.JobStatusResponse, error) {
	return fn(ctx, jobID)
}

func TestSubmitRejectsEmptyInputWithoutNetwork(t *testing.T) {
	submitter := &fakeSubmitter{}
	ctrl := submit.NewController(submitter, nil, logging.NewNop())

	for _, input := range []string{"", "   ", "\t\n"} {
		_, err := ctrl.Submit(context.Background(), input)
		if !errors.Is(err, submit.ErrEmptyInput) {
			t.Fatalf("input %q: err = %v, want ErrEmptyInput", input, err)
		}
	}
	if submitter.callCount() != 0 {
		t.Fatalf("empty input reached the network: %d calls", submitter.callCount())
	}
}

func TestSubmitTrimsInput(t *testing.T) {
	var got string
	submitter := &fakeSubmitter{resp: api.SubmitResponse{Success: true, JobID: "1"}}
	ctrl := submit.NewController(recordingSubmitter{submitter, &got}, nil, logging.NewNop())

	if _, err := ctrl.Submit(context.Background(), "  https://example.com/v  \n"); err != nil {
		t.Fatal(err)
	}
	if got != "https://example.com/v" {
		t.Fatalf("submitted text = %q", got)
	}
}

type recordingSubmitter struct {
	inner *fakeSubmitter
	dst   *string
}

func (r recordingSubmitter) Submit(ctx context.Context, text string) (api.SubmitResponse, error) {
	*r.dst = text
	return r.inner.Submit(ctx, text)
}

func TestSubmitTransportFailureYieldsGenericMessage(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("dial tcp: connection refused")}
	ctrl := submit.NewController(submitter, nil, logging.NewNop())

	result, err := ctrl.Submit(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatal(err)
	}
	if result.Accepted {
		t.Fatal("transport failure reported as accepted")
	}
	if result.Message != submit.MessageConnectFailed {
		t.Fatalf("message = %q", result.Message)
	}
}

func TestSubmitDistinguishesUnreachableServerInLogs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	submitter := &fakeSubmitter{err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}}
	ctrl := submit.NewController(submitter, nil, logger)

	result, err := ctrl.Submit(context.Background(), "https://example.com/v")
	if err != nil {
		t.Fatal(err)
	}
	if result.Message != submit.MessageConnectFailed {
		t.Fatalf("message = %q", result.Message)
	}
	if !strings.Contains(buf.String(), "server unreachable") {
		t.Fatalf("unreachable server not distinguished in logs: %q", buf.String())
	}

	buf.Reset()
	submitter.err = errors.New("unexpected end of JSON input")
	if _, err := ctrl.Submit(context.Background(), "https://example.com/v"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "submission transport failure") {
		t.Fatalf("non-connectivity failure mislabeled: %q", buf.String())
	}
}

func TestSubmitServerRejectionPassesMessageThrough(t *testing.T) {
	submitter := &fakeSubmitter{resp: api.SubmitResponse{Success: false, Message: "Invalid URL"}}
	ctrl := submit.NewController(submitter, nil, logging.NewNop())

	result, err := ctrl.Submit(context.Background(), "not a url")
	if err != nil {
		t.Fatal(err)
	}
	if result.Accepted || result.Message != "Invalid URL" {
		t.Fatalf("result = %+v", result)
	}
}

func TestSubmitGuardsConcurrentAttempts(t *testing.T) {
	submitter := &fakeSubmitter{
		resp: api.SubmitResponse{Success: true, JobID: "1"},
		gate: make(chan struct{}),
	}
	ctrl := submit.NewController(submitter, nil, logging.NewNop())

	done := make(chan struct{})
	go func() {
		defer close(done)
		ctrl.Submit(context.Background(), "https://example.com/a")
	}()

	for submitter.callCount() == 0 {
		time.Sleep(time.Millisecond)
	}
	if _, err := ctrl.Submit(context.Background(), "https://example.com/b"); !errors.Is(err, submit.ErrInFlight) {
		t.Fatalf("err = %v, want ErrInFlight", err)
	}

	close(submitter.gate)
	<-done

	// Resolved attempt re-arms the controller.
	if _, err := ctrl.Submit(context.Background(), "https://example.com/c"); err != nil {
		t.Fatalf("controller did not re-arm: %v", err)
	}
}

func TestSubmitRearmsAfterFailure(t *testing.T) {
	submitter := &fakeSubmitter{err: errors.New("boom")}
	ctrl := submit.NewController(submitter, nil, logging.NewNop())

	if _, err := ctrl.Submit(context.Background(), "https://example.com/v"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctrl.Submit(context.Background(), "https://example.com/v"); err != nil {
		t.Fatalf("controller stayed disarmed after failure: %v", err)
	}
}

func TestAcceptedSubmissionSupersedesPreviousJob(t *testing.T) {
	submitter := &fakeSubmitter{resp: api.SubmitResponse{Success: true, JobID: "first"}}
	follower := &followRecorder{}
	ctrl := submit.NewController(submitter, follower.start, logging.NewNop())

	if _, err := ctrl.Submit(context.Background(), "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	first := ctrl.Active()
	if first == nil {
		t.Fatal("no active handle after accepted submission")
	}

	submitter.resp = api.SubmitResponse{Success: true, JobID: "second"}
	if _, err := ctrl.Submit(context.Background(), "https://example.com/b"); err != nil {
		t.Fatal(err)
	}

	select {
	case <-first.Done():
	case <-time.After(time.Second):
		t.Fatal("first job poller not stopped by second submission")
	}
	if ctrl.Active() == first {
		t.Fatal("active handle not replaced")
	}

	followed := follower.followed()
	if len(followed) != 2 || followed[0] != "first" || followed[1] != "second" {
		t.Fatalf("followed jobs = %v", followed)
	}

	ctrl.Clear()
}

func TestClearStopsActiveJob(t *testing.T) {
	submitter := &fakeSubmitter{resp: api.SubmitResponse{Success: true, JobID: "1"}}
	follower := &followRecorder{}
	ctrl := submit.NewController(submitter, follower.start, logging.NewNop())

	if _, err := ctrl.Submit(context.Background(), "https://example.com/a"); err != nil {
		t.Fatal(err)
	}
	handle := ctrl.Active()

	ctrl.Clear()
	select {
	case <-handle.Done():
	case <-time.After(time.Second):
		t.Fatal("clear did not stop the followed job")
	}
	if ctrl.Active() != nil {
		t.Fatal("active handle survived clear")
	}
}
