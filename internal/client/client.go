package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"showsaver/internal/api"
)

const userAgent = "showsaver-cli/0.1.0"

// ErrNoServer is returned when a client is constructed without a base URL.
var ErrNoServer = errors.New("server base URL is not configured")

// Client talks to the showsaver download server.
type Client struct {
	base *url.URL
	http *http.Client
}

// New builds a client for the given base URL. A path prefix in the base URL
// is kept, so servers mounted behind a reverse proxy work. A zero timeout
// disables the per-request deadline; background pollers pass their own
// contexts instead.
func New(baseURL string, timeout time.Duration) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		return nil, ErrNoServer
	}
	if !strings.Contains(baseURL, "://") {
		baseURL = "http://" + baseURL
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse server URL: %w", err)
	}
	base.Path = strings.TrimRight(base.Path, "/")
	base.RawQuery = ""
	base.Fragment = ""

	return &Client{
		base: base,
		http: &http.Client{Timeout: timeout},
	}, nil
}

// Queue fetches the global queue snapshot.
func (c *Client) Queue(ctx context.Context) (api.QueueSnapshot, error) {
	var snap api.QueueSnapshot
	err := c.get(ctx, nil, &snap, "queue")
	return snap, err
}

// JobStatus fetches the status of a single job. An unknown job comes back
// with Success=false rather than an error.
func (c *Client) JobStatus(ctx context.Context, jobID string) (api.JobStatusResponse, error) {
	var resp api.JobStatusResponse
	err := c.get(ctx, nil, &resp, "status", jobID)
	return resp, err
}

// Submit sends a new download request. Application-level rejections are
// reported through Success=false and Message, not through the error.
func (c *Client) Submit(ctx context.Context, text string) (api.SubmitResponse, error) {
	var resp api.SubmitResponse
	err := c.post(ctx, api.SubmitRequest{Text: text}, &resp, "submit")
	return resp, err
}

// NewReleases fetches the new-releases listing. forceRefresh bypasses the
// server-side cache.
func (c *Client) NewReleases(ctx context.Context, forceRefresh bool) (api.ReleaseListResponse, error) {
	var query url.Values
	if forceRefresh {
		query = url.Values{"refresh": []string{"1"}}
	}
	var resp api.ReleaseListResponse
	err := c.get(ctx, query, &resp, "dropout", "new-releases")
	return resp, err
}

// EpisodeInfo fetches enrichment detail for one release URL.
func (c *Client) EpisodeInfo(ctx context.Context, episodeURL string) (api.EpisodeInfoResponse, error) {
	query := url.Values{"episode": []string{episodeURL}}
	var resp api.EpisodeInfoResponse
	err := c.get(ctx, query, &resp, "dropout", "info")
	return resp, err
}

// endpoint joins path segments onto the base URL. JoinPath escapes each
// segment exactly once, so opaque identifiers with reserved characters reach
// the server intact.
func (c *Client) endpoint(query url.Values, segments ...string) string {
	u := c.base.JoinPath(segments...)
	u.RawQuery = query.Encode()
	return u.String()
}

func (c *Client) get(ctx context.Context, query url.Values, out any, segments ...string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(query, segments...), nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, body, out any, segments ...string) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(nil, segments...), bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

// do executes a request and decodes the JSON body. Responses with error
// status codes still decode when the server sent a JSON body, so
// application-level rejections (success=false with 4xx) reach the caller as
// data rather than as transport errors.
func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if decodeErr := json.Unmarshal(body, out); decodeErr != nil {
		if resp.StatusCode >= 400 {
			return fmt.Errorf("server returned status %d", resp.StatusCode)
		}
		return fmt.Errorf("decode response: %w", decodeErr)
	}
	return nil
}

// IsUnavailable reports whether err looks like the server being unreachable
// rather than a malformed exchange.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Err != nil {
		err = urlErr.Err
	}
	var opErr *net.OpError
	return errors.As(err, &opErr) || errors.Is(err, context.DeadlineExceeded)
}
