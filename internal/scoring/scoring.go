// Package scoring implements the client of the scoring service.
// The scoring service publishes the question set and the files attached to each task.
package scoring

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/agents-course/taskfetch/internal/constants"
)

var (
	// ErrRequestFailed is returned when a request fails, either due to a network error or a non-200 status code.
	ErrRequestFailed = errors.New("request failed")
	// ErrInvalidServerURL is returned when the configured server URL is not an absolute http(s) URL.
	ErrInvalidServerURL = errors.New("invalid server URL")
)

// StatusError carries the status code of a response which was not a success.
type StatusError struct {
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status code: %d", e.Code)
}

// StatusCode returns the status code carried by err, if any.
func StatusCode(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// Client talks to the scoring service.
type Client struct {
	baseURL *url.URL
	client  *http.Client
}

type options struct {
	baseServerURL   string
	responseTimeout time.Duration
}

// Options represents an optional function to override Client default values.
type Options func(*options)

// WithBaseServerURL sets the base URL of the scoring service.
func WithBaseServerURL(u string) Options {
	return func(o *options) {
		o.baseServerURL = u
	}
}

// WithResponseTimeout sets the time limit of a whole request, body included. 0 means no limit.
func WithResponseTimeout(d time.Duration) Options {
	return func(o *options) {
		o.responseTimeout = d
	}
}

// New returns a new scoring service client.
func New(args ...Options) (*Client, error) {
	opts := options{
		baseServerURL: constants.DefaultServerURL,
	}
	for _, opt := range args {
		opt(&opts)
	}
	slog.Debug("Creating new scoring client", "url", opts.baseServerURL, "timeout", opts.responseTimeout)

	u, err := url.Parse(opts.baseServerURL)
	if err != nil {
		return nil, errors.Join(ErrInvalidServerURL, fmt.Errorf("failed to parse base server URL %s: %v", opts.baseServerURL, err))
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q is not an absolute http(s) URL", ErrInvalidServerURL, opts.baseServerURL)
	}
	if opts.responseTimeout < 0 {
		return nil, fmt.Errorf("response timeout cannot be negative: %v", opts.responseTimeout)
	}

	return &Client{
		baseURL: u,
		client:  &http.Client{Timeout: opts.responseTimeout},
	}, nil
}

// Questions requests the question set.
// On success, the caller owns the response body.
func (c Client) Questions(ctx context.Context) (*http.Response, error) {
	return c.get(ctx, c.endpoint(constants.QuestionsEndpoint), "application/json")
}

// TaskFile requests the file attached to taskID.
// On success, the caller owns the response body.
func (c Client) TaskFile(ctx context.Context, taskID string) (*http.Response, error) {
	return c.get(ctx, c.endpoint(constants.FilesEndpoint, url.PathEscape(taskID)), "")
}

// endpoint joins already escaped path elements to the base URL.
func (c Client) endpoint(elem ...string) string {
	return c.baseURL.JoinPath(elem...).String()
}

func (c Client) get(ctx context.Context, u, accept string) (*http.Response, error) {
	slog.Debug("Sending request to server", "url", u)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	if accept != "" {
		req.Header.Set("Accept", accept)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.Join(ErrRequestFailed, fmt.Errorf("failed to send HTTP request: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.Join(ErrRequestFailed, &StatusError{Code: resp.StatusCode})
	}

	return resp, nil
}
