// Package api is the HTTP client for the movix recommendation backend.
package api

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/movix/movix/internal/movie"
)

// Error classes. Every error returned by Client wraps exactly one of these.
var (
	// ErrTransport means the request never produced an HTTP response.
	ErrTransport = errors.New("api: transport failure")
	// ErrStatus means the backend answered with a non-2xx status.
	ErrStatus = errors.New("api: unexpected status")
	// ErrDecode means the response body was absent or malformed.
	ErrDecode = errors.New("api: malformed response")
)

const (
	historyPath = "/api/history"
	queryPath   = "/api/query"

	// maxBodyBytes caps how much of a response body is read.
	maxBodyBytes = 10 << 20
)

// Client talks to the backend. Safe for concurrent use.
type Client struct {
	baseURL string
	client  *http.Client
	limiter *rate.Limiter
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets a per-request timeout. Zero means none, which leaves the
// transport defaults in charge.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.client.Timeout = d }
}

// WithRateLimit caps outgoing requests per second. Zero or negative means
// unlimited.
func WithRateLimit(perSecond float64) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.client = hc }
}

// NewClient creates a Client for the backend at baseURL, e.g.
// "http://localhost:5001".
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{},
		limiter: rate.NewLimiter(rate.Inf, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// queryRequest is the body of POST /api/query.
type queryRequest struct {
	Query string `json:"query"`
}

// History fetches previously submitted queries. A JSON null body is an empty
// history.
func (c *Client) History(ctx context.Context) ([]string, error) {
	body, err := c.do(ctx, http.MethodGet, historyPath, nil)
	if err != nil {
		return nil, err
	}

	var history []string
	if err := json.Unmarshal(body, &history); err != nil {
		return nil, fmt.Errorf("%w: history: %v", ErrDecode, err)
	}
	return history, nil
}

// Query submits a free-text query and returns the recommendation. The text is
// sent exactly as given.
func (c *Client) Query(ctx context.Context, query string) (movie.Result, error) {
	reqBody, err := json.Marshal(queryRequest{Query: query})
	if err != nil {
		return movie.Result{}, fmt.Errorf("api: failed to marshal query: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, queryPath, reqBody)
	if err != nil {
		return movie.Result{}, err
	}
	if trimmed := bytes.TrimSpace(body); bytes.Equal(trimmed, []byte("null")) {
		return movie.Result{}, fmt.Errorf("%w: query: null body", ErrDecode)
	}

	var res movie.Result
	if err := json.Unmarshal(body, &res); err != nil {
		return movie.Result{}, fmt.Errorf("%w: query: %v", ErrDecode, err)
	}
	return res, nil
}

// do performs one request and returns the body of a 2xx response.
// There is no retry: a failed request is reported to the caller as is.
func (c *Client) do(ctx context.Context, method, path string, reqBody []byte) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter wait failed: %v", ErrTransport, err)
	}

	var rd io.Reader
	if reqBody != nil {
		rd = bytes.NewReader(reqBody)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrTransport, err)
	}
	req.Header.Set("Accept", "application/json")
	if reqBody != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: request cancelled: %w", ErrTransport, ctx.Err())
		}
		return nil, fmt.Errorf("%w: %s %s: %v", ErrTransport, method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response: %v", ErrDecode, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s %s returned %d: %s", ErrStatus, method, path, resp.StatusCode, snippet(body))
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("%w: %s %s: empty body", ErrDecode, method, path)
	}
	return body, nil
}

// snippet shortens a response body for error messages.
func snippet(body []byte) string {
	const max = 200
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}
