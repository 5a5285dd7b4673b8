// internal/httpclient/client.go

// Package httpclient wraps all outbound calls to the HaliCare backend,
// attaching the bearer credential automatically. It offers the two request
// construction paths callers use: the declarative JSON helpers and the
// classic *http.Request path via Do. It adds no retry, queueing, or caching.
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ErrUnauthorized marks responses the server rejected for a missing or
// invalid credential.
var ErrUnauthorized = errors.New("unauthorized")

// ErrNotFound marks responses for resources the server does not know.
var ErrNotFound = errors.New("not found")

// Credentials is the read side of the credential store. Absent credentials
// do not block a request; the server is the authority on rejecting it.
type Credentials interface {
	Get() (string, bool)
}

// StatusError is a non-2xx response, carrying the server's error message
// when the body held one.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error {
	switch e.StatusCode {
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusNotFound:
		return ErrNotFound
	}
	return nil
}

// RequestOptions adjusts a single declarative request. Headers accepts the
// shapes callers actually pass around: map[string]string, http.Header, or
// nil. Anything else is normalized to an empty mapping rather than rejected.
type RequestOptions struct {
	Query   url.Values
	Headers any
	Body    any
}

type Option func(*Client)

// WithHTTPClient replaces the underlying transport client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithRateLimit caps outbound requests per second. Zero disables the cap.
func WithRateLimit(rps float64) Option {
	return func(c *Client) {
		if rps > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithTimeout sets the per-request timeout on the underlying client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// Client issues authenticated requests against one backend base URL.
type Client struct {
	base    *url.URL
	http    *http.Client
	creds   Credentials
	limiter *rate.Limiter
}

// New creates a client for baseURL, reading the bearer credential from
// creds on every request.
func New(baseURL string, creds Credentials, opts ...Option) (*Client, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", baseURL)
	}

	c := &Client{
		base:  base,
		http:  &http.Client{Timeout: 15 * time.Second},
		creds: creds,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Do sends a caller-built request. The bearer credential is attached unless
// the caller already set an Authorization header; that explicit value is
// never overwritten.
func (c *Client) Do(req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	c.authorize(req)

	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)

	start := time.Now()
	resp, err := c.http.Do(req)
	logEvent := log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Str("request_id", requestID).
		Dur("duration", time.Since(start))
	if err != nil {
		logEvent.Err(err).Msg("Request failed")
		return nil, err
	}
	logEvent.Int("status", resp.StatusCode).Msg("Request completed")
	return resp, nil
}

// DoJSON builds and sends a request declaratively, decoding a 2xx response
// body into out when out is non-nil. Non-2xx responses become a StatusError.
func (c *Client) DoJSON(ctx context.Context, method, path string, opts *RequestOptions, out any) error {
	if opts == nil {
		opts = &RequestOptions{}
	}

	target := c.resolve(path, opts.Query)

	var body io.Reader
	if opts.Body != nil {
		payload, err := json.Marshal(opts.Body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	if opts.Body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range NormalizeHeaders(opts.Headers) {
		req.Header.Set(key, value)
	}

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			StatusCode: resp.StatusCode,
			Message:    readErrorMessage(resp.Body),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response body: %w", err)
	}
	return nil
}

// GetJSON fetches path and decodes the response into out.
func (c *Client) GetJSON(ctx context.Context, path string, opts *RequestOptions, out any) error {
	return c.DoJSON(ctx, http.MethodGet, path, opts, out)
}

// PostJSON posts body to path and decodes the response into out.
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, http.MethodPost, path, &RequestOptions{Body: body}, out)
}

// PutJSON puts body to path and decodes the response into out.
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	return c.DoJSON(ctx, http.MethodPut, path, &RequestOptions{Body: body}, out)
}

// DeleteJSON deletes path and decodes the response into out.
func (c *Client) DeleteJSON(ctx context.Context, path string, out any) error {
	return c.DoJSON(ctx, http.MethodDelete, path, nil, out)
}

// authorize attaches the bearer credential. Attachment never fails: with no
// credential present the request goes out unauthenticated.
func (c *Client) authorize(req *http.Request) {
	if req.Header.Get("Authorization") != "" {
		return
	}
	if c.creds == nil {
		return
	}
	token, ok := c.creds.Get()
	if !ok {
		return
	}
	req.Header.Set("Authorization", "Bearer "+token)
}

func (c *Client) resolve(path string, query url.Values) string {
	ref := &url.URL{Path: path}
	target := c.base.ResolveReference(ref)
	if !strings.HasPrefix(path, "/") {
		// Relative paths are joined under the base path rather than
		// replacing it.
		target = c.base.JoinPath(path)
	}
	if len(query) > 0 {
		target.RawQuery = query.Encode()
	}
	return target.String()
}

// readErrorMessage pulls the {"error": "..."} message out of a failure
// body, tolerating any other shape.
func readErrorMessage(r io.Reader) string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(r).Decode(&payload); err != nil {
		return ""
	}
	return payload.Error
}
