package api

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

	"github.com/superbmd/bmd-cli/internal/core/domain"
	"github.com/superbmd/bmd-cli/pkg/notify"
)

// ErrSessionExpired is returned when any authenticated call comes back
// 401. The persisted session has already been cleared and a
// notification queued by the time a caller sees it.
var ErrSessionExpired = errors.New("session expired, please log in again")

// loginPath is exempt from 401 interception: a 401 there means bad
// credentials, not an expired session.
const loginPath = "/users/login"

// SessionSource provides the current session and allows the
// interceptor to tear it down.
type SessionSource interface {
	Current() domain.Session
	Clear() error
}

// APIError is a backend-reported failure with the server's message
// preserved when one was supplied.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error (HTTP %d)", e.Status)
}

// IsNotFound reports whether err is a backend 404, rendered by the
// views as an empty/not-found state rather than a failure.
func IsNotFound(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound
}

// Client is the single HTTP adapter every resource family goes
// through. It attaches the bearer token of the current session to each
// request and funnels all authorization failures through one
// interception point, so no command needs its own 401/403 handling.
type Client struct {
	base    *url.URL
	http    *http.Client
	session SessionSource
}

// New creates a client for the given base URL (including the /api
// prefix, e.g. http://localhost:6543/api).
func New(baseURL string, timeout time.Duration, session SessionSource) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		base:    base,
		http:    &http.Client{Timeout: timeout},
		session: session,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u := *c.base
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.session.Current().Token; token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("could not reach the server: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}

	return c.intercept(path, resp)
}

// intercept is the single authorization-failure funnel.
func (c *Client) intercept(path string, resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: serverMessage(resp.Body)}

	switch {
	case resp.StatusCode == http.StatusUnauthorized && path != loginPath:
		// Session teardown happens exactly once per occurrence, here.
		_ = c.session.Clear()
		notify.Error("Your session has expired. Please log in again.")
		return ErrSessionExpired
	case resp.StatusCode == http.StatusForbidden:
		notify.Error("You are not authorized to perform this action.")
		return apiErr
	default:
		// Everything else passes through for the caller to present.
		return apiErr
	}
}

func serverMessage(body io.Reader) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	return payload.Message
}

// listEnvelope is the shape of every collection response.
type listEnvelope[T any] struct {
	Items      []T               `json:"items"`
	Pagination domain.Pagination `json:"pagination"`
}

func pageQuery(criteria domain.Criteria, page, limit int) url.Values {
	v := criteria.Values()
	v.Set("page", fmt.Sprintf("%d", page))
	v.Set("limit", fmt.Sprintf("%d", limit))
	return v
}
