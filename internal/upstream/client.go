// Package upstream talks to the campus REST backend on behalf of signed-in users.
// Every call forwards the caller's backend bearer token; the gateway never mints one.
package upstream

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
	"unicode/utf8"
)

const maxErrorBody = 64 << 10

// Outcome labels reported to the Observer.
const (
	OutcomeSuccess     = "success"
	OutcomeClientError = "client_error"
	OutcomeServerError = "server_error"
	OutcomeTransport   = "transport_error"
)

// Observer receives one observation per backend call.
type Observer interface {
	ObserveUpstreamRequest(method, resource, outcome string, duration time.Duration)
}

// StatusError is a non-2xx backend response.
type StatusError struct {
	Status  int
	Message string
	Fields  map[string][]string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

// AsStatusError unwraps a *StatusError from err.
func AsStatusError(err error) (*StatusError, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se, true
	}
	return nil, false
}

// Client is a thin JSON/multipart client for the backend API.
type Client struct {
	baseURL  string
	http     *http.Client
	observer Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithObserver reports call latency and outcome.
func WithObserver(o Observer) Option {
	return func(c *Client) { c.observer = o }
}

// New builds a client rooted at baseURL, for example "https://campus.example.com/api".
func New(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

type call struct {
	method      string
	path        string
	resource    string
	token       string
	query       url.Values
	body        io.Reader
	contentType string
}

func (c *Client) jsonCall(ctx context.Context, cl call, in, out interface{}) error {
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s request: %w", cl.resource, err)
		}
		cl.body = bytes.NewReader(payload)
		cl.contentType = "application/json"
	}
	body, err := c.do(ctx, cl)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return decodeOne(body, out)
}

func (c *Client) do(ctx context.Context, cl call) ([]byte, error) {
	target := c.baseURL + cl.path
	if len(cl.query) > 0 {
		target += "?" + cl.query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, cl.method, target, cl.body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", cl.resource, err)
	}
	req.Header.Set("Accept", "application/json")
	if cl.contentType != "" {
		req.Header.Set("Content-Type", cl.contentType)
	}
	if cl.token != "" {
		req.Header.Set("Authorization", "Bearer "+cl.token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.observe(cl, OutcomeTransport, start)
		return nil, fmt.Errorf("%s %s: %w", cl.method, cl.resource, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		outcome := OutcomeClientError
		if resp.StatusCode >= 500 {
			outcome = OutcomeServerError
		}
		c.observe(cl, outcome, start)
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseStatusError(resp.StatusCode, raw)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.observe(cl, OutcomeTransport, start)
		return nil, fmt.Errorf("read %s response: %w", cl.resource, err)
	}
	c.observe(cl, OutcomeSuccess, start)
	return body, nil
}

func (c *Client) observe(cl call, outcome string, start time.Time) {
	if c.observer == nil {
		return
	}
	c.observer.ObserveUpstreamRequest(cl.method, cl.resource, outcome, time.Since(start))
}

func parseStatusError(status int, raw []byte) *StatusError {
	se := &StatusError{Status: status}
	var body struct {
		Message string              `json:"message"`
		Error   string              `json:"error"`
		Errors  map[string][]string `json:"errors"`
	}
	if err := json.Unmarshal(raw, &body); err == nil {
		se.Message = body.Message
		if se.Message == "" {
			se.Message = body.Error
		}
		se.Fields = body.Errors
		return se
	}
	se.Message = clip(strings.TrimSpace(string(raw)), maxErrorMessage)
	return se
}

const maxErrorMessage = 200

// clip shortens s to at most max bytes without splitting a rune.
func clip(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// decodeList accepts a bare array or a {"data": [...]} collection.
func decodeList[T any](body []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return []T{}, nil
	}
	if trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decode list: %w", err)
		}
		return items, nil
	}
	var wrapped struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	if wrapped.Data == nil {
		return []T{}, nil
	}
	return wrapped.Data, nil
}

// decodeOne accepts a bare object or a {"data": {...}} resource.
func decodeOne(body []byte, out interface{}) error {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err == nil {
		if data, ok := envelope["data"]; ok && len(data) > 0 && data[0] == '{' {
			body = data
		}
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func list[T any](ctx context.Context, c *Client, token, path, resource string, query url.Values) ([]T, error) {
	body, err := c.do(ctx, call{method: http.MethodGet, path: path, resource: resource, token: token, query: query})
	if err != nil {
		return nil, err
	}
	return decodeList[T](body)
}

func (c *Client) remove(ctx context.Context, token, resource, id string) error {
	_, err := c.do(ctx, call{
		method:   http.MethodDelete,
		path:     "/" + resource + "/" + url.PathEscape(id),
		resource: resource,
		token:    token,
	})
	return err
}
