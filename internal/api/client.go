// Package api is the client for the remote gateway. It owns every HTTP
// exchange with the backend: request building, bearer auth, and the single
// decode step that turns loosely shaped responses into typed values or a
// typed error. Nothing outside this package inspects response bodies.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const DefaultTimeout = 15 * time.Second

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client. Tests point this at an
// httptest server's client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTokenSource sets where bearer tokens come from.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.tokens = ts }
}

// WithTimeout bounds every request. A request that neither resolves nor
// rejects would otherwise hold single-flight guards forever.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// do sends the request and maps the outcome onto the error taxonomy. A 2xx
// response returns the raw body for the caller's decode step.
func (c *Client) do(req *http.Request) (json.RawMessage, error) {
	op := req.Method + " " + req.URL.Path

	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if tok := c.tokens.Token(); tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return body, nil
	}

	msg := serverMessage(body)
	switch resp.StatusCode {
	case http.StatusUnauthorized:
		return nil, &AuthError{Message: msg}
	case http.StatusNotFound:
		return nil, &NotFoundError{Resource: "resource", Message: msg}
	default:
		return nil, &APIError{StatusCode: resp.StatusCode, Message: msg}
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	return c.exchange(req, out)
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Op: "POST " + path, Err: err}
		}
		body = bytes.NewReader(buf)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, body)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.exchange(req, out)
}

func (c *Client) delete(ctx context.Context, path string, query url.Values, out any) error {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return &TransportError{Op: "DELETE " + path, Err: err}
	}
	return c.exchange(req, out)
}

// multipartForm builds a multipart request from text fields (a field name may
// repeat, e.g. "tags") and file parts, matching how the web client submits
// post and profile forms.
func (c *Client) multipartForm(ctx context.Context, method, path string, fields map[string][]string, files map[string][]filePart, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, values := range fields {
		for _, v := range values {
			if err := w.WriteField(name, v); err != nil {
				return &TransportError{Op: method + " " + path, Err: err}
			}
		}
	}
	for name, parts := range files {
		for _, p := range parts {
			fw, err := w.CreateFormFile(name, p.filename)
			if err != nil {
				return &TransportError{Op: method + " " + path, Err: err}
			}
			if _, err := fw.Write(p.content); err != nil {
				return &TransportError{Op: method + " " + path, Err: err}
			}
		}
	}
	if err := w.Close(); err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return &TransportError{Op: method + " " + path, Err: err}
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.exchange(req, out)
}

type filePart struct {
	filename string
	content  []byte
}

// exchange runs the request and, when out is non-nil, decodes the body into
// it. Decode failures are transport errors: a 2xx with an unreadable body is
// as unusable as no response.
func (c *Client) exchange(req *http.Request, out any) error {
	body, err := c.do(req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return &TransportError{
			Op:  req.Method + " " + req.URL.Path,
			Err: fmt.Errorf("decoding response: %w", err),
		}
	}
	return nil
}

// serverMessage pulls the human-readable message out of an error body. The
// backend uses both "message" and "error" keys.
func serverMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	if payload.Message != "" {
		return payload.Message
	}
	return payload.Error
}
