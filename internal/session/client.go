// Package session wraps net/http for the bank adapters: a cookie jar
// for login state, a base URL, default headers, and response bodies
// returned as strings or bytes. A Client is owned by a single fetch
// call and discarded with it; cookies are never persisted.
package session

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/bankfeed-dev/bankfeed/internal/bankerr"
)

const defaultTimeout = 60 * time.Second

// Client issues requests against one bank's base URL with shared
// cookies and headers.
type Client struct {
	httpClient *http.Client
	baseURL    string
	headers    map[string]string
	username   string
	password   string
	basicAuth  bool
}

// Option configures a Client.
type Option func(*Client)

// WithHeader adds a default header sent on every request.
func WithHeader(key, value string) Option {
	return func(c *Client) { c.headers[key] = value }
}

// WithBasicAuth sends HTTP basic auth on every request.
func WithBasicAuth(username, password string) Option {
	return func(c *Client) {
		c.username = username
		c.password = password
		c.basicAuth = true
	}
}

// WithTimeout overrides the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New creates a Client with a fresh cookie jar.
func New(baseURL string, opts ...Option) *Client {
	jar, _ := cookiejar.New(nil) // only errors on bad PublicSuffixList options
	c := &Client{
		httpClient: &http.Client{
			Jar:     jar,
			Timeout: defaultTimeout,
		},
		baseURL: strings.TrimSuffix(baseURL, "/"),
		headers: make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches a path and returns the body as a string.
func (c *Client) Get(ctx context.Context, path string) (string, error) {
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	return string(body), err
}

// PostForm posts form values and returns the body as a string.
func (c *Client) PostForm(ctx context.Context, path string, form url.Values) (string, error) {
	body, err := c.do(ctx, http.MethodPost, path,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	return string(body), err
}

// PostFormBytes posts form values and returns the raw body bytes, for
// responses in legacy encodings.
func (c *Client) PostFormBytes(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.do(ctx, http.MethodPost, path,
		"application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
}

// GetJSON fetches a path and decodes the JSON body into out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	body, err := c.do(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		return bankerr.Parsef("decoding JSON from %s: %v", path, err)
	}
	return nil
}

// PostJSON posts a JSON body and decodes the JSON response into out.
// A nil out discards the response body.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}
	body, err := c.do(ctx, http.MethodPost, path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return bankerr.Parsef("decoding JSON from %s: %v", path, err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.resolve(path), body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.basicAuth {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, bankerr.Networkf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, bankerr.Networkf(err, "reading %s %s response", method, path)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, bankerr.Networkf(nil, "%s %s: status %d", method, path, resp.StatusCode)
	}
	return data, nil
}

func (c *Client) resolve(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return c.baseURL + path
}
