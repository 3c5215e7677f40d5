// Package api is the client of the remote workshop REST API.
//
// Every endpoint answers with the envelope {key, msg, data}. A response is
// successful only when the HTTP status is 2xx and key is "success"; anything
// else becomes an *Error carrying the server message. Transport and decoding
// failures are returned wrapped, never as *Error.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/jcmexdev/workshop-storefront/internal/pkg/requestid"
)

// KeySuccess is the envelope key of a successful response.
const KeySuccess = "success"

// maxBodyBytes caps how much of a JSON response is read.
const maxBodyBytes = 8 << 20

// Envelope is the response wrapper used by every endpoint.
type Envelope struct {
	Key  string          `json:"key"`
	Msg  string          `json:"msg"`
	Data json.RawMessage `json:"data"`
}

// Request describes one API call. At most one of JSON, Form and Multipart
// may be set.
type Request struct {
	Method string
	Path   string
	// Token is sent as a bearer token when not empty.
	Token     string
	Query     url.Values
	JSON      any
	Form      url.Values
	Multipart url.Values
}

// Client calls the remote API. It is safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout bounds every call, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// NewClient returns a client for baseURL, e.g. "https://host/api/v1".
// Outbound calls are traced with otelhttp.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the configured base URL without a trailing slash.
func (c *Client) BaseURL() string { return c.baseURL }

// Do performs req and decodes data into out when out is not nil and the
// response carries data. The envelope is returned on success.
func (c *Client) Do(ctx context.Context, req Request, out any) (*Envelope, error) {
	httpReq, err := c.newRequest(ctx, req)
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api: %s %s: %w", req.Method, req.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("api: read %s %s: %w", req.Method, req.Path, err)
	}

	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode >= 400 {
			return nil, &Error{Status: resp.StatusCode}
		}
		return nil, fmt.Errorf("api: decode %s %s: %w", req.Method, req.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 || env.Key != KeySuccess {
		return &env, &Error{Status: resp.StatusCode, Key: env.Key, Msg: env.Msg}
	}

	if out != nil && hasData(env.Data) {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return &env, fmt.Errorf("api: decode data of %s %s: %w", req.Method, req.Path, err)
		}
	}
	return &env, nil
}

// Stream performs a GET and hands back the raw body for binary downloads.
// The caller must close the returned body. Non-2xx statuses become *Error.
func (c *Client) Stream(ctx context.Context, path, token string) (io.ReadCloser, string, error) {
	httpReq, err := c.newRequest(ctx, Request{Method: http.MethodGet, Path: path, Token: token})
	if err != nil {
		return nil, "", err
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, "", fmt.Errorf("api: GET %s: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		apiErr := &Error{Status: resp.StatusCode}
		var env Envelope
		if b, readErr := io.ReadAll(io.LimitReader(resp.Body, 64<<10)); readErr == nil && json.Unmarshal(b, &env) == nil {
			apiErr.Key, apiErr.Msg = env.Key, env.Msg
		}
		return nil, "", apiErr
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

func (c *Client) newRequest(ctx context.Context, req Request) (*http.Request, error) {
	u := c.baseURL + "/" + strings.TrimLeft(req.Path, "/")
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}

	var (
		body        io.Reader
		contentType string
	)
	switch {
	case req.JSON != nil:
		b, err := json.Marshal(req.JSON)
		if err != nil {
			return nil, fmt.Errorf("api: encode %s %s: %w", req.Method, req.Path, err)
		}
		body, contentType = bytes.NewReader(b), "application/json"
	case req.Form != nil:
		body, contentType = strings.NewReader(req.Form.Encode()), "application/x-www-form-urlencoded"
	case req.Multipart != nil:
		buf, ct, err := encodeMultipart(req.Multipart)
		if err != nil {
			return nil, fmt.Errorf("api: encode %s %s: %w", req.Method, req.Path, err)
		}
		body, contentType = buf, ct
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("api: build %s %s: %w", method, req.Path, err)
	}
	if contentType != "" {
		httpReq.Header.Set("Content-Type", contentType)
	}
	if req.Token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.Token)
	}
	requestid.Inject(ctx, httpReq.Header)
	return httpReq, nil
}

func encodeMultipart(fields url.Values) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	for key, values := range fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return nil, "", err
			}
		}
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return buf, w.FormDataContentType(), nil
}

func hasData(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null"))
}

// IsArray reports whether raw holds a JSON array.
func IsArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

// ErrNotAuthenticated is returned before any network call when an operation
// needs a login token and none is stored.
var ErrNotAuthenticated = errors.New("api: not authenticated")
