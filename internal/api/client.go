// Package api provides the REST client for the résumé and cover-letter backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultUserAgent is the user agent string for API requests.
const DefaultUserAgent = "ResumeBuilder/1.0"

// Options configures the client.
type Options struct {
	// Timeout bounds a whole request. Zero means no timeout; callers cancel through ctx.
	Timeout    time.Duration
	UserAgent  string
	Headers    map[string]string
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// DefaultOptions returns the client defaults.
func DefaultOptions() *Options {
	return &Options{
		UserAgent: DefaultUserAgent,
	}
}

// Client issues single-attempt JSON requests against the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	headers    map[string]string
	logger     *zap.Logger
}

// NewClient creates a client for the given base URL.
func NewClient(baseURL string, opts *Options) (*Client, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	parsed, err := url.Parse(baseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", baseURL)
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: opts.Timeout}
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		userAgent:  userAgent,
		headers:    opts.Headers,
		logger:     logger,
	}, nil
}

// BaseURL returns the base URL requests are issued against.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Response is a raw backend response.
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IsJSON reports whether the response declared a JSON content type.
func (r *Response) IsJSON() bool {
	return strings.Contains(strings.ToLower(r.ContentType), "application/json")
}

// Do issues a request and decodes the response into out.
// JSON responses are decoded into out; other responses are assigned as text
// when out is a *string and ignored otherwise. out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	resp, err := c.Request(ctx, method, path, body)
	if err != nil {
		return err
	}
	return decodeInto(resp, out)
}

// Request issues a request and returns the raw response.
// Non-2xx responses are returned as *APIError.
func (c *Client) Request(ctx context.Context, method, path string, body any) (*Response, error) {
	fullURL := c.baseURL + path

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, reader)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}

	c.logger.Debug("api request", zap.String("method", method), zap.String("url", fullURL))
	start := time.Now()

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("api request failed", zap.String("method", method), zap.String("url", fullURL), zap.Error(err))
		return nil, &TransportError{Method: method, URL: fullURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = httpResp.Body.Close() }()

	bodyBytes, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &TransportError{Method: method, URL: fullURL, Message: "failed to read response body", Cause: err}
	}

	resp := &Response{
		StatusCode:  httpResp.StatusCode,
		ContentType: httpResp.Header.Get("Content-Type"),
		Body:        bodyBytes,
	}

	c.logger.Debug("api response",
		zap.String("method", method),
		zap.String("url", fullURL),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := newAPIError(resp)
		c.logger.Warn("api error response",
			zap.String("method", method),
			zap.String("url", fullURL),
			zap.Int("status", resp.StatusCode),
			zap.String("message", apiErr.Message))
		return resp, apiErr
	}

	return resp, nil
}

func decodeInto(resp *Response, out any) error {
	if out == nil {
		return nil
	}
	if resp.IsJSON() {
		if len(bytes.TrimSpace(resp.Body)) == 0 {
			return nil
		}
		if err := json.Unmarshal(resp.Body, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(resp.Body)
	}
	return nil
}
