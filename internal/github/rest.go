// Copyright 2025 SirSeer, LLC
//
// Licensed under the Business Source License 1.1 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://mariadb.com/bsl11
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirseerhq/sirseer-scout/internal/clock"
	scouterrors "github.com/sirseerhq/sirseer-scout/internal/errors"
	"github.com/sirseerhq/sirseer-scout/internal/giterror"
)

// DefaultBaseURL is the public GitHub REST API endpoint.
const DefaultBaseURL = "https://api.github.com"

// RESTClient implements the Client interface over the GitHub REST API.
// It is safe for concurrent use.
type RESTClient struct {
	baseURL    string
	httpClient *http.Client
	inspector  giterror.Inspector
	clock      clock.Clock
	logger     *slog.Logger
	timeout    time.Duration
}

// Option configures a RESTClient.
type Option func(*RESTClient)

// WithHTTPClient replaces the HTTP client. Its Transport is wrapped so the
// API headers and size limit still apply.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *RESTClient) {
		c.httpClient = httpClient
	}
}

// WithTimeout bounds each request, including reading the body.
func WithTimeout(timeout time.Duration) Option {
	return func(c *RESTClient) {
		c.timeout = timeout
	}
}

// WithLogger sets the logger for per-request debug lines.
func WithLogger(logger *slog.Logger) Option {
	return func(c *RESTClient) {
		c.logger = logger
	}
}

// WithClock sets the clock used to measure request durations.
func WithClock(clk clock.Clock) Option {
	return func(c *RESTClient) {
		c.clock = clk
	}
}

// NewRESTClient creates a client for the REST API rooted at endpoint.
// An empty endpoint selects DefaultBaseURL. The client is configured with:
//   - The REST API Accept and version headers
//   - User-Agent header for API compliance
//   - Response size limiting to prevent memory issues
//   - Connection pooling shared across requests
func NewRESTClient(endpoint string, opts ...Option) *RESTClient {
	if endpoint == "" {
		endpoint = DefaultBaseURL
	}

	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        10,
		MaxIdleConnsPerHost: 10,
		MaxConnsPerHost:     10,
		IdleConnTimeout:     90 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	c := &RESTClient{
		baseURL:    strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Transport: transport},
		inspector:  giterror.NewInspector(),
		clock:      clock.Real(),
		logger:     slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}

	base := c.httpClient.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	wrapped := *c.httpClient
	wrapped.Transport = &headerTransport{base: base, limit: maxResponseBytes}
	if c.timeout > 0 {
		wrapped.Timeout = c.timeout
	}
	c.httpClient = &wrapped

	return c
}

// getJSON performs a GET against path and decodes the body into out.
// Error payloads become *APIError; transport failures are classified by
// the inspector.
func (c *RESTClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}

	start := c.clock.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.mapError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return c.mapError(err)
	}

	c.logger.Debug("github request",
		"method", http.MethodGet,
		"path", path,
		"status", resp.StatusCode,
		"duration", c.clock.Since(start),
		"bytes", len(body),
	)

	if apiErr := parseAPIError(resp.StatusCode, body); apiErr != nil {
		return apiErr
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding %s response: %w: %w", path, scouterrors.ErrMalformedResponse, err)
	}

	return nil
}

// mapError maps transport errors to our domain errors with actionable messages
func (c *RESTClient) mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) {
		return err
	}

	if errors.Is(err, errResponseTooLarge) {
		return fmt.Errorf("GitHub API response too large: %w: %w", scouterrors.ErrMalformedResponse, err)
	}

	if c.inspector.IsMalformedPayload(err) {
		return fmt.Errorf("GitHub API response could not be read: %w: %w", scouterrors.ErrMalformedResponse, err)
	}

	if c.inspector.IsNetworkError(err) || c.inspector.IsTimeout(err) {
		return fmt.Errorf("network error connecting to GitHub API. Please check your internet connection and try again: %w: %w", scouterrors.ErrNetworkFailure, err)
	}

	return fmt.Errorf("request to GitHub API failed: %w", err)
}
