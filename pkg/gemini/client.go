// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/focusengine/dietitian-focus/pkg/defaults"
	"github.com/focusengine/dietitian-focus/pkg/errors"
	"github.com/focusengine/dietitian-focus/pkg/serializer"
)

const (
	// DefaultBaseURL is the public Generative Language API endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	// DefaultModel is used when no model is configured.
	DefaultModel = "gemini-2.0-flash"

	// FallbackText is returned when the upstream response carries no text.
	FallbackText = "No response from Gemini."

	apiKeyHeader = "x-goog-api-key"
)

// ErrMissingAPIKey is returned by GenerateText when no credential is configured.
var ErrMissingAPIKey = errors.New(errors.ErrCodeConfiguration, "Missing GEMINI_API_KEY")

// Option configures a Client.
type Option func(*Client)

// Client calls the Gemini generateContent endpoint. It is safe for concurrent use.
type Client struct {
	apiKey           string
	model            string
	baseURL          string
	timeout          time.Duration
	httpClient       *http.Client
	generationConfig *GenerationConfig
}

// WithAPIKey sets the API key sent in the x-goog-api-key header.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = strings.TrimSpace(key)
	}
}

// WithModel sets the model name, e.g. "gemini-2.0-flash".
func WithModel(model string) Option {
	return func(c *Client) {
		if m := strings.TrimSpace(model); m != "" {
			c.model = m
		}
	}
}

// WithBaseURL overrides the API base URL. Tests point this at an httptest server.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		if u := strings.TrimSpace(baseURL); u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithTimeout bounds each GenerateText call. Zero disables the per-call timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithGenerationConfig attaches sampling parameters to every request.
func WithGenerationConfig(gc *GenerationConfig) Option {
	return func(c *Client) {
		c.generationConfig = gc
	}
}

// NewClient returns a Client configured by opts.
func NewClient(opts ...Option) *Client {
	c := &Client{
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		timeout: defaults.UpstreamTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		// Per-call deadlines come from the context, so no client-wide timeout.
		c.httpClient = &http.Client{Transport: serializer.NewDefaultHTTPTransport()}
	}
	return c
}

// Model returns the configured model name.
func (c *Client) Model() string {
	return c.model
}

// HasAPIKey reports whether a credential is configured.
func (c *Client) HasAPIKey() bool {
	return c.apiKey != ""
}

func (c *Client) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
}

// GenerateText sends prompt as a single user turn and returns the first text
// fragment of the first candidate, or FallbackText when there is none.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	if !c.HasAPIKey() {
		return "", ErrMissingAPIKey
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := c.generate(ctx, prompt)
	upstreamRequestDuration.WithLabelValues(c.model).Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		upstreamRequestsTotal.WithLabelValues(outcomeError).Inc()
		slog.Debug("gemini request failed",
			"model", c.model,
			"duration", time.Since(start).String(),
			"error", err,
		)
		return "", err
	case text == "":
		upstreamRequestsTotal.WithLabelValues(outcomeEmpty).Inc()
		slog.Debug("gemini returned no text, using fallback", "model", c.model)
		return FallbackText, nil
	default:
		upstreamRequestsTotal.WithLabelValues(outcomeSuccess).Inc()
		slog.Debug("gemini request completed",
			"model", c.model,
			"duration", time.Since(start).String(),
		)
		return text, nil
	}
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(GenerateContentRequest{
		Contents: []Content{
			{Role: "user", Parts: []Part{{Text: prompt}}},
		},
		GenerationConfig: c.generationConfig,
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to encode request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, "failed to create request", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", serializer.HttpReaderUserAgent)
	req.Header.Set(apiKeyHeader, c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.WrapWithContext(errors.ErrCodeTimeout, "gemini request timed out", err,
				map[string]any{"model": c.model, "timeout": c.timeout.String()})
		}
		return "", errors.WrapWithContext(errors.ErrCodeUpstream, "gemini request failed", err,
			map[string]any{"model": c.model})
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, defaults.UpstreamMaxResponseBytes))
	if err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeUpstream, "failed to read gemini response", err,
			map[string]any{"model": c.model, "status": resp.StatusCode})
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", statusError(c.model, resp.StatusCode, raw)
	}

	var out GenerateContentResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", errors.WrapWithContext(errors.ErrCodeUpstream, "malformed gemini response", err,
			map[string]any{"model": c.model})
	}

	if out.PromptFeedback != nil && out.PromptFeedback.BlockReason != "" {
		slog.Warn("gemini blocked prompt", "model", c.model, "reason", out.PromptFeedback.BlockReason)
	}

	text, _ := out.FirstText()
	return text, nil
}

func statusError(model string, status int, raw []byte) error {
	ctx := map[string]any{"model": model, "status": status}

	var apiErr apiErrorResponse
	if err := json.Unmarshal(raw, &apiErr); err == nil && apiErr.Error.Message != "" {
		ctx["upstreamStatus"] = apiErr.Error.Status
		ctx["upstreamMessage"] = apiErr.Error.Message
	}

	return errors.NewWithContext(errors.ErrCodeUpstream,
		fmt.Sprintf("gemini returned status %d", status), ctx)
}
