// SPDX-License-Identifier: AGPL-3.0-only
package fetcher

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

	"github.com/charmbracelet/log"
	"github.com/fluffyriot/postview/internal/auth"
	"github.com/fluffyriot/postview/internal/logging"
)

type Client struct {
	httpClient http.Client
	baseURL    string
	tokens     auth.Store
	logger     *log.Logger
}

// NewClient talks to the content service REST API mounted under
// <apiBase>/api. tokens may be nil for anonymous access.
func NewClient(apiBase string, timeout time.Duration, tokens auth.Store, logger *log.Logger) *Client {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Client{
		httpClient: http.Client{
			Timeout: timeout,
		},
		baseURL: strings.TrimRight(apiBase, "/") + "/api",
		tokens:  tokens,
		logger:  logger,
	}
}

type Request struct {
	Method  string
	Path    string
	Query   url.Values
	Payload any
	Header  map[string]string
}

// StatusError is returned for any non-2xx response. Data holds the response
// body untouched.
type StatusError struct {
	Status int
	Data   json.RawMessage
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("content service returned %d: %s", e.Status, strings.TrimSpace(string(e.Data)))
}

// Do sends one request and returns the body of a 2xx response as is.
func (c *Client) Do(ctx context.Context, r Request) ([]byte, error) {
	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	target := c.baseURL + r.Path
	if len(r.Query) > 0 {
		target += "?" + r.Query.Encode()
	}

	var body io.Reader
	if r.Payload != nil {
		data, err := json.Marshal(r.Payload)
		if err != nil {
			return nil, fmt.Errorf("failed to encode payload for %s %s: %w", method, r.Path, err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.tokens != nil {
		token, err := c.tokens.Get()
		if err != nil {
			c.logger.Warn("Token store unavailable, sending anonymous request", "err", err)
		}
		for k, v := range auth.AuthHeader(token) {
			req.Header.Set(k, v)
		}
	}
	for k, v := range r.Header {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Content service request", "method", method, "path", r.Path, "status", resp.StatusCode, "elapsed", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{Status: resp.StatusCode, Data: data}
	}
	return data, nil
}

func (c *Client) doJSON(ctx context.Context, r Request, out any) error {
	data, err := c.Do(ctx, r)
	if err != nil {
		return err
	}
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", r.Path, err)
	}
	return nil
}
