// Package remote implements the JSON HTTP client shared by every repository
// that talks to the record-store microservices.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/CristopherGuzmanVelarde/school-admin-api/pkg/errors"
)

// DefaultTimeout bounds every remote call when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// Observer receives the outcome of every remote call, e.g. for metrics.
type Observer func(outcome string, latency time.Duration)

// Client is a thin JSON client bound to one remote collection base URL.
type Client struct {
	base   string
	http   *http.Client
	logger *zap.Logger

	// Observer, when set, is invoked once per call with the outcome kind.
	Observer Observer
}

// NewClient builds a client for the given collection base URL.
func NewClient(base string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		base:   strings.TrimRight(base, "/"),
		http:   &http.Client{Timeout: timeout},
		logger: logger,
	}
}

// Get issues a GET request and decodes the response body into out.
func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

// Post issues a POST request with an optional JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

// Put issues a PUT request with an optional JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

// Delete issues a DELETE request and decodes the response body into out.
func (c *Client) Delete(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodDelete, path, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "encode request body")
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		classified := c.classifyTransportError(method, path, err)
		c.observe(string(appErrors.KindOf(classified)), time.Since(start))
		return classified
	}
	defer resp.Body.Close() //nolint:errcheck

	switch {
	case resp.StatusCode == http.StatusNotFound:
		c.observe(string(appErrors.KindNotFound), time.Since(start))
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		c.observe(string(appErrors.KindServer), time.Since(start))
	default:
		c.observe("OK", time.Since(start))
	}

	c.logger.Debug("remote_call",
		zap.String("method", method),
		zap.String("url", c.base+path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("latency", time.Since(start)),
	)

	if resp.StatusCode == http.StatusNotFound {
		return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("%s %s returned 404", method, path))
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return appErrors.Wrap(
			fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet))),
			appErrors.ErrServer.Code, appErrors.ErrServer.Status,
			fmt.Sprintf("%s %s failed", method, path),
		)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, "read response body")
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrServer.Code, appErrors.ErrServer.Status, "decode response body")
	}
	return nil
}

func (c *Client) observe(outcome string, latency time.Duration) {
	if c.Observer != nil {
		c.Observer(outcome, latency)
	}
}

// classifyTransportError separates timeouts from plain connectivity failures
// so callers can surface TIMEOUT distinctly.
func (c *Client) classifyTransportError(method, path string, err error) error {
	msg := fmt.Sprintf("%s %s", method, path)

	if errors.Is(err, context.DeadlineExceeded) {
		return appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, msg)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return appErrors.Wrap(err, appErrors.ErrTimeout.Code, appErrors.ErrTimeout.Status, msg)
	}
	return appErrors.Wrap(err, appErrors.ErrNetwork.Code, appErrors.ErrNetwork.Status, msg)
}
