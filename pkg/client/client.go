// Package client talks to a trialkit API: trial app metadata and the node type catalogue.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dukex/trialkit/pkg/otelhelper"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultUserAgent = "trialkit-client/1.0"

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client is safe for concurrent use. It keeps no per-call state: no cache, no retries.
type Client struct {
	baseURL   string
	doer      Doer
	token     string
	userAgent string
	language  string
	tracer    trace.Tracer
}

type Option func(*Client)

// WithHTTPClient replaces http.DefaultClient.
func WithHTTPClient(doer Doer) Option {
	return func(c *Client) {
		c.doer = doer
	}
}

// WithBearerToken sends "Authorization: Bearer <token>" on every request.
func WithBearerToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(c *Client) {
		c.tracer = tracer
	}
}

func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		c.userAgent = userAgent
	}
}

// WithLanguage sets Accept-Language, which selects the locale of validation messages.
func WithLanguage(language string) Option {
	return func(c *Client) {
		c.language = language
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:   strings.TrimRight(baseURL, "/"),
		doer:      http.DefaultClient,
		userAgent: defaultUserAgent,
		tracer:    otelhelper.NoopTracer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// call performs one request and returns the body of a 2xx response. route is the path
// template the span is named after. Errors returned by the Doer are passed through as they are.
func (c *Client) call(ctx context.Context, method, route, path string, body any, attrs ...attribute.KeyValue) ([]byte, error) {
	ctx, span := otelhelper.StartSpan(ctx, c.tracer, "client."+method+" "+route, attrs...)
	defer span.End()

	var reader io.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			otelhelper.SetError(span, err)

			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}

		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if c.language != "" {
		req.Header.Set("Accept-Language", c.language)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.doer.Do(req)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	span.SetAttributes(attribute.Int(otelhelper.HTTPStatusKey, resp.StatusCode))

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		otelhelper.SetError(span, err)

		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		statusErr := newStatusError(resp.StatusCode, payload)
		otelhelper.SetError(span, statusErr, attribute.Int(otelhelper.HTTPStatusKey, resp.StatusCode))

		return nil, statusErr
	}

	return payload, nil
}
