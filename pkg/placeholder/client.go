package placeholder

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/samvad-hq/placeholder-client/pkg/httpclient"
)

// Package placeholder is the transport for the JSONPlaceholder REST API.

const (
	EndpointPosts = "posts"
	EndpointUsers = "users"

	// DefaultBaseURL is the public JSONPlaceholder deployment.
	DefaultBaseURL = "https://jsonplaceholder.typicode.com/"
)

// Client fetches named collections relative to a fixed base URL.
// It holds no mutable state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    httpclient.Client
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default resty-backed HTTP client.
func WithHTTPClient(hc httpclient.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// New builds a Client for baseURL, which must be an absolute http(s) URL.
func New(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimSpace(baseURL)
	if err := validateBaseURL(baseURL); err != nil {
		return nil, err
	}

	c := &Client{baseURL: baseURL}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = httpclient.NewRestyClient(httpclient.DefaultTimeout)
	}
	return c, nil
}

func validateBaseURL(raw string) error {
	if raw == "" {
		return fmt.Errorf("base url is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse base url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("base url %q must use http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("base url %q has no host", raw)
	}
	return nil
}

// BaseURL returns the configured base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchCollection retrieves endpoint relative to the client's base URL.
func (c *Client) FetchCollection(ctx context.Context, endpoint string) ([]map[string]any, error) {
	return FetchCollection(ctx, c.http, c.baseURL, endpoint)
}

// FetchCollection issues exactly one GET for baseURL/endpoint and decodes the
// body as a JSON array of objects. Non-2xx statuses yield *HTTPError.
func FetchCollection(ctx context.Context, hc httpclient.Client, baseURL, endpoint string) ([]map[string]any, error) {
	if hc == nil {
		return nil, fmt.Errorf("http client is nil")
	}
	target := JoinURL(baseURL, endpoint)

	resp, err := hc.Get(ctx, target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	status := resp.StatusCode()
	if status < 200 || status > 299 {
		return nil, newHTTPError(target, status, resp.Body())
	}

	records, err := decodeCollection(resp.Body())
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", target, err)
	}
	return records, nil
}

// JoinURL concatenates base and endpoint with exactly one separating slash.
func JoinURL(baseURL, endpoint string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
}
