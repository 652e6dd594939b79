// Package httpclient provides a discoverable HTTP client service backed
// by resty. The client is constructed with defaults and tuned afterwards,
// since manifest construction takes no arguments.
package httpclient

import (
	"context"
	"time"

	"resty.dev/v3"

	"github.com/vk/discoverygo/internal/construct"
)

// Module implements the construct.Module interface for this package.
type Module struct{}

// Register registers the package's constructors with the catalog.
func (m *Module) Register(c *construct.Catalog) {
	c.MustRegister("httpclient.Client", func(ctx context.Context) (any, error) {
		return NewClient(), nil
	})
}

const defaultTimeout = 30 * time.Second

// Client wraps a shared resty client.
type Client struct {
	rc *resty.Client
}

// NewClient creates a client with the default timeout.
func NewClient() *Client {
	return &Client{rc: resty.New().SetTimeout(defaultTimeout)}
}

// SetTimeout adjusts the request timeout.
func (c *Client) SetTimeout(d time.Duration) *Client {
	c.rc.SetTimeout(d)
	return c
}

// Get fetches url and returns the response body and status code.
func (c *Client) Get(ctx context.Context, url string) (string, int, error) {
	resp, err := c.rc.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", 0, err
	}
	return resp.String(), resp.StatusCode(), nil
}

// Resty exposes the underlying client for callers that need the full API.
func (c *Client) Resty() *resty.Client { return c.rc }

// Close releases idle connections held by the underlying client.
func (c *Client) Close() error { return c.rc.Close() }
