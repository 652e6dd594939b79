// Package socketio provides a discoverable socket.io client service. The
// client is constructed with defaults; the host dials after discovery.
package socketio

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/discoverygo/internal/construct"
	"github.com/vk/discoverygo/internal/ctxlog"
)

// Module implements the construct.Module interface for this package.
type Module struct{}

// Register registers the package's constructors with the catalog.
func (m *Module) Register(c *construct.Catalog) {
	c.MustRegister("socketio.Client", func(ctx context.Context) (any, error) {
		return NewClient(), nil
	})
}

const defaultDialTimeout = 10 * time.Second

// ErrNotConnected is returned when emitting before a successful Dial.
var ErrNotConnected = errors.New("socketio: not connected")

// Client is a websocket-transport socket.io client.
type Client struct {
	mu       sync.Mutex
	io       *socket.Socket
	timeout  time.Duration
	insecure bool
}

// NewClient creates a disconnected client with the default dial timeout.
func NewClient() *Client {
	return &Client{timeout: defaultDialTimeout}
}

// SetDialTimeout adjusts how long Dial waits for the initial connection.
func (c *Client) SetDialTimeout(d time.Duration) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.timeout = d
	return c
}

// SetInsecureSkipVerify disables TLS certificate verification on dial.
func (c *Client) SetInsecureSkipVerify(skip bool) *Client {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.insecure = skip
	return c
}

// Dial connects to the socket.io endpoint at rawURL under the given
// namespace and blocks until the connection is established, fails, or the
// dial timeout elapses.
func (c *Client) Dial(ctx context.Context, rawURL, namespace string) error {
	logger := ctxlog.FromContext(ctx).With("service", "socketio", "url", rawURL, "namespace", namespace)

	c.mu.Lock()
	timeout, insecure := c.timeout, c.insecure
	c.mu.Unlock()

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("failed to parse URL: %w", err)
	}

	baseURL := fmt.Sprintf("%s://%s", parsed.Scheme, parsed.Host)
	opts := socket.DefaultOptions()
	opts.SetPath(parsed.Path)
	opts.SetTransports(types.NewSet(transports.WebSocket))
	if insecure {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}

	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(namespace, opts)

	done := make(chan error, 1)
	io.On(types.EventName("connect"), func(...any) {
		logger.Info("Successfully connected", "sid", io.Id())
		select {
		case done <- nil:
		default:
		}
	})
	io.On(types.EventName("connect_error"), func(errs ...any) {
		connectErr := errors.New("connect error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				connectErr = e
			}
		}
		select {
		case done <- connectErr:
		default:
		}
	})

	dialCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	io.Connect()

	select {
	case <-dialCtx.Done():
		io.Disconnect()
		return fmt.Errorf("timed out while waiting for initial connection to %s", rawURL)
	case err := <-done:
		if err != nil {
			io.Disconnect()
			return err
		}
	}

	c.mu.Lock()
	c.io = io
	c.mu.Unlock()
	return nil
}

// Connected reports whether a Dial has succeeded.
func (c *Client) Connected() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.io != nil
}

// Emit sends an event with the given payload.
func (c *Client) Emit(event string, data ...any) error {
	c.mu.Lock()
	io := c.io
	c.mu.Unlock()
	if io == nil {
		return ErrNotConnected
	}
	io.Emit(event, data...)
	return nil
}

// On registers a handler for an incoming event.
func (c *Client) On(event string, handler func(data ...any)) error {
	c.mu.Lock()
	io := c.io
	c.mu.Unlock()
	if io == nil {
		return ErrNotConnected
	}
	io.On(types.EventName(event), func(args ...any) { handler(args...) })
	return nil
}

// Close disconnects the client. It is safe to call on a client that never
// connected.
func (c *Client) Close() {
	c.mu.Lock()
	io := c.io
	c.io = nil
	c.mu.Unlock()
	if io != nil {
		io.Disconnect()
	}
}
