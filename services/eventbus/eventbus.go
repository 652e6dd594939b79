// Package eventbus provides a discoverable in-process publish/subscribe
// bus. The bus is the canonical parent service: manifest child directives
// attach subscribers to it during reconciliation.
package eventbus

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/vk/discoverygo/internal/construct"
)

// Module implements the construct.Module interface for this package.
type Module struct{}

// Register registers the package's constructors with the catalog.
func (m *Module) Register(c *construct.Catalog) {
	c.MustRegister("eventbus.Bus", func(ctx context.Context) (any, error) {
		return NewBus(), nil
	})
	c.MustRegister("eventbus.LogSubscriber", func(ctx context.Context) (any, error) {
		return &LogSubscriber{}, nil
	})
}

// Event is a topic plus an arbitrary payload.
type Event struct {
	Topic   string
	Payload any
}

// Subscriber receives every event published on the bus it is attached to.
type Subscriber interface {
	Notify(e Event)
}

// Bus fans published events out to its subscribers. It is safe for
// concurrent use.
type Bus struct {
	mu   sync.Mutex
	subs []Subscriber
}

// NewBus creates a bus with no subscribers.
func NewBus() *Bus {
	return &Bus{}
}

// AcceptChild attaches a child delivered by registry reconciliation.
// Children that do not implement Subscriber are dropped with a warning;
// the manifest declared them against the wrong parent.
func (b *Bus) AcceptChild(child any) {
	sub, ok := child.(Subscriber)
	if !ok {
		slog.Warn("Discarding bus child that is not a Subscriber.", "type", fmt.Sprintf("%T", child))
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = append(b.subs, sub)
}

// Publish delivers e to every subscriber, in attachment order.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	subs := make([]Subscriber, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, sub := range subs {
		sub.Notify(e)
	}
}

// SubscriberCount reports how many subscribers are attached.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// LogSubscriber logs every event it receives. Useful as a manifest-wired
// diagnostic child.
type LogSubscriber struct{}

// Notify implements Subscriber.
func (s *LogSubscriber) Notify(e Event) {
	slog.Info("Event published.", "topic", e.Topic, "payload", e.Payload)
}
