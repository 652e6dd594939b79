package eventbus

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vk/discoverygo/internal/construct"
)

type recordingSubscriber struct {
	events []Event
}

func (s *recordingSubscriber) Notify(e Event) { s.events = append(s.events, e) }

func TestBus_AcceptChildAndPublish(t *testing.T) {
	t.Parallel()
	// --- Arrange ---
	bus := NewBus()
	first := &recordingSubscriber{}
	second := &recordingSubscriber{}
	bus.AcceptChild(first)
	bus.AcceptChild(second)

	// --- Act ---
	bus.Publish(Event{Topic: "services.ready", Payload: 3})

	// --- Assert ---
	assert.Equal(t, 2, bus.SubscriberCount())
	require.Len(t, first.events, 1)
	assert.Equal(t, "services.ready", first.events[0].Topic)
	require.Len(t, second.events, 1)
}

func TestBus_AcceptChildRejectsNonSubscriber(t *testing.T) {
	t.Parallel()
	bus := NewBus()

	bus.AcceptChild("not a subscriber")

	assert.Zero(t, bus.SubscriberCount())
}

func TestModule_Register(t *testing.T) {
	t.Parallel()
	cat := construct.NewCatalog()
	(&Module{}).Register(cat)

	bus, err := cat.New(context.Background(), "eventbus.Bus")
	require.NoError(t, err)
	assert.IsType(t, &Bus{}, bus)

	sub, err := cat.New(context.Background(), "eventbus.LogSubscriber")
	require.NoError(t, err)
	assert.IsType(t, &LogSubscriber{}, sub)
}
