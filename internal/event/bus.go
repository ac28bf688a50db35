// Package event carries configuration resolution outcomes between
// collaborators over a watermill in-process pub/sub bus.
package event

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// Type names a bus topic.
type Type string

const (
	// ConfigResolved is published after a resolution pass succeeds and
	// its snapshot became visible.
	ConfigResolved Type = "config.resolved"
	// ConfigFailed is published when a resolution pass aborts and the
	// previously visible snapshot stays in effect.
	ConfigFailed Type = "config.failed"
)

// Event is the payload carried on the bus.
type Event struct {
	Type    Type     `json:"type"`
	WorkDir string   `json:"workDir"`
	Sources []string `json:"sources,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Bus is an in-process pub/sub bus backed by watermill's gochannel
// transport. Delivery is asynchronous; subscribers run on their own
// goroutines until the bus is closed.
type Bus struct {
	pubsub *gochannel.GoChannel
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	wg     sync.WaitGroup
	closed bool
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	ctx, cancel := context.WithCancel(context.Background())
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{OutputChannelBuffer: 64},
			watermill.NopLogger{},
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Publish sends an event to all subscribers of its type.
func (b *Bus) Publish(e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	return b.pubsub.Publish(string(e.Type), msg)
}

// Subscribe registers fn for events of the given type. fn is invoked on
// a dedicated goroutine; it must not block indefinitely.
func (b *Bus) Subscribe(t Type, fn func(Event)) error {
	messages, err := b.pubsub.Subscribe(b.ctx, string(t))
	if err != nil {
		return err
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return context.Canceled
	}
	b.wg.Add(1)
	b.mu.Unlock()

	go func() {
		defer b.wg.Done()
		for msg := range messages {
			var e Event
			if err := json.Unmarshal(msg.Payload, &e); err == nil {
				fn(e)
			}
			msg.Ack()
		}
	}()
	return nil
}

// Close shuts the bus down and waits for subscriber goroutines to
// drain.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.mu.Unlock()

	b.cancel()
	err := b.pubsub.Close()
	b.wg.Wait()
	return err
}
