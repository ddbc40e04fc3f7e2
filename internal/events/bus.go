// Package events carries discrete session, transport, and store transitions
// between the controller and its consumers. Per-frame data (countdown
// snapshots, breath phases) stays out of the bus; only state changes that
// must never be coalesced travel here.
package events

import (
	"sync"

	"github.com/calmhq/calm-cli/internal/types"
)

// subscriberBuffer sizes each subscription channel. Publishing never blocks
// the frame loop: a subscriber that falls this far behind loses events.
const subscriberBuffer = 100

// Bus fans published events out to every subscriber.
type Bus struct {
	subscribers []chan types.Event
	mu          sync.RWMutex
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make([]chan types.Event, 0),
	}
}

// Subscribe returns a channel receiving all events published after this call.
func (b *Bus) Subscribe() <-chan types.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan types.Event, subscriberBuffer)
	b.subscribers = append(b.subscribers, ch)
	return ch
}

// Publish delivers event to every subscriber whose buffer has room.
// Full subscribers are skipped rather than blocking the publisher.
func (b *Bus) Publish(event types.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes every subscriber channel and drops them.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subscribers {
		close(ch)
	}
	b.subscribers = nil
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
