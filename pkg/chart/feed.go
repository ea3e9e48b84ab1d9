package chart

import (
	"sync"
	"time"
)

// EventKind classifies host events that invalidate the drawing surface
type EventKind int

const (
	// EventViewChanged fires when the visible time/price window moves
	EventViewChanged EventKind = iota
	// EventResized fires when the host container changes size; the whole
	// surface is invalidated, there is no partial-region redraw
	EventResized
	// EventDataUpdated fires when the candle data is replaced
	EventDataUpdated
)

// Event is a view invalidation notice from the host
type Event struct {
	Kind   EventKind
	Start  time.Time
	End    time.Time
	Width  float64
	Height float64
}

// EventConsumer processes view events
type EventConsumer func(Event)

// EventFeed distributes host view events to subscribers. Dispatch is
// synchronous on the publisher's goroutine: the host serializes all
// callbacks on its dispatch loop, and redraws must complete inside the
// triggering callback.
type EventFeed struct {
	mu     sync.RWMutex
	subs   map[int64]EventConsumer
	order  []int64
	nextID int64
}

// NewEventFeed creates an empty event feed
func NewEventFeed() *EventFeed {
	return &EventFeed{subs: make(map[int64]EventConsumer)}
}

// Subscribe registers a consumer and returns a token for removal
func (f *EventFeed) Subscribe(consumer EventConsumer) int64 {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.nextID++
	f.subs[f.nextID] = consumer
	f.order = append(f.order, f.nextID)
	return f.nextID
}

// Unsubscribe removes a consumer; unknown tokens are ignored
func (f *EventFeed) Unsubscribe(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.subs, id)
	for i, subID := range f.order {
		if subID == id {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
}

// Publish delivers the event to all subscribers in subscription order
func (f *EventFeed) Publish(event Event) {
	f.mu.RLock()
	consumers := make([]EventConsumer, 0, len(f.order))
	for _, id := range f.order {
		if consumer, ok := f.subs[id]; ok {
			consumers = append(consumers, consumer)
		}
	}
	f.mu.RUnlock()

	for _, consumer := range consumers {
		consumer(event)
	}
}

// Len returns the number of active subscriptions
func (f *EventFeed) Len() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return len(f.subs)
}
