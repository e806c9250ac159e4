// Package bus carries in-process change signals between mounted views and
// the services that mutate the store. Delivery is synchronous and
// best-effort: a subscriber that is not registered when a signal fires
// simply reads fresh state the next time it mounts.
package bus

import "sync"

type Event string

const (
	EventThemeChanged   Event = "themeChanged"
	EventDataImported   Event = "dataImported"
	EventDataCleared    Event = "dataCleared"
	EventLedgerUpdated  Event = "ledgerUpdated"
	EventStorageChanged Event = "storageChanged"
)

// Notification names the event and, for storage-level changes, the record
// key that changed.
type Notification struct {
	Event Event
	Key   string
}

type Handler func(Notification)

type subscription struct {
	events map[Event]struct{} // empty means every event
	fn     Handler
}

// Bus is a minimal publish/subscribe broker. Handlers run synchronously on
// the publisher's goroutine, matching the single-action-at-a-time execution
// model of the application.
type Bus struct {
	mu   sync.RWMutex
	next int
	subs map[int]subscription
}

func New() *Bus {
	return &Bus{subs: make(map[int]subscription)}
}

// Subscribe registers fn for the given events, or for every event when none
// are named. The returned function unregisters the subscription.
func (b *Bus) Subscribe(fn Handler, events ...Event) (unsubscribe func()) {
	filter := make(map[Event]struct{}, len(events))
	for _, e := range events {
		filter[e] = struct{}{}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = subscription{events: filter, fn: fn}
	b.mu.Unlock()

	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

// Publish delivers n to every matching subscriber before returning.
func (b *Bus) Publish(n Notification) {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs))
	for _, sub := range b.subs {
		if len(sub.events) == 0 {
			handlers = append(handlers, sub.fn)
			continue
		}
		if _, ok := sub.events[n.Event]; ok {
			handlers = append(handlers, sub.fn)
		}
	}
	b.mu.RUnlock()

	for _, fn := range handlers {
		fn(n)
	}
}
