package notify

import (
	"context"
	"log/slog"

	"novaspend/internal/bus"
)

// Listener consumes change announcements from other instances and replays
// them on the local bus as storage-change notifications. When the store is
// cached, invalidate drops the stale entries before subscribers re-read.
type Listener struct {
	client     *Client
	bus        *bus.Bus
	invalidate func(keys ...string)
}

func NewListener(client *Client, b *bus.Bus, invalidate func(keys ...string)) *Listener {
	return &Listener{
		client:     client,
		bus:        b,
		invalidate: invalidate,
	}
}

// Run blocks consuming announcements until ctx is cancelled.
func (l *Listener) Run(ctx context.Context) error {
	return l.client.ConsumeChanges(ctx, func(msg *ChangeMessage) error {
		return l.handle(ctx, msg)
	})
}

func (l *Listener) handle(ctx context.Context, msg *ChangeMessage) error {
	if l.invalidate != nil {
		l.invalidate(msg.Keys...)
	}
	for _, key := range msg.Keys {
		l.bus.Publish(bus.Notification{Event: bus.EventStorageChanged, Key: key})
	}

	slog.InfoContext(ctx, "Applied remote change",
		"origin", msg.Origin,
		"keys", msg.Keys)
	return nil
}
