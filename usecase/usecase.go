package usecase

import "context"

// EventNotifier receives domain events after the write that produced them has
// committed. audience lists the user ids to notify over websocket.
type EventNotifier interface {
	Notify(ctx context.Context, key string, data any, audience ...uint)
}
