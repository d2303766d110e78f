package event

import (
	"context"
	"time"

	"github.com/google/uuid"
	"support-desk-api/config/logger"
)

// Notifier fans an event out to every sink. Sink failures are logged and
// never returned: the write that produced the event has already committed.
type Notifier struct {
	sinks []Publisher
	log   *logger.AppLogger
}

func NewNotifier(log *logger.AppLogger, sinks ...Publisher) *Notifier {
	return &Notifier{sinks: sinks, log: log}
}

func (n *Notifier) Notify(ctx context.Context, key string, data any, audience ...uint) {
	msg := Envelope{
		Meta: Meta{
			ID:            uuid.NewString(),
			Type:          key,
			CorrelationID: uuid.NewString(),
			OccurredAt:    time.Now().UTC(),
		},
		Data:     data,
		Audience: audience,
	}
	for _, sink := range n.sinks {
		if err := sink.Publish(ctx, key, msg); err != nil {
			n.log.Event.Error.Error().Err(err).Str("key", key).Str("id", msg.Meta.ID).Msg("failed to publish event")
		}
	}
}

func (n *Notifier) Close() error {
	var first error
	for _, sink := range n.sinks {
		if err := sink.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}
