package event

import "time"

const (
	ChatGroupCreated   = "chat.group.created.v1"
	TransactionCreated = "transaction.created.v1"
	OTPRequested       = "user.otp.requested.v1"
)

type Meta struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	CorrelationID string    `json:"correlationId,omitempty"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// Envelope is the message written to the broker and to websocket clients.
// Audience lists the user ids the websocket hub delivers to.
type Envelope struct {
	Meta     Meta   `json:"meta"`
	Data     any    `json:"data"`
	Audience []uint `json:"-"`
}
