package events

import "context"

// Event types
const (
	EventEscrowInitiated   = "escrow_initiated"
	EventEscrowClaimed     = "escrow_claimed"
	EventEscrowExpired     = "escrow_expired"
	EventTransferCompleted = "transfer_completed"
)

// StreamWallet is the Redis channel every wallet event is published to.
const StreamWallet = "events:wallet"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
