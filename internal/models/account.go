package models

import (
	"time"

	"github.com/google/uuid"
)

// Account is the ledgerless balance model used by the direct transfer
// engine. Balances never go negative; every mutation happens inside a
// single transfer transaction.
type Account struct {
	ID        uuid.UUID `json:"id"`
	Balance   float64   `json:"balance"`
	CreatedAt time.Time `json:"created_at"`
}

// Transaction is the immutable audit record of a direct transfer.
type Transaction struct {
	ID            uuid.UUID `json:"id"`
	SourceID      uuid.UUID `json:"source_id"`
	DestinationID uuid.UUID `json:"destination_id"`
	Amount        float64   `json:"amount"`
	Memo          *string   `json:"memo,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// TransferResult carries the post-transfer balances read under the same
// row locks that performed the transfer.
type TransferResult struct {
	TransactionID      uuid.UUID `json:"transaction_id"`
	SourceBalance      float64   `json:"source_balance"`
	DestinationBalance float64   `json:"destination_balance"`
}
