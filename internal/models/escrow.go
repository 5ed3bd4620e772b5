package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EscrowStatusOpen    = "open"
	EscrowStatusClaimed = "claimed"
	EscrowStatusExpired = "expired"
)

// ValidEscrowTransitions is the whole lifecycle: an open escrow is either
// claimed exactly once or expires; both end states are terminal.
var ValidEscrowTransitions = map[string][]string{
	EscrowStatusOpen:    {EscrowStatusClaimed, EscrowStatusExpired},
	EscrowStatusClaimed: {},
	EscrowStatusExpired: {},
}

func IsValidEscrowTransition(from, to string) bool {
	for _, s := range ValidEscrowTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EscrowTransaction records one keyword-protected hand-off. The row is
// inserted only after the funding transfer succeeded on the ledger, and
// is never deleted; claim and expiry flip the status exactly once.
type EscrowTransaction struct {
	ID           uuid.UUID `json:"id"`
	KeywordPair  string    `json:"keyword_pair"`
	SenderUserID uuid.UUID `json:"sender_user_id"`
	EscrowAddress string   `json:"escrow_address"`
	// EscrowSecret is cipher-sealed, like User.SecretKey.
	EscrowSecret  string     `json:"-"`
	Amount        float64    `json:"amount"`
	Memo          string     `json:"memo"`
	Status        string     `json:"status"`
	FundingTxHash string     `json:"funding_tx_hash"`
	ReleaseTxHash *string    `json:"release_tx_hash,omitempty"`
	RefundTxHash  *string    `json:"refund_tx_hash,omitempty"`
	ClaimedAt     *time.Time `json:"claimed_at,omitempty"`
	ExpiresAt     time.Time  `json:"expires_at"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Claimed derives the legacy boolean from the status column.
func (e *EscrowTransaction) Claimed() bool {
	return e.Status == EscrowStatusClaimed
}

// MarshalJSON keeps the legacy claimed flag in the JSON surface for
// clients that predate the status column.
func (e EscrowTransaction) MarshalJSON() ([]byte, error) {
	type alias EscrowTransaction
	return json.Marshal(struct {
		alias
		Claimed bool `json:"claimed"`
	}{alias(e), e.Claimed()})
}
