package dto

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EscrowInitiateRequest struct {
	UserID string  `json:"userId"`
	Amount float64 `json:"amount"`
}

type EscrowClaimRequest struct {
	UserID      string `json:"userId"`
	KeywordPair string `json:"keywordPair"`
}

type DepositRequest struct {
	Amount float64 `json:"amount"`
}

type TransferRequest struct {
	SourceID      string  `json:"sourceId"`
	DestinationID string  `json:"destinationId"`
	Amount        float64 `json:"amount"`
	Memo          *string `json:"memo,omitempty"`
}

// SendRequest is the legacy /send shape kept for older clients: the
// destination is named by its key rather than sourceId/destinationId.
type SendRequest struct {
	UserID         string  `json:"userId"`
	DestinationKey string  `json:"destinationKey"`
	Amount         float64 `json:"amount"`
	Memo           *string `json:"memo,omitempty"`
}
