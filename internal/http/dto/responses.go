package dto

import "time"

// Every body carries a status discriminator: "success" or "error".

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type RegisterResponse struct {
	Status         string  `json:"status"`
	UserID         string  `json:"userId"`
	PublicKey      string  `json:"publicKey"`
	StartingNative float64 `json:"startingBalance"`
}

type LoginResponse struct {
	Status    string `json:"status"`
	Token     string `json:"token"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	PublicKey string `json:"publicKey"`
}

type WalletResponse struct {
	Status    string `json:"status"`
	UserID    string `json:"userId"`
	Username  string `json:"username"`
	PublicKey string `json:"publicKey"`
}

type BalanceResponse struct {
	Status    string  `json:"status"`
	PublicKey string  `json:"publicKey"`
	Native    float64 `json:"native"`
}

type EscrowInitiateResponse struct {
	Status          string    `json:"status"`
	KeywordPair     string    `json:"keywordPair"`
	EscrowPublicKey string    `json:"escrowPublicKey"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

type EscrowClaimResponse struct {
	Status string `json:"status"`
	Hash   string `json:"hash"`
}

type AccountResponse struct {
	Status  string  `json:"status"`
	ID      string  `json:"id"`
	Balance float64 `json:"balance"`
}

type TransferResponse struct {
	Status             string  `json:"status"`
	TransactionID      string  `json:"transactionId"`
	SourceBalance      float64 `json:"sourceBalance"`
	DestinationBalance float64 `json:"destinationBalance"`
}
