package apperrors

import "errors"

var (
	ErrUserExists            = errors.New("user already exists")
	ErrUserNotFound          = errors.New("user not found")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrAccountNotFound       = errors.New("account not found")
	ErrInsufficientFunds     = errors.New("insufficient funds")
	ErrInvalidAmount         = errors.New("amount must be a positive number")
	ErrSameAccount           = errors.New("source and destination accounts must differ")
	ErrEscrowNotFound        = errors.New("escrow not found")
	ErrKeywordSpaceExhausted = errors.New("could not generate an unused keyword pair")
)
