package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	// Password is stored as provided. Known flaw, kept deliberately;
	// hashing belongs to a future auth rework, not the payment engine.
	Password  string    `json:"-"`
	PublicKey string    `json:"public_key"`
	// SecretKey is the cipher-sealed ledger secret. Only the services
	// layer opens it, right before a ledger call.
	SecretKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
