// Package secrets isolates at-rest handling of ledger secrets so that
// encryption can be added without touching the protocol engines. Every
// secret crosses this boundary on its way to or from the store.
package secrets

// Cipher seals a ledger secret for storage and opens it for use.
type Cipher interface {
	Seal(plaintext string) (string, error)
	Open(sealed string) (string, error)
}

// Plaintext stores secrets as-is. This matches the current deployment
// and is a documented flaw; swapping in a real Cipher is the upgrade
// path, not rewriting the services.
type Plaintext struct{}

func NewPlaintext() Plaintext { return Plaintext{} }

func (Plaintext) Seal(plaintext string) (string, error) { return plaintext, nil }

func (Plaintext) Open(sealed string) (string, error) { return sealed, nil }
