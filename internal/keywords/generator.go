// Package keywords produces the human-shareable claim tokens used by the
// escrow hand-off: two words joined by a dash, e.g. "amber-falcon".
package keywords

import (
	"crypto/rand"
	"math/big"
	"strings"
)

type Generator struct {
	words []string
}

func NewGenerator() *Generator {
	return &Generator{words: vocabulary}
}

// Pair returns a fresh two-word token. Tokens are not globally unique;
// callers that need uniqueness among live escrows must check and retry.
func (g *Generator) Pair() string {
	return g.word() + "-" + g.word()
}

// VocabularySize reports the number of distinct words a token draws from.
func (g *Generator) VocabularySize() int {
	return len(g.words)
}

func (g *Generator) word() string {
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(g.words))))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is broken,
		// at which point nothing in this process is trustworthy.
		panic(err)
	}
	return g.words[n.Int64()]
}

// IsWellFormed reports whether s looks like a token this generator could
// have produced. Used for request validation before hitting the store.
func IsWellFormed(s string) bool {
	parts := strings.Split(s, "-")
	if len(parts) != 2 {
		return false
	}
	for _, p := range parts {
		if p == "" {
			return false
		}
		for _, r := range p {
			if r < 'a' || r > 'z' {
				return false
			}
		}
	}
	return true
}
