// Package passwords hashes and verifies user passwords with bcrypt.
package passwords

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher hashes passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// Option configures a Hasher.
type Option func(*Hasher)

// WithCost sets the bcrypt cost. Values outside bcrypt's range fall back to bcrypt.DefaultCost.
func WithCost(cost int) Option {
	return func(h *Hasher) {
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			cost = bcrypt.DefaultCost
		}
		h.cost = cost
	}
}

// New creates a Hasher.
func New(opts ...Option) *Hasher {
	h := &Hasher{cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Hash returns a salted bcrypt hash of plaintext.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check reports whether plaintext matches hash. Malformed or empty hashes never match.
func (h *Hasher) Check(hash, plaintext string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
