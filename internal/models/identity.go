package models

import (
	"context"

	"github.com/google/uuid"
)

// Identity is either Anonymous or Identified.
type Identity interface {
	isIdentity()
}

// Anonymous is the identity of a request without a valid session.
type Anonymous struct{}

// Identified is the identity resolved from a valid session.
type Identified struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

func (Anonymous) isIdentity()  {}
func (Identified) isIdentity() {}

type identityKey struct{}

// WithIdentity stores the resolved identity in the context.
func WithIdentity(ctx context.Context, id Identified) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity stored by WithIdentity, or Anonymous.
func IdentityFromContext(ctx context.Context) Identity {
	if id, ok := ctx.Value(identityKey{}).(Identified); ok {
		return id
	}
	return Anonymous{}
}
