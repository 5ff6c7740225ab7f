package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// ErrEmptyPassword is returned by SetPassword for an empty plaintext.
var ErrEmptyPassword = errors.New("password must not be empty")

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Check(hash, plaintext string) bool
}

// UserDB represents a user record in the database
type UserDB struct {
	UserID       uuid.UUID `json:"id" db:"user_id"`            // Primary key
	Username     string    `json:"username" db:"username"`     // Unique username
	Email        string    `json:"email" db:"email"`           // User email
	PasswordHash string    `json:"-" db:"password_hash"`       // One-way password hash, never plaintext
	Telephone    string    `json:"telephone" db:"telephone"`   // Optional phone number
	Address      string    `json:"address" db:"address"`       // Optional postal address
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // Creation timestamp
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // Last update timestamp
}

// SetPassword replaces PasswordHash with the hash of plaintext.
// On error PasswordHash is left untouched.
func (u *UserDB) SetPassword(h PasswordHasher, plaintext string) error {
	if plaintext == "" {
		return ErrEmptyPassword
	}
	hash, err := h.Hash(plaintext)
	if err != nil {
		return err
	}
	u.PasswordHash = hash
	return nil
}

// CheckPassword reports whether plaintext matches PasswordHash.
// It is always false while no password has been set.
func (u *UserDB) CheckPassword(h PasswordHasher, plaintext string) bool {
	if u == nil || u.PasswordHash == "" {
		return false
	}
	return h.Check(u.PasswordHash, plaintext)
}

// Identity returns the identified view of the user.
func (u *UserDB) Identity() Identified {
	return Identified{ID: u.UserID, Username: u.Username, Email: u.Email}
}
