// Package models defines the persistent records handled by the server.
package models

import "time"

// User is an identity record. ID is a ULID assigned before insertion and
// never changed afterwards; Username is unique across all users.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Username     string
	PasswordHash []byte
	Active       bool
	CreatedAt    time.Time
	LastLoginAt  time.Time
}

// Salt holds the per-user secret material mixed into password derivation.
// Exactly one Salt exists per User for the lifetime of the user's current
// password; it is inserted in the same transaction as its User.
type Salt struct {
	ID        string
	Salt      []byte
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// AccessToken is the transient login result; it is never persisted.
type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// TokenTypeBearer is the only token type this server issues.
const TokenTypeBearer = "Bearer"
