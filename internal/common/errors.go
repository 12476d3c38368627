// Package common defines shared constants and sentinel errors used across
// client and server layers of AuthKeeper. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrorAlreadyExists = errors.New("already exists")

	// Business outcomes of the authentication flows. These are routine
	// results, not operational failures, and should not be logged as errors.
	ErrUsernameExists     = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid username/password")
	ErrInactiveUser       = errors.New("user is inactive")

	// Token outcomes. An expired token is deliberately distinguishable from
	// an invalid one: expired means the signature checked out but the token
	// is stale, invalid means garbage or a forged signature.
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")

	// ErrPersistenceFailure indicates the storage gateway is unreachable or
	// misbehaving. This is the only alertable condition in the taxonomy.
	ErrPersistenceFailure = errors.New("persistence failure")

	// Service-level errors (generic/internal flow control).
	ErrorInternal = errors.New("internal error")
)
