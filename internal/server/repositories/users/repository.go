// Package users implements the persistence gateway for User and Salt
// records. The orchestrator only ever talks to storage through Repository.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/server/models"
)

// Repository is the narrow persistence interface consumed by the
// authentication service.
//
// CreateUserWithSalt inserts both rows on the handle the repository is bound
// to; binding it to a transaction (via dbx.WithTx and the repository
// manager) makes the pair atomic. The storage-level uniqueness constraint on
// username is the correctness mechanism for concurrent signups; the
// UsernameExists pre-check is only an optimization.
type Repository interface {
	UsernameExists(ctx context.Context, username string) (bool, error)
	GetUserWithSalt(ctx context.Context, username string) (*models.User, *models.Salt, error)
	CreateUserWithSalt(ctx context.Context, user *models.User, salt *models.Salt) error
	UpdateLastLogin(ctx context.Context, username string, at time.Time) error
}
