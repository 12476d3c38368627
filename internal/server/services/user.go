// Package services contains server-side business logic. This file implements
// UserService, which orchestrates the signup, login, introspection, and
// token-renewal workflows over the hasher, the token service, and the
// persistence gateway. It is the only layer that maps low-level failures to
// user-visible outcomes.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/cryptox"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/idx"
	"github.com/dmitrijs2005/authkeeper/internal/server/auth"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/dmitrijs2005/authkeeper/internal/server/repositories/repomanager"
)

// timestampLayout is used when introspection results are rendered for humans.
const timestampLayout = "2006-01-02 15:04:05 MST"

// Introspection is the result of a successful WhoAmI call.
type Introspection struct {
	Username string `json:"username"`
	Issued   string `json:"issued"`
	Expiry   string `json:"expiry"`
}

// UserService provides the authentication workflows:
//   - Register: create a user together with its password salt
//   - Login: verify credentials and mint a bearer token
//   - WhoAmI: introspect a bearer token
//   - Renew: exchange a valid token for a fresh one
//
// It holds no cross-request state; everything lives in the gateway and in
// the immutable configuration captured at construction.
type UserService struct {
	db     *sql.DB
	repos  repomanager.RepositoryManager
	hasher *cryptox.Hasher
	tokens *auth.TokenService
}

// NewUserService constructs a UserService from its collaborators.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher *cryptox.Hasher, tokens *auth.TokenService) *UserService {
	return &UserService{db: db, repos: m, hasher: hasher, tokens: tokens}
}

// Register creates a new user. The User and its Salt are inserted in a
// single transaction: either both rows exist afterwards or neither does.
// The username pre-check is an optimization only; the unique constraint in
// storage is what makes concurrent signups safe, so a constraint conflict
// surfaces as ErrUsernameExists too.
func (s *UserService) Register(ctx context.Context, firstName, lastName, username, password string) (string, error) {
	repo := s.repos.Users(s.db)

	exists, err := repo.UsernameExists(ctx, username)
	if err != nil {
		return "", fmt.Errorf("%w: checking username: %v", common.ErrPersistenceFailure, err)
	}
	if exists {
		return "", common.ErrUsernameExists
	}

	hash, salt, err := s.hasher.Derive(password, nil)
	if err != nil {
		return "", fmt.Errorf("%w: deriving password hash: %v", common.ErrorInternal, err)
	}

	userID, err := idx.NewID()
	if err != nil {
		return "", fmt.Errorf("%w: generating user id: %v", common.ErrorInternal, err)
	}
	saltID, err := idx.NewID()
	if err != nil {
		return "", fmt.Errorf("%w: generating salt id: %v", common.ErrorInternal, err)
	}

	now := time.Now().UTC()

	user := &models.User{
		ID:           userID,
		FirstName:    firstName,
		LastName:     lastName,
		Username:     username,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		LastLoginAt:  now,
	}
	saltRecord := &models.Salt{
		ID:        saltID,
		Salt:      salt,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return s.repos.Users(tx).CreateUserWithSalt(ctx, user, saltRecord)
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return "", common.ErrUsernameExists
		}
		return "", fmt.Errorf("%w: creating user: %v", common.ErrPersistenceFailure, err)
	}

	return username, nil
}

// Login verifies the credentials and returns a bearer token. An unknown
// username and a wrong password produce the identical ErrInvalidCredentials
// outcome so usernames cannot be enumerated. The active flag is checked only
// after the password verified, and the login timestamp is recorded before
// the token is issued.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.AccessToken, error) {
	repo := s.repos.Users(s.db)

	user, salt, err := repo.GetUserWithSalt(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: fetching user: %v", common.ErrPersistenceFailure, err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash, salt.Salt)
	if err != nil {
		return nil, fmt.Errorf("%w: verifying password: %v", common.ErrorInternal, err)
	}
	if !ok {
		return nil, common.ErrInvalidCredentials
	}

	if !user.Active {
		return nil, common.ErrInactiveUser
	}

	if err := repo.UpdateLastLogin(ctx, username, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("%w: recording login: %v", common.ErrPersistenceFailure, err)
	}

	token, err := s.tokens.Issue(username)
	if err != nil {
		return nil, fmt.Errorf("%w: issuing token: %v", common.ErrorInternal, err)
	}

	return &models.AccessToken{AccessToken: token, TokenType: models.TokenTypeBearer}, nil
}

// WhoAmI validates a bearer token and returns the subject together with
// human-readable issue and expiry timestamps. Invalid and expired tokens
// remain distinguishable outcomes.
func (s *UserService) WhoAmI(ctx context.Context, token string) (*Introspection, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err
	}

	return &Introspection{
		Username: claims.Subject,
		Issued:   claims.IssuedAt.UTC().Format(timestampLayout),
		Expiry:   claims.ExpiresAt.UTC().Format(timestampLayout),
	}, nil
}

// Renew validates the given token and issues a fresh one for the same
// subject with the configured lifetime. Failure outcomes are those of WhoAmI.
func (s *UserService) Renew(ctx context.Context, token string) (*models.AccessToken, error) {
	fresh, err := s.tokens.Renew(token)
	if err != nil {
		return nil, err
	}
	return &models.AccessToken{AccessToken: fresh, TokenType: models.TokenTypeBearer}, nil
}
