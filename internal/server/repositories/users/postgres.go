package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/dbx"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/jackc/pgx/v5/pgconn"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	query :=
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, username).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *PostgresRepository) GetUserWithSalt(ctx context.Context, username string) (*models.User, *models.Salt, error) {
	query :=
		`SELECT u.id, u.first_name, u.last_name, u.username, u.password_hash,
		        u.active, u.created_at, u.last_login_at,
		        s.id, s.salt, s.user_id, s.created_at, s.updated_at
		 FROM users u
		 JOIN salts s ON s.user_id = u.id
		 WHERE u.username = $1
		 `

	user := &models.User{}
	salt := &models.Salt{}
	var lastName sql.NullString

	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.FirstName, &lastName, &user.Username, &user.PasswordHash,
		&user.Active, &user.CreatedAt, &user.LastLoginAt,
		&salt.ID, &salt.Salt, &salt.UserID, &salt.CreatedAt, &salt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, common.ErrorNotFound
		}
		return nil, nil, fmt.Errorf("db error: %w", err)
	}

	user.LastName = lastName.String
	return user, salt, nil
}

func (r *PostgresRepository) CreateUserWithSalt(ctx context.Context, user *models.User, salt *models.Salt) error {
	userQuery :=
		`INSERT INTO users (id, first_name, last_name, username, password_hash, active, created_at, last_login_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	var lastName sql.NullString
	if user.LastName != "" {
		lastName = sql.NullString{String: user.LastName, Valid: true}
	}

	if _, err := r.db.ExecContext(ctx, userQuery,
		user.ID, user.FirstName, lastName, user.Username, user.PasswordHash,
		user.Active, user.CreatedAt, user.LastLoginAt); err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	saltQuery :=
		`INSERT INTO salts (id, salt, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	if _, err := r.db.ExecContext(ctx, saltQuery,
		salt.ID, salt.Salt, salt.UserID, salt.CreatedAt, salt.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return common.ErrorAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	return nil
}

func (r *PostgresRepository) UpdateLastLogin(ctx context.Context, username string, at time.Time) error {
	query :=
		`UPDATE users SET last_login_at = $2
		 WHERE username = $1
		 `

	res, err := r.db.ExecContext(ctx, query, username, at)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}
	return nil
}

// isUniqueViolation reports whether err is a PostgreSQL unique_violation
// (SQLSTATE 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
