package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/xid"
	"github.com/tharindu/classtrack/internal/apperror"
	"github.com/tharindu/classtrack/internal/model"
	"github.com/tharindu/classtrack/internal/repository"
)

var _ repository.UserRepository = (*DB)(nil)

// CreateUser inserts a new staff account. A duplicate username (the unique
// index is on lower(username)) comes back as a Conflict.
func (db *DB) CreateUser(ctx context.Context, user *model.User) error {
	user.ID = xid.New().String()

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, user.Role,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		// The driver reports the unique index violation as a plain error;
		// match on the constraint text rather than a driver-specific code.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return apperror.Conflict("Username already exists")
		}
		return fmt.Errorf("sqlite: creating user: %w", err)
	}

	return nil
}

// GetUserByUsername looks an account up case-insensitively — "Admin" and
// "admin" are the same account, matching the registration rule.
func (db *DB) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	var u model.User
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, username, password_hash, role, created_at, updated_at
		 FROM users WHERE lower(username) = lower(?)`,
		username,
	).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("user", username)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", username, err)
	}

	return &u, nil
}
