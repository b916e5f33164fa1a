package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateUser inserts a new user row and returns its ID.
func (db *DB) CreateUser(ctx context.Context, name, email, college string, gradYear int) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO users (name, email, college, grad_year)
		 VALUES ($1, $2, $3, NULLIF($4, 0))
		 RETURNING id`,
		name, email, college, gradYear,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create user: %w", err)
	}
	return id, nil
}

// GetUser retrieves a user by ID. Returns nil when not found.
func (db *DB) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	return db.scanUser(db.pool.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(college, ''), COALESCE(grad_year, 0),
		        COALESCE(skills, '{}'), COALESCE(password_hash, ''), created_at, updated_at
		 FROM users WHERE id = $1`, id))
}

// GetUserByEmail retrieves a user by email. Returns nil when not found.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return db.scanUser(db.pool.QueryRow(ctx,
		`SELECT id, name, email, COALESCE(college, ''), COALESCE(grad_year, 0),
		        COALESCE(skills, '{}'), COALESCE(password_hash, ''), created_at, updated_at
		 FROM users WHERE email = $1`, email))
}

// CheckEmailExists reports whether the email is already registered.
func (db *DB) CheckEmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// UpdatePassword stores a new password hash for the user.
func (db *DB) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %s", id)
	}
	return nil
}

// UpdateUser applies a partial profile update. Empty strings and zero values
// leave the corresponding column unchanged.
func (db *DB) UpdateUser(ctx context.Context, id uuid.UUID, name, college string, gradYear int, skills []string) (*User, error) {
	_, err := db.pool.Exec(ctx,
		`UPDATE users SET
		   name = COALESCE(NULLIF($1, ''), name),
		   college = COALESCE(NULLIF($2, ''), college),
		   grad_year = COALESCE(NULLIF($3, 0), grad_year),
		   skills = COALESCE($4, skills),
		   updated_at = NOW()
		 WHERE id = $5`,
		name, college, gradYear, skills, id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return db.GetUser(ctx, id)
}

func (db *DB) scanUser(row pgx.Row) (*User, error) {
	var u User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.College, &u.GradYear,
		&u.Skills, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return &u, nil
}
