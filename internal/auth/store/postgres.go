package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"solestore/internal/auth/models"
	"solestore/pkg/platform/sentinel"
)

// PostgresStore persists users in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed user store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Create inserts a new user. Returns sentinel.ErrConflict when the email is
// already registered.
func (s *PostgresStore) Create(ctx context.Context, user models.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, first_name, last_name, phone, is_admin, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash,
		user.FirstName, user.LastName, nullable(user.Phone),
		user.IsAdmin, user.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return fmt.Errorf("create user: %w", sentinel.ErrConflict)
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByEmail fetches a user by email. Returns sentinel.ErrNotFound when no
// such user exists.
func (s *PostgresStore) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, is_admin, created_at
		FROM users WHERE email = $1
	`, email)
	return scanUser(row)
}

// FindByID fetches a user by id. Returns sentinel.ErrNotFound when no such
// user exists.
func (s *PostgresStore) FindByID(ctx context.Context, id uuid.UUID) (models.User, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, first_name, last_name, phone, is_admin, created_at
		FROM users WHERE id = $1
	`, id)
	return scanUser(row)
}

// UpdateProfile replaces the mutable profile fields of a user.
func (s *PostgresStore) UpdateProfile(ctx context.Context, id uuid.UUID, firstName, lastName, phone string) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, phone = $4 WHERE id = $1
	`, id, firstName, lastName, nullable(phone))
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("update profile: %w", sentinel.ErrNotFound)
	}
	return nil
}

// HasAdmin reports whether any administrator account exists.
func (s *PostgresStore) HasAdmin(ctx context.Context) (bool, error) {
	var id uuid.UUID
	err := s.db.QueryRowContext(ctx, `SELECT id FROM users WHERE is_admin LIMIT 1`).Scan(&id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check admin: %w", err)
	}
	return true, nil
}

func scanUser(row *sql.Row) (models.User, error) {
	var u models.User
	var phone sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &phone, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, fmt.Errorf("find user: %w", sentinel.ErrNotFound)
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	u.Phone = phone.String
	return u, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
