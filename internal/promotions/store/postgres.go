package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"solestore/internal/promotions/models"
)

// PostgresStore persists promotions in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// ListActive returns promotions still valid on the given day, newest first.
// Expiry filtering happens in SQL so the listing never races a cleanup job.
func (s *PostgresStore) ListActive(ctx context.Context, now time.Time) ([]models.Promotion, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, description, discount_percentage, valid_until, COALESCE(image_url, ''), created_at
		FROM promotions
		WHERE valid_until >= $1::date
		ORDER BY created_at DESC
	`, now)
	if err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	defer rows.Close()

	var promotions []models.Promotion
	for rows.Next() {
		var p models.Promotion
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.DiscountPercentage, &p.ValidUntil, &p.ImageURL, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("list promotions: %w", err)
		}
		promotions = append(promotions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list promotions: %w", err)
	}
	return promotions, nil
}

func (s *PostgresStore) Create(ctx context.Context, p models.Promotion) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO promotions (id, title, description, discount_percentage, valid_until, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, p.ID, p.Title, p.Description, p.DiscountPercentage, p.ValidUntil,
		sql.NullString{String: p.ImageURL, Valid: p.ImageURL != ""}, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("create promotion: %w", err)
	}
	return nil
}
