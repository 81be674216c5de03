package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"solestore/internal/catalog/models"
	"solestore/pkg/platform/sentinel"
)

// PostgresStore persists sneakers in PostgreSQL. Sizes live in a text[]
// column read and written through pq.Array.
type PostgresStore struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

const sneakerColumns = `id, name, brand, price, COALESCE(image_url, ''), COALESCE(description, ''), stock, COALESCE(style, ''), sizes, created_at`

func (s *PostgresStore) List(ctx context.Context) ([]models.Sneaker, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+sneakerColumns+` FROM sneakers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list sneakers: %w", err)
	}
	defer rows.Close()

	var sneakers []models.Sneaker
	for rows.Next() {
		sneaker, err := scanSneaker(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("list sneakers: %w", err)
		}
		sneakers = append(sneakers, sneaker)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list sneakers: %w", err)
	}
	return sneakers, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id int64) (models.Sneaker, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sneakerColumns+` FROM sneakers WHERE id = $1`, id)
	sneaker, err := scanSneaker(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Sneaker{}, fmt.Errorf("find sneaker: %w", sentinel.ErrNotFound)
		}
		return models.Sneaker{}, fmt.Errorf("find sneaker: %w", err)
	}
	return sneaker, nil
}

// Create inserts a sneaker and returns its generated id.
func (s *PostgresStore) Create(ctx context.Context, sneaker models.Sneaker) (int64, error) {
	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO sneakers (name, brand, price, image_url, description, stock, style, sizes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		sneaker.Name, sneaker.Brand, sneaker.Price,
		nullable(sneaker.ImageURL), nullable(sneaker.Description),
		sneaker.Stock, nullable(sneaker.Style), pq.Array(sneaker.Sizes),
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("create sneaker: %w", err)
	}
	return id, nil
}

func (s *PostgresStore) Update(ctx context.Context, sneaker models.Sneaker) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE sneakers
		SET name = $2, brand = $3, price = $4, image_url = $5,
		    description = $6, stock = $7, style = $8, sizes = $9
		WHERE id = $1
	`,
		sneaker.ID, sneaker.Name, sneaker.Brand, sneaker.Price,
		nullable(sneaker.ImageURL), nullable(sneaker.Description),
		sneaker.Stock, nullable(sneaker.Style), pq.Array(sneaker.Sizes),
	)
	if err != nil {
		return fmt.Errorf("update sneaker: %w", err)
	}
	return checkAffected(res, "update sneaker")
}

func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM sneakers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete sneaker: %w", err)
	}
	return checkAffected(res, "delete sneaker")
}

func scanSneaker(scan func(dest ...any) error) (models.Sneaker, error) {
	var sneaker models.Sneaker
	var sizes pq.StringArray
	err := scan(
		&sneaker.ID, &sneaker.Name, &sneaker.Brand, &sneaker.Price,
		&sneaker.ImageURL, &sneaker.Description, &sneaker.Stock,
		&sneaker.Style, &sizes, &sneaker.CreatedAt,
	)
	if err != nil {
		return models.Sneaker{}, err
	}
	sneaker.Sizes = sizes
	return sneaker, nil
}

func checkAffected(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
	}
	return nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
