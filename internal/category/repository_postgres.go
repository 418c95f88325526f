package category

import (
	"context"
	"database/sql"
	"errors"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listCategoriesQuery    = `SELECT id, name, created_at FROM categories ORDER BY created_at, name`
	getCategoryByNameQuery = `SELECT id, name, created_at FROM categories WHERE lower(name) = lower($1) ORDER BY created_at LIMIT 1`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Category, error) {
	rows, err := r.db.QueryContext(ctx, listCategoriesQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) GetByName(ctx context.Context, name string) (Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, getCategoryByNameQuery, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Category{}, ErrNotFound
		}
		return Category{}, err
	}
	return c, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCategory(s rowScanner) (Category, error) {
	var (
		c         Category
		createdAt sql.NullTime
	)
	if err := s.Scan(&c.ID, &c.Name, &createdAt); err != nil {
		return Category{}, err
	}
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	return c, nil
}
