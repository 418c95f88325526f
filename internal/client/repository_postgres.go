package client

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	getClientQuery = `
		SELECT id, name, email, phone, address, city, state, zip_code, created_at
		FROM clients WHERE id = $1
	`
	updateAddressQuery = `
		UPDATE clients SET address = $2, city = $3, state = $4, zip_code = $5
		WHERE id = $1
		RETURNING id, name, email, phone, address, city, state, zip_code, created_at
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Client, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Client{}, ErrNotFound
	}
	return scanClient(r.db.QueryRowContext(ctx, getClientQuery, id))
}

func (r *PostgresRepository) UpdateAddress(ctx context.Context, id string, addr Address) (Client, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Client{}, ErrNotFound
	}
	return scanClient(r.db.QueryRowContext(ctx, updateAddressQuery, id,
		addr.Address, nullString(addr.City), nullString(addr.State), nullString(addr.ZipCode)))
}

func scanClient(row *sql.Row) (Client, error) {
	var (
		c                                Client
		phone, address, city, state, zip sql.NullString
		createdAt                        sql.NullTime
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Email, &phone, &address, &city, &state, &zip, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Client{}, ErrNotFound
		}
		return Client{}, err
	}
	c.Phone, c.Address, c.City, c.State, c.ZipCode = phone.String, address.String, city.String, state.String, zip.String
	if createdAt.Valid {
		c.CreatedAt = createdAt.Time
	}
	return c, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
