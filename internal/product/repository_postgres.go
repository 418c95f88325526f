package product

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	selectProductColumns = `
		SELECT p.id, p.name, p.description, p.price, p.promotional_price, p.images, p.sizes,
		       p.category_id, c.name, p.is_new, p.stock, p.weight, p.height, p.width, p.length,
		       p.created_at, p.updated_at
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
	`
	listProductsQuery           = selectProductColumns + ` ORDER BY p.created_at DESC, p.id`
	getProductByIDQuery         = selectProductColumns + ` WHERE p.id = $1`
	listProductsByCategoryQuery = selectProductColumns + ` WHERE p.category_id = $1 ORDER BY p.created_at DESC, p.id`

	categoryIDByNameQuery = `SELECT id FROM categories WHERE lower(name) = lower($1) ORDER BY created_at LIMIT 1`
	insertCategoryQuery   = `INSERT INTO categories (name) VALUES ($1) RETURNING id`

	insertProductQuery = `
		INSERT INTO products (name, description, price, promotional_price, images, sizes, category_id, is_new, stock,
		                      weight, height, width, length)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		RETURNING id
	`
	deleteProductsQuery = `DELETE FROM products`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]Row, error) {
	return r.query(ctx, listProductsQuery)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (Row, error) {
	// product ids are uuids in the hosted schema; anything else cannot exist
	if _, err := uuid.Parse(id); err != nil {
		return Row{}, ErrNotFound
	}
	row, err := scanRow(r.db.QueryRowContext(ctx, getProductByIDQuery, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Row{}, ErrNotFound
		}
		return Row{}, err
	}
	return row, nil
}

func (r *PostgresRepository) ListByCategoryName(ctx context.Context, name string) ([]Row, error) {
	var categoryID string
	if err := r.db.QueryRowContext(ctx, categoryIDByNameQuery, name).Scan(&categoryID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []Row{}, nil
		}
		return nil, err
	}
	return r.query(ctx, listProductsByCategoryQuery, categoryID)
}

// Reset deletes all products and inserts the provided list in a single
// transaction. Categories referenced only by name are created when missing.
func (r *PostgresRepository) Reset(ctx context.Context, rows []Row) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, deleteProductsQuery); err != nil {
		return err
	}

	for _, p := range rows {
		categoryID := p.CategoryID
		if categoryID == nil && p.CategoryName != nil {
			id, err := ensureCategory(ctx, tx, *p.CategoryName)
			if err != nil {
				return err
			}
			categoryID = &id
		}

		var id string
		err := tx.QueryRowContext(ctx, insertProductQuery,
			p.Name,
			p.Description,
			p.Price,
			nullDecimal(p.PromotionalPrice),
			pq.Array(p.Images),
			pq.Array(p.Sizes),
			categoryID,
			p.IsNew,
			nullJSON(p.Stock),
			nullDecimal(p.Weight),
			nullDecimal(p.Height),
			nullDecimal(p.Width),
			nullDecimal(p.Length),
		).Scan(&id)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func ensureCategory(ctx context.Context, tx *sql.Tx, name string) (string, error) {
	var id string
	err := tx.QueryRowContext(ctx, categoryIDByNameQuery, name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", err
	}
	if err := tx.QueryRowContext(ctx, insertCategoryQuery, name).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *PostgresRepository) query(ctx context.Context, q string, args ...any) ([]Row, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Row, 0)
	for rows.Next() {
		p, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(scanner rowScanner) (Row, error) {
	var (
		r            Row
		description  sql.NullString
		promo        decimal.NullDecimal
		images       pq.StringArray
		sizes        pq.StringArray
		categoryID   sql.NullString
		categoryName sql.NullString
		isNew        sql.NullBool
		stockJSON    []byte
		dimensions   [4]decimal.NullDecimal
		createdAt    sql.NullTime
		updatedAt    sql.NullTime
	)
	if err := scanner.Scan(
		&r.ID,
		&r.Name,
		&description,
		&r.Price,
		&promo,
		&images,
		&sizes,
		&categoryID,
		&categoryName,
		&isNew,
		&stockJSON,
		&dimensions[0],
		&dimensions[1],
		&dimensions[2],
		&dimensions[3],
		&createdAt,
		&updatedAt,
	); err != nil {
		return Row{}, err
	}

	if description.Valid {
		r.Description = &description.String
	}
	if promo.Valid {
		r.PromotionalPrice = &promo.Decimal
	}
	r.Images = []string(images)
	if sizes != nil {
		r.Sizes = []string(sizes)
	}
	if categoryID.Valid {
		r.CategoryID = &categoryID.String
	}
	if categoryName.Valid {
		r.CategoryName = &categoryName.String
	}
	if isNew.Valid {
		r.IsNew = &isNew.Bool
	}
	if len(stockJSON) > 0 {
		r.Stock = append([]byte(nil), stockJSON...)
	}
	for i, dst := range []**decimal.Decimal{&r.Weight, &r.Height, &r.Width, &r.Length} {
		if dimensions[i].Valid {
			d := dimensions[i].Decimal
			*dst = &d
		}
	}
	if createdAt.Valid {
		r.CreatedAt = createdAt.Time
	}
	if updatedAt.Valid {
		r.UpdatedAt = updatedAt.Time
	}
	return r, nil
}

func nullDecimal(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}

func nullJSON(raw []byte) any {
	if len(raw) == 0 {
		return nil
	}
	return string(raw)
}
