package stock

import (
	"context"
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	adjustStockQuery = `SELECT update_product_stock($1, $2, $3, $4, $5)`

	listMovementsQuery = `
		SELECT id, product_id, size, movement_type, quantity, previous_stock, new_stock, reason, created_at
		FROM stock_movements
		WHERE product_id = $1
		ORDER BY created_at DESC NULLS LAST
		LIMIT $2
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) AdjustStock(ctx context.Context, m Movement) (bool, error) {
	var reason sql.NullString
	if m.Reason != nil {
		reason = sql.NullString{String: *m.Reason, Valid: true}
	}
	var ok sql.NullBool
	err := r.db.QueryRowContext(ctx, adjustStockQuery, m.ProductID, m.Size, m.Quantity, string(m.Type), reason).Scan(&ok)
	if err != nil {
		return false, err
	}
	return ok.Valid && ok.Bool, nil
}

func (r *PostgresRepository) ListMovements(ctx context.Context, productID string, limit int) ([]MovementRecord, error) {
	rows, err := r.db.QueryContext(ctx, listMovementsQuery, productID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]MovementRecord, 0)
	for rows.Next() {
		var (
			rec       MovementRecord
			pid       sql.NullString
			mtype     string
			reason    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&rec.ID, &pid, &rec.Size, &mtype, &rec.Quantity, &rec.PreviousStock, &rec.NewStock, &reason, &createdAt); err != nil {
			return nil, err
		}
		rec.ProductID = pid.String
		rec.MovementType = MovementType(mtype)
		if reason.Valid {
			rec.Reason = &reason.String
		}
		if createdAt.Valid {
			t := createdAt.Time.UTC()
			rec.CreatedAt = &t
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

var _ Repository = (*PostgresRepository)(nil)
