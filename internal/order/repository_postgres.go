package order

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

type PostgresRepository struct {
	db *sql.DB
}

const (
	listOrdersQuery = `
		SELECT o.id, o.order_number, o.total_amount, o.status, o.created_at, COALESCE(c.address, '')
		FROM orders o
		JOIN clients c ON c.id = o.client_id
		WHERE o.client_id = $1
		ORDER BY o.created_at DESC
	`
	listItemsQuery = `
		SELECT i.order_id, i.product_id, COALESCE(p.name, ''), i.size, i.quantity, i.unit_price, i.total_price
		FROM order_items i
		LEFT JOIN products p ON p.id = i.product_id
		WHERE i.order_id = ANY($1::uuid[])
		ORDER BY i.order_id, i.ctid
	`
)

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) ListByClient(ctx context.Context, clientID string) ([]Order, error) {
	if _, err := uuid.Parse(clientID); err != nil {
		return []Order{}, nil
	}

	rows, err := r.db.QueryContext(ctx, listOrdersQuery, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	ids := make([]string, 0)
	for rows.Next() {
		var (
			o         Order
			status    sql.NullString
			createdAt sql.NullTime
		)
		if err := rows.Scan(&o.ID, &o.Number, &o.Total, &status, &createdAt, &o.Address); err != nil {
			return nil, err
		}
		var raw *string
		if status.Valid {
			raw = &status.String
		}
		o.Status = ParseStatus(raw)
		o.StatusLabel = o.Status.Label()
		if createdAt.Valid {
			o.CreatedAt = createdAt.Time
		}
		o.Items = []Item{}
		orders = append(orders, o)
		ids = append(ids, o.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return orders, nil
	}

	items, err := r.itemsByOrder(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		if its, ok := items[orders[i].ID]; ok {
			orders[i].Items = its
		}
		orders[i].DeliveryFee = DeliveryFee(orders[i].Total, orders[i].Items)
	}
	return orders, nil
}

func (r *PostgresRepository) itemsByOrder(ctx context.Context, ids []string) (map[string][]Item, error) {
	rows, err := r.db.QueryContext(ctx, listItemsQuery, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[string][]Item, len(ids))
	for rows.Next() {
		var (
			orderID   string
			it        Item
			unitPrice decimal.Decimal
			total     decimal.Decimal
		)
		if err := rows.Scan(&orderID, &it.ProductID, &it.ProductName, &it.Size, &it.Quantity, &unitPrice, &total); err != nil {
			return nil, err
		}
		it.UnitPrice, it.TotalPrice = unitPrice, total
		out[orderID] = append(out[orderID], it)
	}
	return out, rows.Err()
}
