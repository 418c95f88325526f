package product

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/sbilus/storefront-backend/internal/stock"
)

var (
	ErrNotFound = errors.New("product not found")
)

// Repository is the read interface of the hosted backend for products.
type Repository interface {
	List(ctx context.Context) ([]Row, error)
	GetByID(ctx context.Context, id string) (Row, error)
	// ListByCategoryName resolves the category name to its id, then filters.
	// An unknown category yields an empty list.
	ListByCategoryName(ctx context.Context, name string) ([]Row, error)
	// Reset replaces all products with the provided list (used for dev / seeding)
	Reset(ctx context.Context, rows []Row) error
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// seeding local data. It also serves as the stock.Repository of local runs, so
// adjustments land on the rows the catalog reads.
type InMemoryRepository struct {
	mu         sync.RWMutex
	storage    []Row
	nextID     int
	defaultQty int
	history    stock.MovementLog
}

func NewInMemoryRepository(seed []Row) *InMemoryRepository {
	r := &InMemoryRepository{nextID: 1, defaultQty: stock.DefaultLabelQuantity}
	r.storage = r.assignIDs(seed)
	return r
}

func (r *InMemoryRepository) assignIDs(rows []Row) []Row {
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if row.ID == "" {
			row.ID = strconv.Itoa(r.nextID)
			r.nextID++
		}
		out = append(out, row)
	}
	return out
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Row, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.storage {
		if p.ID == id {
			return p, nil
		}
	}
	return Row{}, ErrNotFound
}

func (r *InMemoryRepository) ListByCategoryName(ctx context.Context, name string) ([]Row, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Row, 0)
	for _, p := range r.storage {
		if p.CategoryName != nil && strings.EqualFold(*p.CategoryName, name) {
			out = append(out, p)
		}
	}
	return out, nil
}

// Reset replaces the whole in-memory storage with the provided rows.
func (r *InMemoryRepository) Reset(ctx context.Context, rows []Row) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.storage = r.assignIDs(rows)
	return nil
}

// SetDefaultSizeQuantity sets the units each label of a bare sizes list stands
// for when a stock adjustment first rewrites it.
func (r *InMemoryRepository) SetDefaultSizeQuantity(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultQty = n
}

// AdjustStock applies m to the stock column of the product, rewriting it as a
// size->quantity object. It answers false for unknown products and for
// movements that would take the size below zero.
func (r *InMemoryRepository) AdjustStock(ctx context.Context, m stock.Movement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.storage {
		row := &r.storage[i]
		if row.ID != m.ProductID {
			continue
		}
		src := stockSource(*row, r.defaultQty)
		prev := src.Level(m.Size)
		next, ok := stock.Apply(prev, m)
		if !ok {
			return false, nil
		}
		raw, err := json.Marshal(src.WithLevel(m.Size, next))
		if err != nil {
			return false, err
		}
		row.Stock = raw
		row.UpdatedAt = time.Now().UTC()
		r.history.Record(m, prev, next)
		return true, nil
	}
	return false, nil
}

func (r *InMemoryRepository) ListMovements(ctx context.Context, productID string, limit int) ([]stock.MovementRecord, error) {
	return r.history.List(productID, limit), nil
}

var _ stock.Repository = (*InMemoryRepository)(nil)
