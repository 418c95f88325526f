package stock

import (
	"context"
	"sync"
)

// Repository is the write side of the hosted backend: the stock adjustment
// procedure and the movement history it records.
type Repository interface {
	// AdjustStock runs the stock procedure; false means the backend refused it.
	AdjustStock(ctx context.Context, m Movement) (bool, error)
	ListMovements(ctx context.Context, productID string, limit int) ([]MovementRecord, error)
}

// InMemoryRepository mirrors update_product_stock semantics over a plain
// product/size level table.
type InMemoryRepository struct {
	mu      sync.RWMutex
	levels  map[string]map[string]int
	history MovementLog
}

func NewInMemoryRepository(seed map[string]map[string]int) *InMemoryRepository {
	r := &InMemoryRepository{levels: make(map[string]map[string]int, len(seed))}
	for pid, sizes := range seed {
		m := make(map[string]int, len(sizes))
		for size, qty := range sizes {
			m[size] = qty
		}
		r.levels[pid] = m
	}
	return r
}

func (r *InMemoryRepository) AdjustStock(ctx context.Context, m Movement) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sizes, ok := r.levels[m.ProductID]
	if !ok {
		return false, nil
	}
	prev := sizes[m.Size]
	next, ok := Apply(prev, m)
	if !ok {
		return false, nil
	}
	sizes[m.Size] = next
	r.history.Record(m, prev, next)
	return true, nil
}

// ListMovements returns the newest movements first.
func (r *InMemoryRepository) ListMovements(ctx context.Context, productID string, limit int) ([]MovementRecord, error) {
	return r.history.List(productID, limit), nil
}

// Level reports the current units of productID/size.
func (r *InMemoryRepository) Level(productID, size string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.levels[productID][size]
}
