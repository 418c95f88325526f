package order

import (
	"context"
	"sort"
	"sync"
)

// Repository reads the order history. Orders are returned newest first with
// their items, status and delivery fee resolved.
type Repository interface {
	ListByClient(ctx context.Context, clientID string) ([]Order, error)
}

// InMemoryRepository serves a fixed history, used by tests and local runs.
type InMemoryRepository struct {
	mu       sync.RWMutex
	byClient map[string][]Order
}

func NewInMemoryRepository(seed map[string][]Order) *InMemoryRepository {
	r := &InMemoryRepository{byClient: make(map[string][]Order, len(seed))}
	for clientID, orders := range seed {
		cp := append([]Order{}, orders...)
		sort.SliceStable(cp, func(i, j int) bool { return cp[i].CreatedAt.After(cp[j].CreatedAt) })
		r.byClient[clientID] = cp
	}
	return r
}

func (r *InMemoryRepository) ListByClient(ctx context.Context, clientID string) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Order{}, r.byClient[clientID]...), nil
}
