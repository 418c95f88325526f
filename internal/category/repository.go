package category

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
)

var ErrNotFound = errors.New("category not found")

// Repository provides access to category rows.
type Repository interface {
	List(ctx context.Context) ([]Category, error)
	GetByName(ctx context.Context, name string) (Category, error)
}

type InMemoryRepository struct {
	mu      sync.RWMutex
	storage []Category
}

// NewInMemoryRepository keeps the seed order; entries without an id get a
// sequential one.
func NewInMemoryRepository(seed []Category) *InMemoryRepository {
	r := &InMemoryRepository{storage: make([]Category, 0, len(seed))}
	for i, c := range seed {
		if c.ID == "" {
			c.ID = strconv.Itoa(i + 1)
		}
		r.storage = append(r.storage, c)
	}
	return r
}

func (r *InMemoryRepository) List(ctx context.Context) ([]Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Category, len(r.storage))
	copy(out, r.storage)
	return out, nil
}

func (r *InMemoryRepository) GetByName(ctx context.Context, name string) (Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, c := range r.storage {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, nil
		}
	}
	return Category{}, ErrNotFound
}
