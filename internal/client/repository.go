package client

import (
	"context"
	"errors"
	"sync"
)

var ErrNotFound = errors.New("client not found")

type Repository interface {
	GetByID(ctx context.Context, id string) (Client, error)
	UpdateAddress(ctx context.Context, id string, addr Address) (Client, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	clients map[string]Client
}

func NewInMemoryRepository(seed []Client) *InMemoryRepository {
	r := &InMemoryRepository{clients: make(map[string]Client, len(seed))}
	for _, c := range seed {
		r.clients[c.ID] = c
	}
	return r
}

func (r *InMemoryRepository) GetByID(ctx context.Context, id string) (Client, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	return c, nil
}

func (r *InMemoryRepository) UpdateAddress(ctx context.Context, id string, addr Address) (Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.clients[id]
	if !ok {
		return Client{}, ErrNotFound
	}
	c.Address, c.City, c.State, c.ZipCode = addr.Address, addr.City, addr.State, addr.ZipCode
	r.clients[id] = c
	return c, nil
}
