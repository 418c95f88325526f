package cart

import (
	"context"
	"sync"
	"time"
)

// Repository stores carts by session id. A missing cart reads as empty.
type Repository interface {
	Get(ctx context.Context, sessionID string) (Cart, error)
	Save(ctx context.Context, c Cart) error
	Delete(ctx context.Context, sessionID string) error
	// Update applies fn to the session's cart and stores the result as one
	// step, so concurrent updates of a session never drop each other. An error
	// from fn is returned as is and leaves the stored cart unchanged.
	Update(ctx context.Context, sessionID string, fn func(*Cart) error) (Cart, error)
}

type entry struct {
	cart      Cart
	expiresAt time.Time
}

// InMemoryRepository keeps carts in process memory. Entries older than ttl
// are dropped on access; ttl <= 0 keeps them forever.
type InMemoryRepository struct {
	mu    sync.RWMutex
	carts map[string]entry
	ttl   time.Duration
	now   func() time.Time
}

func NewInMemoryRepository(ttl time.Duration) *InMemoryRepository {
	return &InMemoryRepository{carts: make(map[string]entry), ttl: ttl, now: time.Now}
}

func (r *InMemoryRepository) Get(ctx context.Context, sessionID string) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load(sessionID), nil
}

func (r *InMemoryRepository) Save(ctx context.Context, c Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.store(c)
	return nil
}

func (r *InMemoryRepository) Update(ctx context.Context, sessionID string, fn func(*Cart) error) (Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := r.load(sessionID)
	if err := fn(&c); err != nil {
		return Cart{}, err
	}
	r.store(c)
	return c, nil
}

// load must be called with r.mu held for writing.
func (r *InMemoryRepository) load(sessionID string) Cart {
	e, ok := r.carts[sessionID]
	if !ok {
		return Cart{SessionID: sessionID, Items: []LineItem{}}
	}
	if r.ttl > 0 && r.now().After(e.expiresAt) {
		delete(r.carts, sessionID)
		return Cart{SessionID: sessionID, Items: []LineItem{}}
	}

	c := e.cart
	c.Items = append([]LineItem{}, e.cart.Items...)
	return c
}

func (r *InMemoryRepository) store(c Cart) {
	stored := c
	stored.Items = append([]LineItem{}, c.Items...)
	r.carts[c.SessionID] = entry{cart: stored, expiresAt: r.now().Add(r.ttl)}
}

func (r *InMemoryRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, sessionID)
	return nil
}
