package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const (
	defaultKeyPrefix = "storefront:cart"
	maxUpdateRetries = 10
)

// ErrCartContended is returned when an update kept losing the WATCH race.
var ErrCartContended = errors.New("cart is being updated concurrently")

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisRepository keeps each cart as a JSON string under {prefix}:{session}
// with a sliding TTL.
type RedisRepository struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func NewRedisRepository(client *redis.Client, ttl time.Duration) *RedisRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisRepository{client: client, prefix: defaultKeyPrefix, ttl: ttl}
}

func (r *RedisRepository) key(sessionID string) string {
	return fmt.Sprintf("%s:%s", r.prefix, sessionID)
}

func (r *RedisRepository) Get(ctx context.Context, sessionID string) (Cart, error) {
	return r.read(ctx, r.client, sessionID)
}

func (r *RedisRepository) read(ctx context.Context, g stringGetter, sessionID string) (Cart, error) {
	data, err := g.Get(ctx, r.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Cart{SessionID: sessionID, Items: []LineItem{}}, nil
		}
		return Cart{}, fmt.Errorf("failed to load cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal(data, &c); err != nil {
		return Cart{}, fmt.Errorf("failed to decode cart: %w", err)
	}
	c.SessionID = sessionID
	if c.Items == nil {
		c.Items = []LineItem{}
	}
	return c, nil
}

// Update runs fn inside WATCH/MULTI on the cart key and retries when another
// writer changed the key in between.
func (r *RedisRepository) Update(ctx context.Context, sessionID string, fn func(*Cart) error) (Cart, error) {
	key := r.key(sessionID)
	var updated Cart

	txf := func(tx *redis.Tx) error {
		c, err := r.read(ctx, tx, sessionID)
		if err != nil {
			return err
		}
		if err := fn(&c); err != nil {
			return err
		}
		data, err := json.Marshal(c)
		if err != nil {
			return fmt.Errorf("failed to encode cart: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, r.ttl)
			return nil
		})
		if err == nil {
			updated = c
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return Cart{}, err
	}
	return Cart{}, ErrCartContended
}

func (r *RedisRepository) Save(ctx context.Context, c Cart) error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}
	if err := r.client.Set(ctx, r.key(c.SessionID), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}
