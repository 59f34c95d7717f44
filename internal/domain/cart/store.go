// internal/domain/cart/store.go
package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store bridges the cart's line items to a durable slot so cart contents
// survive a reload on the same device. Only the item sequence is stored;
// derived totals are recomputed on every load.
type Store interface {
	Load(ctx context.Context) ([]LineItem, error)
	Save(ctx context.Context, items []LineItem) error
	Delete(ctx context.Context) error
}

// RedisStore persists a single cart under one fixed key
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a store bound to one session's durable slot
func NewRedisStore(client *redis.Client, keyPrefix, sessionID string, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("%s:%s", keyPrefix, sessionID),
		ttl:    ttl,
	}
}

// Key returns the durable slot key this store writes to
func (s *RedisStore) Key() string {
	return s.key
}

// Load reads the persisted item sequence. A missing key yields an empty
// sequence; decode failures are returned so the caller can recover.
func (s *RedisStore) Load(ctx context.Context) ([]LineItem, error) {
	data, err := s.client.Get(ctx, s.key).Result()
	if err == redis.Nil {
		return []LineItem{}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to read cart slot %s: %w", s.key, err)
	}

	items, err := decodeItems([]byte(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cart slot %s: %w", s.key, err)
	}
	return items, nil
}

// Save writes the full item sequence (write-through on every mutation)
func (s *RedisStore) Save(ctx context.Context, items []LineItem) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("failed to encode cart items: %w", err)
	}

	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write cart slot %s: %w", s.key, err)
	}
	return nil
}

// Delete removes the durable slot
func (s *RedisStore) Delete(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("failed to delete cart slot %s: %w", s.key, err)
	}
	return nil
}

// decodeItems parses a persisted item sequence. Unknown fields in the
// payload are ignored to tolerate schema drift between releases; lines
// without a product id or a positive quantity are dropped.
func decodeItems(data []byte) ([]LineItem, error) {
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, err
	}

	result := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.ProductID == "" || item.Quantity < 1 {
			continue
		}
		result = append(result, item)
	}
	return result, nil
}
