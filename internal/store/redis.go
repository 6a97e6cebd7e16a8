package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/redis/go-redis/v9"
)

// Redis persists the collection as one JSON value per key.
type Redis[T any] struct {
	rdb *redis.Client
	key string
}

func NewRedis[T any](rdb *redis.Client, key string) *Redis[T] {
	return &Redis[T]{rdb: rdb, key: key}
}

func (r *Redis[T]) Load(ctx context.Context) ([]T, error) {
	b, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []T{}, nil
		}

		return nil, err
	}

	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		log.Printf("malformed collection at key %q, starting empty: %v", r.key, err)

		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (r *Redis[T]) Save(ctx context.Context, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}

	return r.rdb.Set(ctx, r.key, b, 0).Err()
}
