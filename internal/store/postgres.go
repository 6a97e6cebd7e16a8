package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const initSQL = `
	CREATE TABLE IF NOT EXISTS collections (
		name       text PRIMARY KEY,
		doc        jsonb NOT NULL,
		updated_at timestamptz NOT NULL DEFAULT now()
	)
`

// Postgres persists the collection as a single jsonb row per key. The
// whole array is upserted on every save, matching the write-through,
// last-write-wins contract of the other backends.
type Postgres[T any] struct {
	pool *pgxpool.Pool
	key  string
}

func NewPostgres[T any](ctx context.Context, pool *pgxpool.Pool, key string) (*Postgres[T], error) {
	if _, err := pool.Exec(ctx, initSQL); err != nil {
		return nil, err
	}

	return &Postgres[T]{pool: pool, key: key}, nil
}

func (p *Postgres[T]) Load(ctx context.Context) ([]T, error) {
	var b []byte
	err := p.pool.QueryRow(ctx,
		`SELECT doc FROM collections WHERE name = $1`, p.key,
	).Scan(&b)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return []T{}, nil
		}

		return nil, err
	}

	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		log.Printf("malformed collection %q, starting empty: %v", p.key, err)

		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (p *Postgres[T]) Save(ctx context.Context, items []T) error {
	b, err := json.Marshal(items)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO collections (name, doc)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET doc = EXCLUDED.doc, updated_at = now()
	`, p.key, b)

	return err
}
