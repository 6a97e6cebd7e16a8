package store

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"path/filepath"
)

// File persists the collection as a JSON array in a single file under
// the data directory, one file per collection key.
type File[T any] struct {
	path string
}

func NewFile[T any](dataDir, key string) *File[T] {
	return &File[T]{path: filepath.Join(dataDir, key+".json")}
}

func (f *File[T]) Load(_ context.Context) ([]T, error) {
	b, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}

		return nil, err
	}

	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		// malformed data is treated as "no data"
		log.Printf("malformed collection at %s, starting empty: %v", f.path, err)

		return []T{}, nil
	}
	if items == nil {
		items = []T{}
	}

	return items, nil
}

func (f *File[T]) Save(_ context.Context, items []T) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}

	// write to a sibling temp file first so a failed write never
	// truncates the previous snapshot
	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}

	return os.Rename(tmp, f.path)
}
