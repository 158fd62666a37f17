// Package storage implements the flat-file record store. Each named
// collection is a pretty-printed JSON array in its own file under the data
// directory, loaded fully into memory per operation and rewritten in full
// after mutation.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"todo-service/common"
)

// Store manages the JSON collections under a single data directory. Every
// load-mutate-save cycle for a collection runs under that collection's
// mutex, so concurrent requests cannot silently drop each other's writes.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the data directory if needed and returns a Store rooted there.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, errors.New("storage: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", common.ErrStorage, err)
	}
	return &Store{dir: dir, locks: make(map[string]*sync.Mutex)}, nil
}

// Dir returns the data directory the store writes to.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(collection string) string {
	return filepath.Join(s.dir, collection+".json")
}

// lock returns the mutex guarding a collection, creating it on first use.
func (s *Store) lock(collection string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[collection]
	if !ok {
		m = &sync.Mutex{}
		s.locks[collection] = m
	}
	return m
}

// Load reads a collection. A missing file is initialized to an empty array
// and persisted before returning, so the backing file always exists after
// first access. Corrupt content is reported, never repaired.
func Load[T any](s *Store, collection string) ([]T, error) {
	mu := s.lock(collection)
	mu.Lock()
	defer mu.Unlock()
	return load[T](s, collection)
}

// Save overwrites a collection with the given records. Last writer wins;
// there is no merge.
func Save[T any](s *Store, collection string, records []T) error {
	mu := s.lock(collection)
	mu.Lock()
	defer mu.Unlock()
	return save(s, collection, records)
}

// Update runs a load-mutate-save cycle under the collection mutex. The
// records returned by fn replace the collection; an error from fn aborts
// without writing.
func Update[T any](s *Store, collection string, fn func(records []T) ([]T, error)) error {
	mu := s.lock(collection)
	mu.Lock()
	defer mu.Unlock()

	records, err := load[T](s, collection)
	if err != nil {
		return err
	}
	updated, err := fn(records)
	if err != nil {
		return err
	}
	return save(s, collection, updated)
}

func load[T any](s *Store, collection string) ([]T, error) {
	data, err := os.ReadFile(s.path(collection))
	if errors.Is(err, fs.ErrNotExist) {
		if err := save(s, collection, []T{}); err != nil {
			return nil, err
		}
		return []T{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", common.ErrStorage, collection, err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", common.ErrStorage, collection, err)
	}
	return records, nil
}

func save[T any](s *Store, collection string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encoding %s: %v", common.ErrStorage, collection, err)
	}
	if err := os.WriteFile(s.path(collection), data, 0o644); err != nil {
		return fmt.Errorf("%w: writing %s: %v", common.ErrStorage, collection, err)
	}
	return nil
}
