package cart

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

const lastStoreKey = "mywabiz_last_store"

// Storage is the key-value persistence behind carts. Implementations must
// tolerate missing keys on Read and Delete.
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Delete(key string) error
}

// ErrNoEntry is returned when a key has no stored value.
var ErrNoEntry = errors.New("cart: no stored entry")

// MemoryStorage keeps entries in a map, for tests and ephemeral sessions.
type MemoryStorage struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{entries: map[string][]byte{}}
}

func (s *MemoryStorage) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, ok := s.entries[key]
	if !ok {
		return nil, ErrNoEntry
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	return out, nil
}

func (s *MemoryStorage) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.entries[key] = cp
	return nil
}

func (s *MemoryStorage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
	return nil
}

// FileStorage persists entries as files in a directory, one per key.
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{dir: dir}, nil
}

func (s *FileStorage) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStorage) Read(key string) ([]byte, error) {
	raw, err := os.ReadFile(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoEntry
	}
	return raw, err
}

func (s *FileStorage) Write(key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FileStorage) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// SaveLastStore records the store slug the merchant worked with most
// recently, for dashboard context switching.
func SaveLastStore(storage Storage, slug string) error {
	return storage.Write(lastStoreKey, []byte(slug))
}

// LastStore returns the most recently recorded store slug, or empty when
// none was saved.
func LastStore(storage Storage) string {
	raw, err := storage.Read(lastStoreKey)
	if err != nil {
		return ""
	}
	return string(raw)
}
