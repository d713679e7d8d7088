package cart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// ErrNotFound indicates the storage slot does not exist.
var ErrNotFound = errors.New("cart storage: not found")

// Storage abstracts the byte slot the cart collection persists into, so the
// store is testable without a real backend. Implementations must be safe for
// concurrent use; read-modify-write sequences across callers are still not
// atomic (an accepted lost-update race, see Store).
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
	Delete(key string) error
}

// MemoryStorage keeps slots in process memory. Used in tests and as a
// fallback when no cart directory is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStorage constructs an empty in-memory storage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{slots: make(map[string][]byte)}
}

// Read returns the slot contents or ErrNotFound.
func (m *MemoryStorage) Read(key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.slots[key]
	if !ok {
		return nil, ErrNotFound
	}
	dup := make([]byte, len(data))
	copy(dup, data)
	return dup, nil
}

// Write replaces the slot contents.
func (m *MemoryStorage) Write(key string, data []byte) error {
	dup := make([]byte, len(data))
	copy(dup, data)
	m.mu.Lock()
	m.slots[key] = dup
	m.mu.Unlock()
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (m *MemoryStorage) Delete(key string) error {
	m.mu.Lock()
	delete(m.slots, key)
	m.mu.Unlock()
	return nil
}

// FileStorage persists each slot as a JSON file under a directory, the
// server-side analogue of a browser's single named storage slot.
type FileStorage struct {
	dir string
	mu  sync.Mutex
}

// NewFileStorage creates the backing directory when missing.
func NewFileStorage(dir string) (*FileStorage, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, errors.New("cart storage: directory is required")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("cart storage: create dir: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Read returns the slot contents or ErrNotFound.
func (f *FileStorage) Read(key string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cart storage: read %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the slot contents.
func (f *FileStorage) Write(key string, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := os.WriteFile(f.path(key), data, 0o600); err != nil {
		return fmt.Errorf("cart storage: write %s: %w", key, err)
	}
	return nil
}

// Delete removes the slot. Deleting an absent slot is not an error.
func (f *FileStorage) Delete(key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("cart storage: delete %s: %w", key, err)
	}
	return nil
}

func (f *FileStorage) path(key string) string {
	return filepath.Join(f.dir, sanitizeKey(key)+".json")
}

func sanitizeKey(key string) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('-')
		}
	}
	if b.Len() == 0 {
		return "default"
	}
	return b.String()
}
