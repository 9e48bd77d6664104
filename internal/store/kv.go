// Package store keeps wizard drafts and their durable snapshots.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// KV is the durable key/value primitive snapshots are written to. Calls are
// best effort; callers must tolerate errors.
type KV interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Remove(key string) error
}

// MemoryKV is a process-local KV.
type MemoryKV struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

func (m *MemoryKV) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryKV) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryKV) Remove(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// StorageKV exposes any fiber.Storage as a KV. Entries expire after TTL; zero
// keeps them forever.
type StorageKV struct {
	storage fiber.Storage
	ttl     time.Duration
}

func NewStorageKV(storage fiber.Storage, ttl time.Duration) *StorageKV {
	return &StorageKV{storage: storage, ttl: ttl}
}

var errNilStorage = errors.New("storage not configured")

func (s *StorageKV) Get(key string) (string, bool, error) {
	if s == nil || s.storage == nil {
		return "", false, errNilStorage
	}
	b, err := s.storage.Get(key)
	if err != nil {
		return "", false, err
	}
	if b == nil {
		return "", false, nil
	}
	return string(b), true, nil
}

func (s *StorageKV) Set(key, value string) error {
	if s == nil || s.storage == nil {
		return errNilStorage
	}
	return s.storage.Set(key, []byte(value), s.ttl)
}

func (s *StorageKV) Remove(key string) error {
	if s == nil || s.storage == nil {
		return errNilStorage
	}
	return s.storage.Delete(key)
}
