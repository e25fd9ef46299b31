// internal/infrastructure/storage/storage.go
package storage

import (
	"context"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/store"
)

// MemoryPersister keeps records in process memory
type MemoryPersister struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemoryPersister creates an empty in-memory persister
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{records: make(map[string][]byte)}
}

// Load returns the record stored under key
func (m *MemoryPersister) Load(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.records[key]
	if !ok {
		return nil, store.ErrRecordNotFound
	}
	return append([]byte(nil), data...), nil
}

// Save replaces the record stored under key
func (m *MemoryPersister) Save(ctx context.Context, key string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.records[key] = append([]byte(nil), data...)
	return nil
}

// Keys returns the number of stored records
func (m *MemoryPersister) Keys() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Health always succeeds for memory storage
func (m *MemoryPersister) Health(ctx context.Context) error {
	return nil
}

// Close is a no-op for memory storage
func (m *MemoryPersister) Close() error {
	return nil
}

// Backend is a durable key/value store for session records
type Backend interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
	Health(ctx context.Context) error
	Close() error
}

var _ store.Persister = Backend(nil)

// Open returns the backend selected by STORAGE_DRIVER. redisClient is only
// used by the redis driver.
func Open(cfg *config.Config, redisClient redis.UniversalClient, log logrus.FieldLogger) (Backend, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		return NewFilePersister(cfg.Storage.FileDir)
	case config.StorageDriverRedis:
		if redisClient == nil {
			return nil, fmt.Errorf("redis storage requires a Redis client")
		}
		return NewRedisPersister(redisClient), nil
	case config.StorageDriverPostgres:
		db, err := NewPostgresConnection(cfg, log)
		if err != nil {
			return nil, err
		}
		return NewPostgresPersister(db)
	case config.StorageDriverMemory:
		return NewMemoryPersister(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver: %s", cfg.Storage.Driver)
	}
}
