package memory

import (
	"context"
	"slices"
	"sync"

	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

// KVRepository implements repository.KVRepository in process memory.
type KVRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewKVRepository creates an empty in-memory repository.
func NewKVRepository() *KVRepository {
	return &KVRepository{values: make(map[string][]byte)}
}

// Get returns a copy of the value stored under key.
func (r *KVRepository) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return nil, apperrors.NotFound("value", key)
	}
	return slices.Clone(v), nil
}

// Set stores a copy of value under key.
func (r *KVRepository) Set(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.values[key] = slices.Clone(value)
	return nil
}

// Delete removes key.
func (r *KVRepository) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.values, key)
	return nil
}

// Ping always succeeds.
func (r *KVRepository) Ping(context.Context) error {
	return nil
}
