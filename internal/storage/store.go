// Package storage persists session state as JSON values. It never reports
// failures to callers: problems are logged and treated as an absent value.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Sule971/luxe-vogue-boutique/internal/repository"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// Storage keys.
const (
	KeyCart     = "cart"
	KeyWishlist = "wishlist"
	KeyUser     = "luxeUser"
	KeyOrders   = "luxeOrders"
)

// Store loads and saves JSON-serializable values.
type Store interface {
	// Load decodes the value under key into dst and reports whether it was
	// present and valid. dst is left untouched when it returns false.
	Load(ctx context.Context, key string, dst any) bool
	Save(ctx context.Context, key string, value any)
	Delete(ctx context.Context, key string)
}

// JSONStore implements Store on top of a key/value repository.
type JSONStore struct {
	repo   repository.KVRepository
	logger *slog.Logger
}

// New creates a JSONStore over repo.
func New(repo repository.KVRepository, logger *slog.Logger) *JSONStore {
	return &JSONStore{repo: repo, logger: logger}
}

// Load reads and decodes key into dst.
func (s *JSONStore) Load(ctx context.Context, key string, dst any) bool {
	data, err := s.repo.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.WithContext(ctx, s.logger).Warn("failed to load stored value",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}

	// Decode into a fresh value so a corrupt blob cannot leave dst half written.
	tmp, err := decode(data, dst)
	if err != nil {
		logger.WithContext(ctx, s.logger).Warn("discarding corrupt stored value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	assign(dst, tmp)
	return true
}

// Save encodes value and writes it under key.
func (s *JSONStore) Save(ctx context.Context, key string, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to encode value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}

	if err := s.repo.Set(ctx, key, data); err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to save value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Delete removes key.
func (s *JSONStore) Delete(ctx context.Context, key string) {
	if err := s.repo.Delete(ctx, key); err != nil {
		logger.WithContext(ctx, s.logger).Error("failed to delete value",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}

// Ping reports whether the underlying backend is reachable.
func (s *JSONStore) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}
