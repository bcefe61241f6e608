package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Sule971/luxe-vogue-boutique/pkg/database"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

// Migrations returns the schema migrations for the key/value table.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

const (
	selectValueSQL = `SELECT value FROM storefront_kv WHERE key = $1`
	upsertValueSQL = `
		INSERT INTO storefront_kv (key, value, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`
	deleteValueSQL = `DELETE FROM storefront_kv WHERE key = $1`
)

// KVRepository implements repository.KVRepository using a PostgreSQL jsonb
// table.
type KVRepository struct {
	db  database.DBTX
	now func() time.Time
}

// NewKVRepository creates a new PostgreSQL-backed repository.
func NewKVRepository(db database.DBTX) *KVRepository {
	return &KVRepository{
		db:  db,
		now: func() time.Time { return time.Now().UTC() },
	}
}

// Get retrieves the value stored under key.
func (r *KVRepository) Get(ctx context.Context, key string) (data []byte, err error) {
	ctx, end := database.TraceQuery(ctx, "GetValue", selectValueSQL)
	defer func() { end(err) }()

	if err = r.db.QueryRow(ctx, selectValueSQL, key).Scan(&data); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("value", key)
		}
		return nil, fmt.Errorf("select value %s: %w", key, err)
	}
	return data, nil
}

// Set upserts value under key.
func (r *KVRepository) Set(ctx context.Context, key string, value []byte) (err error) {
	ctx, end := database.TraceQuery(ctx, "SetValue", upsertValueSQL)
	defer func() { end(err) }()

	if _, err = r.db.Exec(ctx, upsertValueSQL, key, value, r.now()); err != nil {
		return fmt.Errorf("upsert value %s: %w", key, err)
	}
	return nil
}

// Delete removes key.
func (r *KVRepository) Delete(ctx context.Context, key string) (err error) {
	ctx, end := database.TraceQuery(ctx, "DeleteValue", deleteValueSQL)
	defer func() { end(err) }()

	if _, err = r.db.Exec(ctx, deleteValueSQL, key); err != nil {
		return fmt.Errorf("delete value %s: %w", key, err)
	}
	return nil
}

// Ping checks the database connection.
func (r *KVRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
