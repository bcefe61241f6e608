package postgres

import (
	"context"
	"errors"
	"io/fs"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sule971/luxe-vogue-boutique/pkg/database"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newTestRepo(t *testing.T) (*KVRepository, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := database.NewMockPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	repo := NewKVRepository(mock)
	repo.now = func() time.Time { return fixedNow }
	return repo, mock
}

// ---------------------------------------------------------------------------
// Get
// ---------------------------------------------------------------------------

func TestKVRepository_Get_Success(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs("cart").
		WillReturnRows(pgxmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	data, err := repo.Get(context.Background(), "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepository_Get_NotFound(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs("wishlist").
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Get(context.Background(), "wishlist")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepository_Get_DBError(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(selectValueSQL)).
		WithArgs("cart").
		WillReturnError(errors.New("connection reset"))

	_, err := repo.Get(context.Background(), "cart")
	require.Error(t, err)
	assert.NotErrorIs(t, err, apperrors.ErrNotFound)
	assert.Contains(t, err.Error(), "select value cart")
}

// ---------------------------------------------------------------------------
// Set / Delete
// ---------------------------------------------------------------------------

func TestKVRepository_Set(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO storefront_kv")).
		WithArgs("luxeUser", []byte(`{"id":"1"}`), fixedNow).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, repo.Set(context.Background(), "luxeUser", []byte(`{"id":"1"}`)))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepository_Set_Error(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO storefront_kv")).
		WithArgs("cart", []byte(`[]`), fixedNow).
		WillReturnError(errors.New("disk full"))

	err := repo.Set(context.Background(), "cart", []byte(`[]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upsert value cart")
}

func TestKVRepository_Delete(t *testing.T) {
	repo, mock := newTestRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(deleteValueSQL)).
		WithArgs("luxeUser").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	require.NoError(t, repo.Delete(context.Background(), "luxeUser"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestKVRepository_Ping(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectPing().WillReturnError(errors.New("down"))

	assert.Error(t, NewKVRepository(mock).Ping(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrations_Embedded(t *testing.T) {
	data, err := fs.ReadFile(Migrations(), "001_storefront_kv.up.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS storefront_kv")
}
