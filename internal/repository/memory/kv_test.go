package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
)

func TestKVRepository_SetGet(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	require.NoError(t, repo.Set(ctx, "cart", []byte(`[]`)))

	got, err := repo.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestKVRepository_GetMissing(t *testing.T) {
	_, err := NewKVRepository().Get(context.Background(), "wishlist")
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}

func TestKVRepository_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	buf := []byte(`{"a":1}`)
	require.NoError(t, repo.Set(ctx, "k", buf))
	buf[0] = 'X'

	got, err := repo.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))

	got[0] = 'Y'
	again, _ := repo.Get(ctx, "k")
	assert.Equal(t, `{"a":1}`, string(again))
}

func TestKVRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := NewKVRepository()

	require.NoError(t, repo.Set(ctx, "luxeUser", []byte(`{}`)))
	require.NoError(t, repo.Delete(ctx, "luxeUser"))
	require.NoError(t, repo.Delete(ctx, "luxeUser"))

	_, err := repo.Get(ctx, "luxeUser")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.NoError(t, repo.Ping(ctx))
}
