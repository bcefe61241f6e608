package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

func TestLogin_MockUser(t *testing.T) {
	ctx := context.Background()
	feed := newTestFeed()
	auth := NewAuthService(ctx, newTestStore(), feed, 0, logger.Discard())

	user, err := auth.Login(ctx, "amina.otieno@example.com", "anything")
	require.NoError(t, err)
	assert.Equal(t, "1", user.ID)
	assert.Equal(t, "amina.otieno", user.Name)
	assert.True(t, auth.IsAuthenticated())

	notes := feed.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Login successful", notes[0].Title)
}

func TestRegister_IDFromClock(t *testing.T) {
	ctx := context.Background()
	auth := NewAuthService(ctx, newTestStore(), newTestFeed(), 0, logger.Discard())
	auth.now = func() time.Time { return time.UnixMilli(1718000000123) }

	user, err := auth.Register(ctx, "Amina", "amina@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, "1718000000123", user.ID)
	assert.Equal(t, "Amina", user.Name)

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, user, current)
}

func TestLogin_WaitsForLatency(t *testing.T) {
	auth := NewAuthService(context.Background(), newTestStore(), newTestFeed(), 30*time.Millisecond, logger.Discard())

	start := time.Now()
	_, err := auth.Login(context.Background(), "a@b.co", "x")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}

func TestLogin_ContextCancelled(t *testing.T) {
	feed := newTestFeed()
	auth := NewAuthService(context.Background(), newTestStore(), feed, time.Minute, logger.Discard())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := auth.Login(ctx, "a@b.co", "x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.False(t, auth.IsAuthenticated())
	assert.Equal(t, 0, feed.Len())
}

func TestLogout_ClearsPersistedUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	feed := newTestFeed()
	auth := NewAuthService(ctx, store, feed, 0, logger.Discard())
	_, err := auth.Login(ctx, "a@b.co", "x")
	require.NoError(t, err)
	feed.Drain()

	auth.Logout(ctx)

	assert.False(t, auth.IsAuthenticated())
	reloaded := NewAuthService(ctx, store, newTestFeed(), 0, logger.Discard())
	assert.False(t, reloaded.IsAuthenticated())

	notes := feed.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "You have been logged out", notes[0].Title)
	assert.Equal(t, notify.LevelInfo, notes[0].Level)
}

func TestAuth_RestoresPersistedUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore()
	auth := NewAuthService(ctx, store, newTestFeed(), 0, logger.Discard())
	_, err := auth.Login(ctx, "w@example.com", "x")
	require.NoError(t, err)

	reloaded := NewAuthService(ctx, store, newTestFeed(), 0, logger.Discard())
	user, ok := reloaded.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, "w", user.Name)
}

func TestAuth_CorruptUserIsIgnored(t *testing.T) {
	auth := NewAuthService(context.Background(), storage.New(newCorruptRepo(storage.KeyUser), logger.Discard()),
		newTestFeed(), 0, logger.Discard())
	assert.False(t, auth.IsAuthenticated())
}
