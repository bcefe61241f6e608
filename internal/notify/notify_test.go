package notify

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeed_DrainOldestFirst(t *testing.T) {
	f := NewFeed(5)
	ctx := context.Background()

	f.Notify(ctx, Success("Added to wishlist", "Monogram Belt has been added to your wishlist"))
	f.Notify(ctx, Info("You have been logged out", ""))

	got := f.Drain()
	require.Len(t, got, 2)
	assert.Equal(t, "Added to wishlist", got[0].Title)
	assert.Equal(t, LevelInfo, got[1].Level)
	assert.False(t, got[0].At.IsZero())

	assert.Empty(t, f.Drain())
	assert.Zero(t, f.Len())
}

func TestFeed_DropsOldestWhenFull(t *testing.T) {
	f := NewFeed(3)
	ctx := context.Background()
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		f.Notify(ctx, Info(title, ""))
	}

	assert.Equal(t, 3, f.Len())
	got := f.Drain()
	titles := []string{got[0].Title, got[1].Title, got[2].Title}
	assert.Equal(t, []string{"c", "d", "e"}, titles)
}

func TestFeed_KeepsExplicitTimestamp(t *testing.T) {
	f := NewFeed(0)
	at := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	f.Notify(context.Background(), Notification{Title: "x", At: at})
	assert.Equal(t, at, f.Drain()[0].At)
}

func TestFeed_Concurrent(t *testing.T) {
	f := NewFeed(10)
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.Notify(context.Background(), Info("t", ""))
		}()
	}
	wg.Wait()
	assert.Equal(t, 10, f.Len())
}

func TestLogNotifier(t *testing.T) {
	var buf bytes.Buffer
	n := NewLogNotifier(slog.New(slog.NewJSONHandler(&buf, nil)))

	n.Notify(context.Background(), Error("Payment failed", "Insufficient funds"))

	out := buf.String()
	assert.Contains(t, out, `"title":"Payment failed"`)
	assert.Contains(t, out, `"level":"error"`)
}

func TestMulti(t *testing.T) {
	a, b := NewFeed(2), NewFeed(2)

	Multi{a, b}.Notify(context.Background(), Success("Login successful", ""))

	assert.Equal(t, 1, a.Len())
	assert.Equal(t, 1, b.Len())
}
