// Package notify delivers user-visible toast notifications.
package notify

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// Level is the visual style of a notification.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelError   Level = "error"
)

// Notification is a single toast.
type Notification struct {
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Level       Level     `json:"level"`
	At          time.Time `json:"at"`
}

// Notifier delivers notifications. Notify never fails and never blocks on
// the user.
type Notifier interface {
	Notify(ctx context.Context, n Notification)
}

// Info builds an informational notification.
func Info(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelInfo}
}

// Success builds a success notification.
func Success(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelSuccess}
}

// Error builds an error notification.
func Error(title, description string) Notification {
	return Notification{Title: title, Description: description, Level: LevelError}
}

// LogNotifier writes notifications to a structured logger.
type LogNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier creates a notifier that logs at info level.
func NewLogNotifier(l *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: l}
}

// Notify logs n.
func (n *LogNotifier) Notify(ctx context.Context, note Notification) {
	logger.WithContext(ctx, n.logger).InfoContext(ctx, "notification",
		slog.String("title", note.Title),
		slog.String("description", note.Description),
		slog.String("level", string(note.Level)),
	)
}

// Feed keeps the most recent notifications in a bounded ring until the UI
// drains them. The oldest entry is dropped when the ring is full.
type Feed struct {
	mu    sync.Mutex
	buf   []Notification
	start int
	count int
	now   func() time.Time
}

// NewFeed creates a feed holding at most size notifications.
func NewFeed(size int) *Feed {
	if size < 1 {
		size = 1
	}
	return &Feed{
		buf: make([]Notification, size),
		now: time.Now,
	}
}

// Notify appends n, stamping it when At is unset.
func (f *Feed) Notify(_ context.Context, n Notification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n.At.IsZero() {
		n.At = f.now().UTC()
	}

	end := (f.start + f.count) % len(f.buf)
	f.buf[end] = n
	if f.count < len(f.buf) {
		f.count++
	} else {
		f.start = (f.start + 1) % len(f.buf)
	}
}

// Drain returns pending notifications oldest first and empties the feed.
func (f *Feed) Drain() []Notification {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]Notification, f.count)
	for i := range out {
		out[i] = f.buf[(f.start+i)%len(f.buf)]
	}
	f.start, f.count = 0, 0
	return out
}

// Len returns the number of pending notifications.
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.count
}

// Multi fans a notification out to several notifiers in order.
type Multi []Notifier

// Notify delivers n to every notifier.
func (m Multi) Notify(ctx context.Context, n Notification) {
	for _, notifier := range m {
		notifier.Notify(ctx, n)
	}
}
