package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// AuthService is the mock session identity. Credentials are not checked:
// Login and Register succeed after a simulated latency.
type AuthService struct {
	mu       sync.RWMutex
	user     *domain.User
	store    storage.Store
	notifier notify.Notifier
	latency  time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewAuthService creates an auth service and restores any persisted user.
func NewAuthService(ctx context.Context, store storage.Store, notifier notify.Notifier, latency time.Duration, logger *slog.Logger) *AuthService {
	s := &AuthService{
		store:    store,
		notifier: notifier,
		latency:  latency,
		now:      time.Now,
		logger:   logger,
	}

	var saved domain.User
	if store.Load(ctx, storage.KeyUser, &saved) && saved.ID != "" {
		s.user = &saved
	}
	return s
}

// wait blocks for the simulated latency or until ctx is done.
func (s *AuthService) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.latency)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Login signs in as email. The user id is "1" and the display name is the
// local part of the email address.
func (s *AuthService) Login(ctx context.Context, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.wait(ctx); err != nil {
		return domain.User{}, fmt.Errorf("login: %w", err)
	}

	name, _, _ := strings.Cut(email, "@")
	user := domain.User{ID: "1", Email: email, Name: name}
	s.setUser(ctx, &user)

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "user logged in", slog.String("user_id", user.ID))
	s.notifier.Notify(ctx, notify.Success("Login successful", ""))
	return user, nil
}

// Register creates a session user with an id taken from the current time
// in milliseconds.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.User, error) {
	email = strings.TrimSpace(email)
	if err := s.wait(ctx); err != nil {
		return domain.User{}, fmt.Errorf("register: %w", err)
	}

	user := domain.User{
		ID:    strconv.FormatInt(s.now().UnixMilli(), 10),
		Email: email,
		Name:  strings.TrimSpace(name),
	}
	s.setUser(ctx, &user)

	logger.WithContext(ctx, s.logger).InfoContext(ctx, "user registered", slog.String("user_id", user.ID))
	s.notifier.Notify(ctx, notify.Success("Registration successful", ""))
	return user, nil
}

// Logout clears the session user.
func (s *AuthService) Logout(ctx context.Context) {
	s.mu.Lock()
	s.user = nil
	s.store.Delete(ctx, storage.KeyUser)
	s.mu.Unlock()

	s.notifier.Notify(ctx, notify.Info("You have been logged out", ""))
}

func (s *AuthService) setUser(ctx context.Context, u *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = u
	s.store.Save(ctx, storage.KeyUser, u)
}

// CurrentUser returns the signed-in user, if any.
func (s *AuthService) CurrentUser() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// IsAuthenticated reports whether a user is signed in.
func (s *AuthService) IsAuthenticated() bool {
	_, ok := s.CurrentUser()
	return ok
}
