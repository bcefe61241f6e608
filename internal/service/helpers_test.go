package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/Sule971/luxe-vogue-boutique/internal/apiclient"
	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/navigation"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	"github.com/Sule971/luxe-vogue-boutique/internal/repository/memory"
	"github.com/Sule971/luxe-vogue-boutique/internal/storage"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
)

// --- Fakes ---

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) PublishCartUpdated(ctx context.Context, lines domain.Lines) error {
	return m.Called(ctx, lines).Error(0)
}

func (m *mockPublisher) PublishCartCleared(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockPublisher) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	return m.Called(ctx, order).Error(0)
}

// newPublisher returns a publisher that accepts every event.
func newPublisher() *mockPublisher {
	p := &mockPublisher{}
	p.On("PublishCartUpdated", mock.Anything, mock.Anything).Return(nil).Maybe()
	p.On("PublishCartCleared", mock.Anything).Return(nil).Maybe()
	p.On("PublishOrderPlaced", mock.Anything, mock.Anything).Return(nil).Maybe()
	return p
}

type mockPayments struct {
	mock.Mock
}

func (m *mockPayments) InitiatePayment(ctx context.Context, phone, amount string) (*apiclient.PaymentResponse, error) {
	args := m.Called(ctx, phone, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*apiclient.PaymentResponse), args.Error(1)
}

type mockWishlistAPI struct {
	mock.Mock
}

func (m *mockWishlistAPI) AddToWishlist(ctx context.Context, userID, productID string) error {
	return m.Called(ctx, userID, productID).Error(0)
}

// recordingNavigator keeps every path it was sent to.
type recordingNavigator struct {
	mu    sync.Mutex
	paths []string
}

func (n *recordingNavigator) Navigate(_ context.Context, path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
}

func (n *recordingNavigator) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

var _ navigation.Navigator = (*recordingNavigator)(nil)

// failingRepo fails every operation.
type failingRepo struct{}

var errBackend = errors.New("backend offline")

func (failingRepo) Get(context.Context, string) ([]byte, error) { return nil, errBackend }
func (failingRepo) Set(context.Context, string, []byte) error    { return errBackend }
func (failingRepo) Delete(context.Context, string) error         { return errBackend }
func (failingRepo) Ping(context.Context) error                   { return errBackend }

// --- Test Helpers ---

func newTestStore() *storage.JSONStore {
	return storage.New(memory.NewKVRepository(), logger.Discard())
}

func newTestFeed() *notify.Feed {
	return notify.NewFeed(20)
}

func seededRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

var (
	silkDress = domain.Product{ID: "1", Name: "Silk Evening Dress", Price: 12500, Category: "dresses", Gender: domain.GenderWomen}
	wool      = domain.Product{ID: "2", Name: "Wool Overcoat", Price: 12500, Category: "outerwear", Gender: domain.GenderMen}
	tote      = domain.Product{ID: "3", Name: "Leather Tote", Price: 8999, Category: "bags", Gender: domain.GenderUnisex}
)

func titles(notes []notify.Notification) []string {
	out := make([]string, len(notes))
	for i, n := range notes {
		out[i] = n.Title
	}
	return out
}

func newTestCart(t *testing.T, store storage.Store) *CartService {
	t.Helper()
	return NewCartService(context.Background(), store, newPublisher(), logger.Discard())
}

// newCorruptRepo returns an in-memory repository holding invalid JSON under key.
func newCorruptRepo(key string) *memory.KVRepository {
	repo := memory.NewKVRepository()
	_ = repo.Set(context.Background(), key, []byte("{not json"))
	return repo
}
