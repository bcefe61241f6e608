package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sule971/luxe-vogue-boutique/internal/apiclient"
	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/navigation"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
	"github.com/Sule971/luxe-vogue-boutique/pkg/validator"
)

// --- Test Helpers ---

type confirmFunc func(ctx context.Context, receipt PaymentReceipt) error

func (f confirmFunc) Confirm(ctx context.Context, receipt PaymentReceipt) error {
	return f(ctx, receipt)
}

type checkoutFixture struct {
	svc       *CheckoutService
	cart      *CartService
	orders    *OrderHistory
	payments  *mockPayments
	feed      *notify.Feed
	nav       *recordingNavigator
	publisher *mockPublisher

	mu          sync.Mutex
	transitions []string
}

func (f *checkoutFixture) Transitions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.transitions...)
}

func newCheckoutFixture(t *testing.T, confirmer Confirmer) *checkoutFixture {
	t.Helper()
	ctx := context.Background()
	store := newTestStore()

	f := &checkoutFixture{
		payments:  &mockPayments{},
		feed:      newTestFeed(),
		nav:       &recordingNavigator{},
		publisher: newPublisher(),
	}
	f.cart = NewCartService(ctx, store, f.publisher, logger.Discard())
	f.orders = NewOrderHistory(ctx, store)
	if confirmer == nil {
		confirmer = DelayConfirmer{}
	}

	f.svc = NewCheckoutService(CheckoutDeps{
		Cart:      f.cart,
		Orders:    f.orders,
		Payments:  f.payments,
		Confirmer: confirmer,
		Notifier:  f.feed,
		Navigator: f.nav,
		Producer:  f.publisher,
		Logger:    logger.Discard(),
		Rand:      seededRand(),
		Now:       func() time.Time { return time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC) },
		OnTransition: func(from, to domain.CheckoutState) {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.transitions = append(f.transitions, string(from)+"->"+string(to))
		},
	})
	return f
}

// fillCart adds two lines with a 250.00 subtotal.
func (f *checkoutFixture) fillCart() {
	f.cart.AddToCart(context.Background(), silkDress, 1)
	f.cart.AddToCart(context.Background(), wool, 1)
}

func validForm() domain.CheckoutForm {
	return domain.CheckoutForm{
		FullName:      "Amina Otieno",
		StreetAddress: "12 Riverside Drive",
		City:          "Nairobi",
		County:        "Nairobi",
		PostalCode:    "00100",
		PhoneNumber:   "+254712345678",
		MpesaNumber:   "0712345678",
	}
}

var acceptedPayment = &apiclient.PaymentResponse{
	Message: "An M-PESA prompt has been sent to your phone. Please check and complete payment",
}

// --- Submit: success ---

func TestSubmit_Success(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, "+254712345678", "265").Return(acceptedPayment, nil).Once()

	snap, err := f.svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, domain.CheckoutSucceeded, snap.State)
	assert.Regexp(t, `^ORD-\d{6}$`, snap.LastOrderID)
	assert.True(t, f.cart.IsEmpty())
	assert.False(t, snap.SubmitEnabled)

	order, ok := f.orders.Get(snap.LastOrderID)
	require.True(t, ok)
	assert.Equal(t, int64(26500), order.TotalAmount)
	assert.Len(t, order.Items, 2)
	assert.Equal(t, domain.OrderPending, order.Status)
	assert.Regexp(t, `^LUXE-TRACK-\d{6}$`, order.TrackingNumber)
	assert.Equal(t, "Nairobi", order.ShippingAddress.City)
	assert.Equal(t, order.OrderDate.Add(7*24*time.Hour), order.EstimatedDeliveryDate)

	assert.Equal(t, []string{navigation.OrderConfirmationPath(snap.LastOrderID)}, f.nav.Paths())
	assert.Equal(t, []string{"Payment initiated", "Order placed successfully!"}, titles(f.feed.Drain()))
	assert.Equal(t, []string{"idle->submitting", "submitting->succeeded"}, f.Transitions())

	f.payments.AssertExpectations(t)
	f.publisher.AssertCalled(t, "PublishOrderPlaced", mock.Anything, mock.MatchedBy(func(o domain.Order) bool {
		return o.ID == snap.LastOrderID
	}))
}

func TestSubmit_PromoDiscountsAmount(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, "+254712345678", "240").Return(acceptedPayment, nil).Once()

	form := validForm()
	form.PromoCode = "LUXE10"
	_, err := f.svc.Submit(context.Background(), form)
	require.NoError(t, err)
	f.payments.AssertExpectations(t)
}

func TestSubmit_InternationalNumberUnchanged(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, "+254700111222", "265").Return(acceptedPayment, nil).Once()

	form := validForm()
	form.MpesaNumber = "+254700111222"
	_, err := f.svc.Submit(context.Background(), form)
	require.NoError(t, err)
	f.payments.AssertExpectations(t)
}

func TestSubmit_FormattedNumbersSentNormalized(t *testing.T) {
	for _, number := range []string{"0712-345-678", "0712 345 678", "+254 712 345 678"} {
		t.Run(number, func(t *testing.T) {
			f := newCheckoutFixture(t, nil)
			f.fillCart()
			f.payments.On("InitiatePayment", mock.Anything, "+254712345678", "265").Return(acceptedPayment, nil).Once()

			form := validForm()
			form.MpesaNumber = number
			_, err := f.svc.Submit(context.Background(), form)
			require.NoError(t, err)
			f.payments.AssertExpectations(t)
		})
	}
}

func TestSubmit_PaymentSurvivesCallerCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var confirmErr error
	f := newCheckoutFixture(t, confirmFunc(func(pctx context.Context, _ PaymentReceipt) error {
		cancel()
		confirmErr = pctx.Err()
		return nil
	}))
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).Return(acceptedPayment, nil)

	snap, err := f.svc.Submit(ctx, validForm())
	require.NoError(t, err)
	assert.NoError(t, confirmErr)
	assert.Equal(t, domain.CheckoutSucceeded, snap.State)
}

// --- Submit: failure ---

func TestSubmit_PaymentFailureKeepsCart(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.PaymentFailed("Insufficient funds in your M-Pesa account")).Once()

	snap, err := f.svc.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrPaymentFailed))

	assert.Equal(t, domain.CheckoutIdle, snap.State)
	assert.Equal(t, "Insufficient funds in your M-Pesa account", snap.LastError)
	assert.True(t, snap.SubmitEnabled)
	assert.Len(t, f.cart.Items(), 2)
	assert.Empty(t, f.orders.List())
	assert.Empty(t, f.nav.Paths())
	assert.Equal(t, []string{"idle->submitting", "submitting->failed", "failed->idle"}, f.Transitions())

	notes := f.feed.Drain()
	require.Len(t, notes, 1)
	assert.Equal(t, "Payment failed", notes[0].Title)
	assert.Equal(t, notify.LevelError, notes[0].Level)
}

func TestSubmit_NetworkFailureUsesGenericMessage(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("dial tcp: connection refused")).Once()

	snap, err := f.svc.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Equal(t, genericPaymentError, snap.LastError)
}

func TestSubmit_ConfirmationFailure(t *testing.T) {
	f := newCheckoutFixture(t, confirmFunc(func(context.Context, PaymentReceipt) error {
		return errors.New("payment timed out")
	}))
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).Return(acceptedPayment, nil)

	snap, err := f.svc.Submit(context.Background(), validForm())
	require.Error(t, err)
	assert.Equal(t, domain.CheckoutIdle, snap.State)
	assert.Len(t, f.cart.Items(), 2)
	assert.Equal(t, []string{"Payment initiated", "Payment failed"}, titles(f.feed.Drain()))
}

func TestSubmit_RetryAfterFailure(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.PaymentFailed("declined")).Once()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).
		Return(acceptedPayment, nil).Once()

	_, err := f.svc.Submit(context.Background(), validForm())
	require.Error(t, err)

	snap, err := f.svc.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, domain.CheckoutSucceeded, snap.State)
	assert.Empty(t, snap.LastError)
}

func TestSubmit_KeepsItemsAddedDuringConfirmation(t *testing.T) {
	var f *checkoutFixture
	f = newCheckoutFixture(t, confirmFunc(func(ctx context.Context, _ PaymentReceipt) error {
		f.cart.AddToCart(ctx, tote, 1)
		return nil
	}))
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, "+254712345678", "265").Return(acceptedPayment, nil).Once()

	snap, err := f.svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	order, ok := f.orders.Get(snap.LastOrderID)
	require.True(t, ok)
	assert.Len(t, order.Items, 2)

	items := f.cart.Items()
	require.Len(t, items, 1)
	assert.Equal(t, tote.ID, items[0].Product.ID)
}

// --- Submit: guards ---

func TestSubmit_ValidationFailure(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.CheckoutForm)
	}{
		{"missing full name", func(f *domain.CheckoutForm) { f.FullName = "" }},
		{"missing street", func(f *domain.CheckoutForm) { f.StreetAddress = "" }},
		{"missing city", func(f *domain.CheckoutForm) { f.City = "" }},
		{"missing mpesa", func(f *domain.CheckoutForm) { f.MpesaNumber = "" }},
		{"short mpesa", func(f *domain.CheckoutForm) { f.MpesaNumber = "07123" }},
		{"not a phone", func(f *domain.CheckoutForm) { f.MpesaNumber = "not-a-phone" }},
		{"foreign number", func(f *domain.CheckoutForm) { f.MpesaNumber = "1234567890" }},
		{"blank full name", func(f *domain.CheckoutForm) { f.FullName = "   " }},
		{"blank street", func(f *domain.CheckoutForm) { f.StreetAddress = "\t" }},
		{"blank city", func(f *domain.CheckoutForm) { f.City = "  " }},
		{"missing county", func(f *domain.CheckoutForm) { f.County = "" }},
		{"missing postal code", func(f *domain.CheckoutForm) { f.PostalCode = "" }},
		{"missing address phone", func(f *domain.CheckoutForm) { f.PhoneNumber = "" }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newCheckoutFixture(t, nil)
			f.fillCart()

			form := validForm()
			tc.mutate(&form)
			snap, err := f.svc.Submit(context.Background(), form)

			var ve *validator.ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, domain.CheckoutIdle, snap.State)
			assert.Empty(t, f.Transitions())
			assert.Len(t, f.feed.Drain(), 1)
			f.payments.AssertNotCalled(t, "InitiatePayment", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSubmit_EmptyCartRedirects(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	_, err := f.svc.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, ErrEmptyCart)
	assert.Equal(t, []string{navigation.PathCart}, f.nav.Paths())
	f.payments.AssertNotCalled(t, "InitiatePayment", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_SingleSubmissionInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	f := newCheckoutFixture(t, confirmFunc(func(context.Context, PaymentReceipt) error {
		close(entered)
		<-release
		return nil
	}))
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).Return(acceptedPayment, nil).Once()

	done := make(chan error, 1)
	go func() {
		_, err := f.svc.Submit(context.Background(), validForm())
		done <- err
	}()
	<-entered

	snap := f.svc.Snapshot()
	assert.Equal(t, domain.CheckoutSubmitting, snap.State)
	assert.False(t, snap.SubmitEnabled)

	_, err := f.svc.Submit(context.Background(), validForm())
	require.ErrorIs(t, err, ErrCheckoutInProgress)

	close(release)
	require.NoError(t, <-done)
	f.payments.AssertNumberOfCalls(t, "InitiatePayment", 1)
}

// --- Enter / Summary ---

func TestEnter(t *testing.T) {
	f := newCheckoutFixture(t, nil)

	assert.False(t, f.svc.Enter(context.Background()))
	assert.Equal(t, []string{navigation.PathCart}, f.nav.Paths())

	f.fillCart()
	assert.True(t, f.svc.Enter(context.Background()))
	assert.Len(t, f.nav.Paths(), 1)
}

func TestEnter_ResetsSucceeded(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()
	f.payments.On("InitiatePayment", mock.Anything, mock.Anything, mock.Anything).Return(acceptedPayment, nil)

	_, err := f.svc.Submit(context.Background(), validForm())
	require.NoError(t, err)

	f.svc.Enter(context.Background())
	assert.Equal(t, domain.CheckoutIdle, f.svc.Snapshot().State)
}

func TestSummary(t *testing.T) {
	f := newCheckoutFixture(t, nil)
	f.fillCart()

	s := f.svc.Summary("")
	assert.Equal(t, 2, s.Lines)
	assert.Equal(t, int64(25000), s.Subtotal)
	assert.Equal(t, int64(1500), s.Shipping)
	assert.Equal(t, int64(26500), s.Total)

	promo := f.svc.Summary("luxe10")
	assert.Equal(t, int64(2500), promo.Discount)
	assert.Equal(t, int64(24000), promo.Total)
	assert.True(t, promo.PromoApplied)
}

func TestDelayConfirmer(t *testing.T) {
	start := time.Now()
	require.NoError(t, DelayConfirmer{Delay: 20 * time.Millisecond}.Confirm(context.Background(), PaymentReceipt{}))
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := DelayConfirmer{Delay: time.Minute}.Confirm(ctx, PaymentReceipt{})
	assert.ErrorIs(t, err, context.Canceled)
}
