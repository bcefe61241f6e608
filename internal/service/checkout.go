package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"sync"
	"time"

	"github.com/Sule971/luxe-vogue-boutique/internal/apiclient"
	"github.com/Sule971/luxe-vogue-boutique/internal/domain"
	"github.com/Sule971/luxe-vogue-boutique/internal/event"
	"github.com/Sule971/luxe-vogue-boutique/internal/navigation"
	"github.com/Sule971/luxe-vogue-boutique/internal/notify"
	apperrors "github.com/Sule971/luxe-vogue-boutique/pkg/errors"
	"github.com/Sule971/luxe-vogue-boutique/pkg/logger"
	"github.com/Sule971/luxe-vogue-boutique/pkg/validator"
)

// DefaultConfirmDelay is how long the optimistic confirmer waits before
// treating an initiated payment as paid.
const DefaultConfirmDelay = 3 * time.Second

// genericPaymentError is shown when a failure carries no provider message.
const genericPaymentError = "We couldn't process your M-Pesa payment. Please try again."

var (
	// ErrEmptyCart is returned when checkout is attempted with an empty cart.
	ErrEmptyCart = &apperrors.AppError{
		Code:    "EMPTY_CART",
		Message: "Your cart is empty",
		Status:  http.StatusConflict,
		Err:     apperrors.ErrConflict,
	}

	// ErrCheckoutInProgress is returned while a submission is in flight.
	ErrCheckoutInProgress = apperrors.Conflict("checkout is already in progress")
)

// PaymentGateway starts a mobile money payment.
type PaymentGateway interface {
	InitiatePayment(ctx context.Context, phone, amount string) (*apiclient.PaymentResponse, error)
}

// PaymentReceipt describes an initiated payment awaiting confirmation.
type PaymentReceipt struct {
	Phone   string
	Amount  string
	Message string
}

// Confirmer decides whether an initiated payment completed.
type Confirmer interface {
	Confirm(ctx context.Context, receipt PaymentReceipt) error
}

// DelayConfirmer assumes success after a fixed delay. It never reports a
// failure other than the context ending.
type DelayConfirmer struct {
	Delay time.Duration
}

// Confirm waits for the delay.
func (c DelayConfirmer) Confirm(ctx context.Context, _ PaymentReceipt) error {
	if c.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(c.Delay)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return fmt.Errorf("confirm payment: %w", ctx.Err())
	case <-t.C:
		return nil
	}
}

// CheckoutSnapshot is the checkout view state.
type CheckoutSnapshot struct {
	State         domain.CheckoutState `json:"state"`
	LastError     string               `json:"last_error,omitempty"`
	LastOrderID   string               `json:"last_order_id,omitempty"`
	SubmitEnabled bool                 `json:"submit_enabled"`
}

// CheckoutDeps are the collaborators of the checkout service.
type CheckoutDeps struct {
	Cart      *CartService
	Orders    *OrderHistory
	Payments  PaymentGateway
	Confirmer Confirmer
	Notifier  notify.Notifier
	Navigator navigation.Navigator
	Producer  event.Publisher
	Logger    *slog.Logger

	// Rand and Now default to a time-seeded source and time.Now.
	Rand *rand.Rand
	Now  func() time.Time

	// OnTransition, when set, is called with each new state while the
	// service lock is held. It must not call back into the service.
	OnTransition func(from, to domain.CheckoutState)
}

// CheckoutService runs the checkout state machine. Only one submission can
// be in flight at a time.
type CheckoutService struct {
	deps CheckoutDeps

	mu          sync.Mutex
	state       domain.CheckoutState
	lastError   string
	lastOrderID string
}

// NewCheckoutService creates a checkout service in the idle state.
func NewCheckoutService(deps CheckoutDeps) *CheckoutService {
	if deps.Confirmer == nil {
		deps.Confirmer = DelayConfirmer{Delay: DefaultConfirmDelay}
	}
	if deps.Producer == nil {
		deps.Producer = event.Nop{}
	}
	if deps.Rand == nil {
		seed := uint64(time.Now().UnixNano())
		deps.Rand = rand.New(rand.NewPCG(seed, seed>>32))
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	return &CheckoutService{deps: deps, state: domain.CheckoutIdle}
}

// Enter is called when the checkout view opens. With an empty cart it
// redirects to the cart view and returns false. A finished checkout is
// reset to idle.
func (s *CheckoutService) Enter(ctx context.Context) bool {
	s.mu.Lock()
	if s.state == domain.CheckoutSucceeded {
		s.setStateLocked(domain.CheckoutIdle)
	}
	s.mu.Unlock()

	if s.deps.Cart.IsEmpty() {
		s.deps.Navigator.Navigate(ctx, navigation.PathCart)
		return false
	}
	return true
}

// Summary prices the current cart for the order summary panel.
func (s *CheckoutService) Summary(promo string) domain.Summary {
	return domain.Summarize(s.deps.Cart.Items(), promo)
}

// Snapshot returns the current checkout state.
func (s *CheckoutService) Snapshot() CheckoutSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *CheckoutService) setStateLocked(to domain.CheckoutState) {
	from := s.state
	if from == to {
		return
	}
	s.state = to
	if s.deps.OnTransition != nil {
		s.deps.OnTransition(from, to)
	}
}

func (s *CheckoutService) snapshotLocked() CheckoutSnapshot {
	return CheckoutSnapshot{
		State:         s.state,
		LastError:     s.lastError,
		LastOrderID:   s.lastOrderID,
		SubmitEnabled: s.state != domain.CheckoutSubmitting && !s.deps.Cart.IsEmpty(),
	}
}

// Submit validates form and pays for the cart. It returns once the payment
// has been confirmed or has failed. The payment runs on a context detached
// from ctx's cancellation, so a submitted payment completes even if the
// caller goes away.
func (s *CheckoutService) Submit(ctx context.Context, form domain.CheckoutForm) (CheckoutSnapshot, error) {
	log := logger.WithContext(ctx, s.deps.Logger)

	s.mu.Lock()
	if s.state == domain.CheckoutSubmitting {
		snap := s.snapshotLocked()
		s.mu.Unlock()
		return snap, ErrCheckoutInProgress
	}
	if s.deps.Cart.IsEmpty() {
		s.mu.Unlock()
		s.deps.Navigator.Navigate(ctx, navigation.PathCart)
		return s.Snapshot(), ErrEmptyCart
	}
	if err := validator.Validate(form); err != nil {
		s.setStateLocked(domain.CheckoutIdle)
		snap := s.snapshotLocked()
		s.mu.Unlock()

		message := "Please check your shipping and payment details"
		var ve *validator.ValidationError
		if errors.As(err, &ve) {
			message = ve.First()
		}
		s.deps.Notifier.Notify(ctx, notify.Error("Invalid checkout details", message))
		return snap, err
	}
	s.setStateLocked(domain.CheckoutSubmitting)
	s.lastError = ""
	s.mu.Unlock()

	pctx := context.WithoutCancel(ctx)

	lines := s.deps.Cart.Items()
	summary := domain.Summarize(lines, form.PromoCode)
	amount := domain.FormatAmount(summary.Total)
	phone := domain.NormalizePhone(form.MpesaNumber)

	log.InfoContext(ctx, "initiating payment",
		slog.String("amount", amount),
		slog.Int("lines", len(lines)),
		slog.Bool("promo_applied", summary.PromoApplied),
	)

	resp, err := s.deps.Payments.InitiatePayment(pctx, phone, amount)
	if err != nil {
		return s.fail(pctx, fmt.Errorf("initiate payment: %w", err))
	}

	s.deps.Notifier.Notify(pctx, notify.Success("Payment initiated",
		"Check your phone and enter your M-Pesa PIN to complete the payment"))

	receipt := PaymentReceipt{Phone: phone, Amount: amount, Message: resp.Message}
	if err := s.deps.Confirmer.Confirm(pctx, receipt); err != nil {
		return s.fail(pctx, fmt.Errorf("confirm payment: %w", err))
	}

	return s.complete(pctx, lines, summary, form.Address()), nil
}

// complete records the order, takes its lines out of the cart and moves to
// succeeded.
func (s *CheckoutService) complete(ctx context.Context, lines domain.Lines, summary domain.Summary, address domain.Address) CheckoutSnapshot {
	now := s.deps.Now()

	s.mu.Lock()
	order := domain.Order{
		ID:                    domain.NewOrderID(s.deps.Rand),
		Items:                 lines,
		TotalAmount:           summary.Total,
		Status:                domain.OrderPending,
		TrackingNumber:        domain.NewTrackingNumber(s.deps.Rand),
		ShippingAddress:       address,
		OrderDate:             now,
		EstimatedDeliveryDate: now.Add(domain.DeliveryWindow),
	}
	s.mu.Unlock()

	s.deps.Orders.Record(ctx, order)
	s.deps.Cart.RemoveOrdered(ctx, lines)

	s.mu.Lock()
	s.setStateLocked(domain.CheckoutSucceeded)
	s.lastOrderID = order.ID
	snap := s.snapshotLocked()
	s.mu.Unlock()

	log := logger.WithContext(ctx, s.deps.Logger)
	log.InfoContext(ctx, "order placed",
		slog.String("order_id", order.ID),
		slog.Int64("total_amount", order.TotalAmount),
	)

	s.deps.Notifier.Notify(ctx, notify.Success("Order placed successfully!",
		"You'll receive a confirmation shortly."))
	s.deps.Navigator.Navigate(ctx, navigation.OrderConfirmationPath(order.ID))

	if err := s.deps.Producer.PublishOrderPlaced(ctx, order); err != nil {
		log.ErrorContext(ctx, "failed to publish order placed event",
			slog.String("order_id", order.ID),
			slog.String("error", err.Error()),
		)
	}
	return snap
}

// fail moves through failed back to idle and reports err once. The cart is
// left as it was.
func (s *CheckoutService) fail(ctx context.Context, err error) (CheckoutSnapshot, error) {
	message := apperrors.UserMessage(err, genericPaymentError)

	logger.WithContext(ctx, s.deps.Logger).WarnContext(ctx, "checkout failed",
		slog.String("error", err.Error()),
	)

	s.mu.Lock()
	s.setStateLocked(domain.CheckoutFailed)
	s.lastError = message
	s.setStateLocked(domain.CheckoutIdle)
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.deps.Notifier.Notify(ctx, notify.Error("Payment failed", message))
	return snap, err
}
