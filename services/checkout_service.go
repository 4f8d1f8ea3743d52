package services

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"shoe-shop/models"
	"shoe-shop/repositories"
)

// ShippingFee is the flat shipping charge added at checkout, in rupees.
const ShippingFee = 200

var (
	ErrEmptyCart          = errors.New("cart is empty")
	ErrCityRequired       = errors.New("city selection is required for checkout")
	ErrNoSnapshot         = errors.New("no checkout data found")
	ErrSubmissionInFlight = errors.New("order submission already in progress")
)

// CheckoutService runs one checkout attempt:
// NoSnapshot -> FormEntry -> Submitting -> Confirmed, with Confirmed
// terminal. The snapshot lives only in the ephemeral tier and is consumed
// exactly once; order submission is a simulation that always succeeds.
// The Submitting phase is marked in the ephemeral tier too, so a second
// request for the same session sees the in-flight submission.
type CheckoutService struct {
	ephemeral   repositories.KVStore
	cart        *CartService
	handoffKey  string
	inflightKey string
	delay       time.Duration
	state       models.CheckoutState
}

func NewCheckoutService(ephemeral repositories.KVStore, cart *CartService, sessionID string, delay time.Duration) *CheckoutService {
	return &CheckoutService{
		ephemeral:   ephemeral,
		cart:        cart,
		handoffKey:  "checkout:" + sessionID,
		inflightKey: "checkout:submitting:" + sessionID,
		delay:       delay,
		state:       models.CheckoutStateNoSnapshot,
	}
}

func (s *CheckoutService) State() models.CheckoutState {
	return s.state
}

// Proceed validates the cart-to-checkout boundary and captures the snapshot.
// It is refused for an empty cart or a missing fulfillment city, before any
// snapshot exists.
func (s *CheckoutService) Proceed(ctx context.Context, city string) (models.CheckoutSnapshot, error) {
	items := s.cart.Load(ctx)
	if len(items) == 0 {
		return models.CheckoutSnapshot{}, ErrEmptyCart
	}
	if city == "" || !models.IsValidCity(city) {
		return models.CheckoutSnapshot{}, ErrCityRequired
	}

	snapshot := models.CheckoutSnapshot{
		Items:        items,
		SelectedCity: city,
		Subtotal:     items.Subtotal(),
	}

	blob, err := json.Marshal(snapshot)
	if err != nil {
		return models.CheckoutSnapshot{}, err
	}
	if err := s.ephemeral.Set(ctx, s.handoffKey, string(blob)); err != nil {
		return models.CheckoutSnapshot{}, err
	}

	s.state = models.CheckoutStateFormEntry
	return snapshot, nil
}

// Snapshot loads the one-shot handoff blob. Absence or corruption both mean
// there is nothing to check out; the caller presents a return-to-cart
// outcome.
func (s *CheckoutService) Snapshot(ctx context.Context) (models.CheckoutSnapshot, error) {
	blob, found, err := s.ephemeral.Get(ctx, s.handoffKey)
	if err != nil {
		log.Println("Checkout handoff read failed:", err)
		return models.CheckoutSnapshot{}, ErrNoSnapshot
	}
	if !found {
		return models.CheckoutSnapshot{}, ErrNoSnapshot
	}

	var snapshot models.CheckoutSnapshot
	if err := json.Unmarshal([]byte(blob), &snapshot); err != nil {
		log.Println("Discarding unreadable checkout blob:", err)
		return models.CheckoutSnapshot{}, ErrNoSnapshot
	}

	s.state = models.CheckoutStateFormEntry
	return snapshot, nil
}

// Total is the order total for a captured snapshot.
func (s *CheckoutService) Total(snapshot models.CheckoutSnapshot) int {
	return snapshot.Subtotal + ShippingFee
}

// Complete moves FormEntry -> Submitting -> Confirmed. After the simulated
// processing delay the order unconditionally confirms, the cart is cleared
// from both tiers and the snapshot is discarded. Re-entrant submissions
// while Submitting are refused; there is no cancellation once started.
func (s *CheckoutService) Complete(ctx context.Context, form models.OrderForm) (int, error) {
	if s.state.IsTerminal() {
		return 0, ErrNoSnapshot
	}
	if s.submissionInFlight(ctx) {
		return 0, ErrSubmissionInFlight
	}

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return 0, err
	}

	if err := form.Validate(); err != nil {
		return 0, err
	}

	if err := s.ephemeral.Set(ctx, s.inflightKey, "1"); err != nil {
		return 0, err
	}
	s.state = models.CheckoutStateSubmitting
	time.Sleep(s.delay)

	if err := s.cart.Clear(ctx); err != nil {
		log.Println("Failed to clear cart after order:", err)
	}
	if err := s.ephemeral.Remove(ctx, s.handoffKey); err != nil {
		log.Println("Failed to discard checkout snapshot:", err)
	}
	if err := s.ephemeral.Remove(ctx, s.inflightKey); err != nil {
		log.Println("Failed to discard submission marker:", err)
	}

	s.state = models.CheckoutStateConfirmed
	return s.Total(snapshot), nil
}

// submissionInFlight checks the shared marker, not instance state: each
// request builds its own service, so only the ephemeral tier can make one
// session's in-flight submission visible to the next request.
func (s *CheckoutService) submissionInFlight(ctx context.Context) bool {
	if s.state == models.CheckoutStateSubmitting {
		return true
	}
	_, found, err := s.ephemeral.Get(ctx, s.inflightKey)
	if err != nil {
		log.Println("Submission marker read failed:", err)
		return false
	}
	return found
}
