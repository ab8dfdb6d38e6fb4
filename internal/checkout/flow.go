// Package checkout implements the four-stage purchase flow:
// details → payment → pix → success, with back-transitions from payment
// and pix. The flow owns the form draft, builds the order snapshot and
// hands it to the external store; it never touches order status again.
package checkout

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cart"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cep"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/notify"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
	"github.com/google/uuid"
)

// DefaultMinCardDelay is the floor on the visible "processing" time for
// card submissions, awaited jointly with the real save.
const DefaultMinCardDelay = 2 * time.Second

// OrderStore is the slice of the order repository the flow needs.
type OrderStore interface {
	CreateOrder(ctx context.Context, o *order.Order) error
}

// EventPublisher mirrors notify.Publisher; nil disables events.
type EventPublisher interface {
	OrderCreated(ctx context.Context, o *order.Order) error
}

type Config struct {
	Store        OrderStore
	Events       EventPublisher
	WhatsApp     *notify.WhatsApp
	MinCardDelay time.Duration // zero means DefaultMinCardDelay
}

// State is the serializable part of a flow, used by the session layer.
type State struct {
	Step          Step         `json:"step"`
	Draft         Draft        `json:"draft"`
	ShippingShown bool         `json:"shipping_shown"`
	PendingOrder  *order.Order `json:"pending_order,omitempty"`
}

type Flow struct {
	mu  sync.Mutex
	cfg Config

	cart          *cart.Cart
	step          Step
	draft         Draft
	shippingShown bool

	// pendingOrder is the persisted-but-unconfirmed PIX order, kept so
	// ConfirmPixPaid can compose the notification from the exact snapshot
	// that was stored.
	pendingOrder *order.Order
}

func NewFlow(c *cart.Cart, cfg Config) *Flow {
	f := &Flow{cfg: cfg, cart: c, step: StepDetails}
	f.draft.applyMasks()
	return f
}

// RestoreFlow rebuilds a flow from a persisted snapshot.
func RestoreFlow(c *cart.Cart, cfg Config, s State) *Flow {
	f := NewFlow(c, cfg)
	if s.Step != "" {
		f.step = s.Step
	}
	f.draft = s.Draft
	f.draft.applyMasks()
	f.shippingShown = s.ShippingShown
	f.pendingOrder = s.PendingOrder
	return f
}

func (f *Flow) Step() Step {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.step
}

func (f *Flow) Draft() Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

func (f *Flow) ShippingShown() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shippingShown
}

// Snapshot returns the serializable state.
func (f *Flow) Snapshot() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return State{
		Step:          f.step,
		Draft:         f.draft,
		ShippingShown: f.shippingShown,
		PendingOrder:  f.pendingOrder,
	}
}

// UpdateDraft replaces the form state, applying the input masks, and
// returns the normalized draft.
func (f *Flow) UpdateDraft(d Draft) Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	d.applyMasks()
	f.draft = d
	return f.draft
}

// SetAddress fills the address fields from a postal-code lookup and
// reveals the shipping line.
func (f *Flow) SetAddress(a *cep.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft.Street = a.Street
	f.draft.Neighborhood = a.Neighborhood
	f.draft.City = a.City
	f.draft.State = a.State
	f.shippingShown = true
}

// RevealShipping marks the shipping line as visible without filling the
// address; used when the lookup failed and the user types it in.
func (f *Flow) RevealShipping() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shippingShown = true
}

// SubmitDetails advances details → payment when every required field is
// filled; a missing field rejects the transition.
func (f *Flow) SubmitDetails() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !CanTransitionTo(f.step, StepPayment) {
		return ErrIllegalTransition
	}
	if !f.draft.detailsComplete() {
		return ErrMissingFields
	}

	f.step = StepPayment
	return nil
}

// Back returns one stage: payment → details or pix → payment.
func (f *Flow) Back() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch f.step {
	case StepPayment:
		f.step = StepDetails
	case StepPix:
		f.step = StepPayment
	default:
		return ErrIllegalTransition
	}
	return nil
}

// SubmitPayment persists the order. Card submissions wait for both the
// minimum processing delay and the save before advancing to success and
// clearing the cart; PIX submissions save immediately and advance to the
// pix screen with the cart intact. A failed save leaves the flow on the
// payment step with nothing cleared.
func (f *Flow) SubmitPayment(ctx context.Context, method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPayment {
		return ErrIllegalTransition
	}
	if method != order.PaymentCard && method != order.PaymentPix {
		return ErrUnknownPaymentMethod
	}
	if f.cart.IsEmpty() {
		return ErrEmptyCart
	}
	if method == order.PaymentCard && !f.draft.cardComplete() {
		return ErrMissingCardData
	}

	o := f.buildOrder(method)

	if method == order.PaymentCard {
		// Save and minimum delay are awaited jointly, so the visible wait
		// is max(minDelay, save latency).
		saveErr := make(chan error, 1)
		go func() {
			saveErr <- f.cfg.Store.CreateOrder(ctx, o)
		}()
		delay := time.After(f.minCardDelay())

		err := <-saveErr
		<-delay
		if err != nil {
			return fmt.Errorf("save order: %w", err)
		}

		f.publishCreated(ctx, o)
		f.step = StepSuccess
		f.cart.Clear()
		return nil
	}

	if err := f.cfg.Store.CreateOrder(ctx, o); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	f.publishCreated(ctx, o)
	f.pendingOrder = o
	f.step = StepPix
	return nil
}

// PixData returns the payload bound to the first cart line. Multi-item
// carts still bind to the first line only.
func (f *Flow) PixData() (PixBinding, error) {
	first, ok := f.cart.FirstLine()
	if !ok {
		return PixBinding{}, ErrEmptyCart
	}
	binding, ok := PixBindingFor(first.ID)
	if !ok {
		return PixBinding{}, ErrNoPixBinding
	}
	return binding, nil
}

// ConfirmPixPaid is the user-asserted "I have paid" action: it composes
// the WhatsApp notification link, advances to success and clears the
// cart. Nothing verifies the payment actually happened.
func (f *Flow) ConfirmPixPaid() (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.step != StepPix {
		return "", ErrIllegalTransition
	}

	binding, err := f.PixData()
	if err != nil {
		return "", err
	}

	o := f.pendingOrder
	if o == nil {
		// Restored session lost the snapshot; rebuild it from the draft.
		o = f.buildOrder(order.PaymentPix)
	}

	link := ""
	if f.cfg.WhatsApp != nil {
		link = f.cfg.WhatsApp.PixPaidLink(o, binding.Total, time.Now())
	}

	f.step = StepSuccess
	f.pendingOrder = nil
	f.cart.Clear()
	return link, nil
}

// Close resets the dialog: back to details with an empty draft. The cart
// is left alone; it was already cleared if a purchase finished.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.step = StepDetails
	f.draft = Draft{}
	f.draft.applyMasks()
	f.shippingShown = false
	f.pendingOrder = nil
	f.cart.SetCheckoutOpen(false)
}

func (f *Flow) buildOrder(method string) *order.Order {
	snapshot := f.cart.Snapshot()

	items := make([]order.Item, len(snapshot.Lines))
	for i, line := range snapshot.Lines {
		items[i] = order.Item{
			ID:       line.ID,
			Name:     line.Name,
			Brand:    line.Brand,
			Price:    line.Price,
			Quantity: line.Quantity,
			Image:    line.Image,
		}
	}

	o := &order.Order{
		ID:                  uuid.New(),
		CustomerName:        f.draft.Name,
		CustomerEmail:       f.draft.Email,
		CustomerPhone:       f.draft.Phone,
		CustomerCPF:         f.draft.CPF,
		AddressCEP:          f.draft.CEP,
		AddressStreet:       f.draft.Street,
		AddressNumber:       f.draft.Number,
		AddressNeighborhood: f.draft.Neighborhood,
		AddressCity:         f.draft.City,
		AddressState:        f.draft.State,
		PaymentMethod:       method,
		Items:               items,
		Subtotal:            snapshot.TotalPrice,
		Shipping:            ShippingCost,
		Total:               snapshot.TotalPrice + ShippingCost,
		Status:              order.StatusUnderReview,
	}

	if f.draft.Complement != "" {
		complement := f.draft.Complement
		o.AddressComplement = &complement
	}

	if method == order.PaymentCard {
		number := f.draft.CardNumber
		name := f.draft.CardName
		expiry := f.draft.CardExpiry
		cvv := f.draft.CardCVV
		o.CardNumber = &number
		o.CardName = &name
		o.CardExpiry = &expiry
		o.CardCVV = &cvv
	}

	return o
}

func (f *Flow) publishCreated(ctx context.Context, o *order.Order) {
	if f.cfg.Events == nil {
		return
	}
	if err := f.cfg.Events.OrderCreated(ctx, o); err != nil {
		log.Printf("failed to publish order event for %v: %v", o.ID, err)
	}
}

func (f *Flow) minCardDelay() time.Duration {
	if f.cfg.MinCardDelay > 0 {
		return f.cfg.MinCardDelay
	}
	return DefaultMinCardDelay
}
