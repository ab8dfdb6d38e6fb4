package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cart"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cep"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/checkout"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/mask"
)

// CEPResolver is the slice of the cep client the checkout surface needs.
type CEPResolver interface {
	Lookup(ctx context.Context, code string) (*cep.Address, error)
}

type CheckoutHandler struct {
	cep CEPResolver
}

func NewCheckoutHandler(resolver CEPResolver) *CheckoutHandler {
	return &CheckoutHandler{cep: resolver}
}

type CheckoutStateDTO struct {
	Step          checkout.Step          `json:"step"`
	Draft         checkout.Draft         `json:"draft"`
	ShippingShown bool                   `json:"shipping_shown"`
	Subtotal      float64                `json:"subtotal"`
	Shipping      float64                `json:"shipping"`
	Total         float64                `json:"total"`
	Installments  []checkout.Installment `json:"installments"`
	Cart          cart.State             `json:"cart"`
}

type PaymentRequestDTO struct {
	Method string `json:"method"`
}

type PixResponseDTO struct {
	Step    checkout.Step `json:"step"`
	QRCode  string        `json:"qr_code"`
	PixCode string        `json:"pix_code"`
	Total   float64       `json:"total"`
}

func checkoutState(f *checkout.Flow, c *cart.Cart) CheckoutStateDTO {
	snapshot := c.Snapshot()

	shipping := 0.0
	if f.ShippingShown() {
		shipping = checkout.ShippingCost
	}
	total := snapshot.TotalPrice + shipping

	return CheckoutStateDTO{
		Step:          f.Step(),
		Draft:         f.Draft(),
		ShippingShown: f.ShippingShown(),
		Subtotal:      snapshot.TotalPrice,
		Shipping:      shipping,
		Total:         total,
		Installments:  checkout.Installments(total),
		Cart:          snapshot,
	}
}

// GET /api/v1/checkout
func (h *CheckoutHandler) GetState(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())
	respondJSON(w, http.StatusOK, checkoutState(s.Flow, s.Cart))
}

// PUT /api/v1/checkout/draft
//
// Replaces the form draft. When the postal code reaches 8 digits the
// address is resolved inline; a failed lookup still reveals the shipping
// line so the user can type the address in.
func (h *CheckoutHandler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	var draft checkout.Draft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	previous := s.Flow.Draft()
	draft = s.Flow.UpdateDraft(draft)

	code := mask.Digits(draft.CEP)
	if len(code) == 8 && mask.Digits(previous.CEP) != code {
		addr, err := h.cep.Lookup(r.Context(), code)
		switch {
		case err == nil:
			s.Flow.SetAddress(addr)
		case errors.Is(err, cep.ErrNotFound), errors.Is(err, cep.ErrUnavailable):
			log.Printf("CEP %s lookup failed: %v", code, err)
			s.Flow.RevealShipping()
		default:
			log.Printf("CEP %s lookup failed: %v", code, err)
		}
	}

	respondJSON(w, http.StatusOK, checkoutState(s.Flow, s.Cart))
}

// POST /api/v1/checkout/details
func (h *CheckoutHandler) SubmitDetails(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	if err := s.Flow.SubmitDetails(); err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutState(s.Flow, s.Cart))
}

// POST /api/v1/checkout/payment
func (h *CheckoutHandler) SubmitPayment(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	var req PaymentRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if err := s.Flow.SubmitPayment(r.Context(), req.Method); err != nil {
		respondCheckoutError(w, err)
		return
	}

	if s.Flow.Step() == checkout.StepPix {
		binding, err := s.Flow.PixData()
		if err != nil {
			respondCheckoutError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, PixResponseDTO{
			Step:    checkout.StepPix,
			QRCode:  binding.QRCode,
			PixCode: binding.Code,
			Total:   binding.Total,
		})
		return
	}

	respondJSON(w, http.StatusOK, checkoutState(s.Flow, s.Cart))
}

// POST /api/v1/checkout/pix/confirm
func (h *CheckoutHandler) ConfirmPixPaid(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	link, err := s.Flow.ConfirmPixPaid()
	if err != nil {
		respondCheckoutError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"step":         string(checkout.StepSuccess),
		"whatsapp_url": link,
	})
}

// POST /api/v1/checkout/back
func (h *CheckoutHandler) Back(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	if err := s.Flow.Back(); err != nil {
		respondCheckoutError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, checkoutState(s.Flow, s.Cart))
}

// POST /api/v1/checkout/close
func (h *CheckoutHandler) Close(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())
	s.Flow.Close()
	respondJSON(w, http.StatusOK, checkoutState(s.Flow, s.Cart))
}

func respondCheckoutError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, checkout.ErrMissingFields):
		respondError(w, http.StatusBadRequest, "missing_fields", "all required fields must be filled")
	case errors.Is(err, checkout.ErrMissingCardData):
		respondError(w, http.StatusBadRequest, "missing_card_data", "card number, name, expiry and cvv are required")
	case errors.Is(err, checkout.ErrUnknownPaymentMethod):
		respondError(w, http.StatusBadRequest, "unknown_payment_method", "payment method must be cartao or pix")
	case errors.Is(err, checkout.ErrEmptyCart):
		respondError(w, http.StatusConflict, "empty_cart", "cart is empty")
	case errors.Is(err, checkout.ErrNoPixBinding):
		respondError(w, http.StatusConflict, "no_pix_binding", "no pix payment available for this product")
	case errors.Is(err, checkout.ErrIllegalTransition):
		respondError(w, http.StatusConflict, "illegal_transition", "action not available at this checkout step")
	default:
		log.Printf("checkout operation failed: %v", err)
		respondError(w, http.StatusBadGateway, "order_save_failed", "order could not be saved, try again")
	}
}
