package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is set to StatusUnderReview on creation and never updated by the
// storefront; later transitions happen out of band and are only observed.
type Status string

const (
	StatusUnderReview Status = "em_analise"
	StatusApproved    Status = "aprovado"
	StatusShipped     Status = "enviado"
	StatusCancelled   Status = "cancelado"
)

func (s Status) String() string {
	return string(s)
}

// Payment methods as submitted from checkout.
const (
	PaymentCard = "cartao"
	PaymentPix  = "pix"
)

// Item is a cart line snapshot embedded into the order record.
type Item struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	Brand    string  `json:"brand"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// Order mirrors the external orders table. Card fields are present only
// for card payments.
type Order struct {
	ID                  uuid.UUID `json:"id"`
	CustomerName        string    `json:"customer_name"`
	CustomerEmail       string    `json:"customer_email"`
	CustomerPhone       string    `json:"customer_phone"`
	CustomerCPF         string    `json:"customer_cpf"`
	AddressCEP          string    `json:"address_cep"`
	AddressStreet       string    `json:"address_street"`
	AddressNumber       string    `json:"address_number"`
	AddressComplement   *string   `json:"address_complement"`
	AddressNeighborhood string    `json:"address_neighborhood"`
	AddressCity         string    `json:"address_city"`
	AddressState        string    `json:"address_state"`
	PaymentMethod       string    `json:"payment_method"`
	CardNumber          *string   `json:"card_number"`
	CardName            *string   `json:"card_name"`
	CardExpiry          *string   `json:"card_expiry"`
	CardCVV             *string   `json:"card_cvv"`
	Items               []Item    `json:"items"`
	Subtotal            float64   `json:"subtotal"`
	Shipping            float64   `json:"shipping"`
	Total               float64   `json:"total"`
	Status              Status    `json:"status"`
	CreatedAt           time.Time `json:"created_at"`
}
