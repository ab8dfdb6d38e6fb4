package checkout

import "github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/mask"

// Draft is the in-progress checkout form. Card fields only matter when the
// selected payment method is card.
type Draft struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	CPF          string `json:"cpf"`
	Phone        string `json:"phone"`
	CEP          string `json:"cep"`
	Street       string `json:"street"`
	Number       string `json:"number"`
	Complement   string `json:"complement"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`

	CardNumber   string `json:"card_number"`
	CardName     string `json:"card_name"`
	CardCPF      string `json:"card_cpf"`
	CardExpiry   string `json:"card_expiry"`
	Installments string `json:"installments"`
	CardCVV      string `json:"card_cvv"`
}

// applyMasks normalizes the maskable fields the same way the form inputs
// do, so stored values always carry the display formatting.
func (d *Draft) applyMasks() {
	d.CPF = mask.CPF(d.CPF)
	d.Phone = mask.Phone(d.Phone)
	d.CEP = mask.CEP(d.CEP)
	d.CardNumber = mask.CardNumber(d.CardNumber)
	d.CardCPF = mask.CPF(d.CardCPF)
	d.CardExpiry = mask.Expiry(d.CardExpiry)
	d.CardCVV = mask.CVV(d.CardCVV)
	if d.Installments == "" {
		d.Installments = "1"
	}
}

// detailsComplete reports whether every required personal and address
// field is filled. Complement is optional.
func (d *Draft) detailsComplete() bool {
	required := []string{
		d.Name, d.Email, d.CPF, d.Phone,
		d.CEP, d.Street, d.Number, d.Neighborhood, d.City, d.State,
	}
	for _, v := range required {
		if v == "" {
			return false
		}
	}
	return true
}

// cardComplete reports whether the card fields needed for submission are
// filled. No number or expiry validity check is performed.
func (d *Draft) cardComplete() bool {
	return d.CardNumber != "" && d.CardName != "" && d.CardExpiry != "" && d.CardCVV != ""
}
