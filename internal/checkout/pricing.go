package checkout

// ShippingCost is charged uniformly, regardless of address or cart
// contents.
const ShippingCost = 19.40

// MaxInstallments is the longest interest-free card plan offered.
const MaxInstallments = 12

type Installment struct {
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

// Installments returns the 1..12 interest-free plans for a total. Amounts
// are plain divisions for display; the sum may differ from the total by
// float rounding.
func Installments(total float64) []Installment {
	plans := make([]Installment, 0, MaxInstallments)
	for n := 1; n <= MaxInstallments; n++ {
		plans = append(plans, Installment{Count: n, Amount: total / float64(n)})
	}
	return plans
}
