package catalog

import "math"

// Product is one purchasable console. The data is defined by the seed
// migration and never changes at runtime.
type Product struct {
	ID            int64
	Name          string
	Brand         string
	Price         float64
	OriginalPrice float64
	Image         string
	Images        []string
	Rating        float64
	Features      []string
	Badge         string
}

func (p Product) HasDiscount() bool {
	return p.OriginalPrice > p.Price
}

// DiscountPercent is derived from the two prices, never stored.
func (p Product) DiscountPercent() int {
	if !p.HasDiscount() {
		return 0
	}
	return int(math.Round((p.OriginalPrice - p.Price) / p.OriginalPrice * 100))
}
