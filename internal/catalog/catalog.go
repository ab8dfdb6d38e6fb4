// Package catalog serves the static product list. Products are seeded by
// migrations and loaded once at startup; the running process only reads.
package catalog

import (
	"context"
	"fmt"
)

type Catalog struct {
	ordered []Product
	byID    map[int64]Product
}

// Load reads every product from the repository into memory.
func Load(ctx context.Context, repo *Repository) (*Catalog, error) {
	products, err := repo.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	byID := make(map[int64]Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	return &Catalog{ordered: products, byID: byID}, nil
}

// All returns the products in catalog order.
func (c *Catalog) All() []Product {
	return c.ordered
}

func (c *Catalog) Get(id int64) (Product, bool) {
	p, ok := c.byID[id]
	return p, ok
}
