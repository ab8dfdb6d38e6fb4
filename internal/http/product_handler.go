package http

import (
	"net/http"
	"strconv"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

type ProductDTO struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Price           float64  `json:"price"`
	OriginalPrice   float64  `json:"original_price,omitempty"`
	DiscountPercent int      `json:"discount_percent,omitempty"`
	Image           string   `json:"image"`
	Images          []string `json:"images,omitempty"`
	Rating          float64  `json:"rating"`
	Features        []string `json:"features,omitempty"`
	Badge           string   `json:"badge,omitempty"`
}

func convertProduct(p catalog.Product) ProductDTO {
	return ProductDTO{
		ID:              p.ID,
		Name:            p.Name,
		Brand:           p.Brand,
		Price:           p.Price,
		OriginalPrice:   p.OriginalPrice,
		DiscountPercent: p.DiscountPercent(),
		Image:           p.Image,
		Images:          p.Images,
		Rating:          p.Rating,
		Features:        p.Features,
		Badge:           p.Badge,
	}
}

// GET /api/v1/products
func (h *ProductHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.All()

	dtos := make([]ProductDTO, 0, len(products))
	for _, p := range products {
		dtos = append(dtos, convertProduct(p))
	}

	respondJSON(w, http.StatusOK, dtos)
}

// GET /api/v1/products/{product_id}
func (h *ProductHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	p, ok := h.catalog.Get(id)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}

	respondJSON(w, http.StatusOK, convertProduct(p))
}
