package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cart"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/catalog"
	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	catalog *catalog.Catalog
}

func NewCartHandler(c *catalog.Catalog) *CartHandler {
	return &CartHandler{catalog: c}
}

type AddItemRequestDTO struct {
	ProductID int64 `json:"product_id"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type VisibilityRequestDTO struct {
	CartOpen     *bool `json:"cart_open"`
	CheckoutOpen *bool `json:"checkout_open"`
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())
	respondJSON(w, http.StatusOK, s.Cart.Snapshot())
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	p, ok := h.catalog.Get(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "product not found")
		return
	}

	s.Cart.Add(cart.Item{
		ID:    p.ID,
		Name:  p.Name,
		Brand: p.Brand,
		Price: p.Price,
		Image: p.Image,
	})

	respondJSON(w, http.StatusCreated, s.Cart.Snapshot())
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	s.Cart.UpdateQuantity(id, req.Quantity)
	respondJSON(w, http.StatusOK, s.Cart.Snapshot())
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	id, err := strconv.ParseInt(chi.URLParam(r, "product_id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusBadRequest, "invalid_product_id", "product_id must be a positive integer")
		return
	}

	s.Cart.Remove(id)
	respondJSON(w, http.StatusOK, s.Cart.Snapshot())
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())
	s.Cart.Clear()
	respondJSON(w, http.StatusOK, s.Cart.Snapshot())
}

// PUT /api/v1/cart/visibility
func (h *CartHandler) SetVisibility(w http.ResponseWriter, r *http.Request) {
	s := getSession(r.Context())

	var req VisibilityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.CartOpen != nil {
		s.Cart.SetCartOpen(*req.CartOpen)
	}
	if req.CheckoutOpen != nil {
		s.Cart.SetCheckoutOpen(*req.CheckoutOpen)
	}

	respondJSON(w, http.StatusOK, s.Cart.Snapshot())
}
