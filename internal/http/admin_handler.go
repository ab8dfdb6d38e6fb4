package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/admin"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/order"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type AdminHandler struct {
	service *admin.Service
}

func NewAdminHandler(service *admin.Service) *AdminHandler {
	return &AdminHandler{service: service}
}

type LoginRequestDTO struct {
	Password string `json:"password"`
}

type LoginResponseDTO struct {
	Token string `json:"token"`
}

// POST /api/v1/admin/login
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	token, err := h.service.Login(r.Context(), req.Password)
	if errors.Is(err, admin.ErrInvalidPassword) {
		respondError(w, http.StatusUnauthorized, "invalid_password", "invalid password")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, LoginResponseDTO{Token: token})
}

// POST /api/v1/admin/logout
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Logout(r.Context(), bearerToken(r)); err != nil {
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GET /api/v1/admin/orders?reveal={order_id}
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	reveal := uuid.Nil
	if raw := r.URL.Query().Get("reveal"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid_order_id", "reveal must be a valid order id")
			return
		}
		reveal = id
	}

	orders, err := h.service.ListOrders(r.Context(), bearerToken(r), reveal)
	if err != nil {
		respondAdminError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, orders)
}

// DELETE /api/v1/admin/orders/{order_id}
func (h *AdminHandler) DeleteOrder(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "order_id"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id must be a valid uuid")
		return
	}

	if err := h.service.DeleteOrder(r.Context(), bearerToken(r), id); err != nil {
		respondAdminError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func respondAdminError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, admin.ErrNotAuthenticated):
		respondError(w, http.StatusUnauthorized, "unauthorized", "admin authentication required")
	case errors.Is(err, order.ErrOrderNotFound):
		respondError(w, http.StatusNotFound, "order_not_found", "order not found")
	default:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}
