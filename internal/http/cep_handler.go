package http

import (
	"errors"
	"net/http"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cep"
	"github.com/go-chi/chi/v5"
)

type CEPHandler struct {
	resolver CEPResolver
}

func NewCEPHandler(resolver CEPResolver) *CEPHandler {
	return &CEPHandler{resolver: resolver}
}

// GET /api/v1/cep/{code}
func (h *CEPHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	addr, err := h.resolver.Lookup(r.Context(), chi.URLParam(r, "code"))
	switch {
	case errors.Is(err, cep.ErrInvalidCEP):
		respondError(w, http.StatusBadRequest, "invalid_cep", "cep must have exactly 8 digits")
		return
	case errors.Is(err, cep.ErrNotFound):
		respondError(w, http.StatusNotFound, "cep_not_found", "cep not found")
		return
	case errors.Is(err, cep.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "cep_unavailable", "cep lookup unavailable, enter the address manually")
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, "internal_error", "internal server error")
		return
	}

	respondJSON(w, http.StatusOK, addr)
}
