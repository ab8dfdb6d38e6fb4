package http

import (
	"net/http"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/admin"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/catalog"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterConfig carries the wired dependencies of the HTTP surface.
type RouterConfig struct {
	Catalog        *catalog.Catalog
	Sessions       *session.Manager
	CEP            CEPResolver
	Admin          *admin.Service
	RequestTimeout time.Duration
}

func NewRouter(cfg RouterConfig) chi.Router {
	productHandler := NewProductHandler(cfg.Catalog)
	cartHandler := NewCartHandler(cfg.Catalog)
	checkoutHandler := NewCheckoutHandler(cfg.CEP)
	cepHandler := NewCEPHandler(cfg.CEP)
	adminHandler := NewAdminHandler(cfg.Admin)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products", productHandler.ListProducts)
		r.Get("/products/{product_id}", productHandler.GetProduct)

		r.Get("/cep/{code}", cepHandler.Lookup)

		// Session-scoped routes
		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware(cfg.Sessions))

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", cartHandler.GetCart)
				r.Delete("/", cartHandler.ClearCart)
				r.Post("/items", cartHandler.AddItem)
				r.Put("/items/{product_id}", cartHandler.UpdateQuantity)
				r.Delete("/items/{product_id}", cartHandler.RemoveItem)
				r.Put("/visibility", cartHandler.SetVisibility)
			})

			r.Route("/checkout", func(r chi.Router) {
				r.Get("/", checkoutHandler.GetState)
				r.Put("/draft", checkoutHandler.UpdateDraft)
				r.Post("/details", checkoutHandler.SubmitDetails)
				r.Post("/payment", checkoutHandler.SubmitPayment)
				r.Post("/pix/confirm", checkoutHandler.ConfirmPixPaid)
				r.Post("/back", checkoutHandler.Back)
				r.Post("/close", checkoutHandler.Close)
			})
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/login", adminHandler.Login)
			r.Post("/logout", adminHandler.Logout)
			r.Get("/orders", adminHandler.ListOrders)
			r.Delete("/orders/{order_id}", adminHandler.DeleteOrder)
		})
	})

	return r
}
