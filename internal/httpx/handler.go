package httpx

import (
	"log/slog"

	"github.com/ariefcatur/go-shop-backend/internal/auth"
	"github.com/ariefcatur/go-shop-backend/internal/catalog"
	"github.com/ariefcatur/go-shop-backend/internal/orders"
	"github.com/go-chi/chi/v5"
	kafkago "github.com/segmentio/kafka-go"
)

// Publisher is how handlers emit events; nil disables publishing.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

type Handler struct {
	Auth     *auth.Service
	Catalog  *catalog.Service
	Orders   *orders.Service
	Producer Publisher
	Service  string
	Log      *slog.Logger
}

func (h *Handler) Register(r *chi.Mux) {
	r.Post("/api/auth/register", h.register)
	r.Post("/api/auth/login", h.login)
	r.Get("/api/products", h.listProducts)

	r.Group(func(r chi.Router) {
		r.Use(h.requireUser)
		r.Post("/api/auth/logout", h.logout)
		r.Post("/api/products", h.addProduct)
		r.Post("/api/orders/place-order", h.placeOrder)
		r.Get("/api/orders/get/{orderId}", h.getOrder)
	})
}

func (h *Handler) logger() *slog.Logger {
	if h.Log == nil {
		return slog.Default()
	}
	return h.Log
}
