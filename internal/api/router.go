// Package api exposes the storefront over HTTP.
package api

import (
	"net/http"

	"storefront-service/internal/api/handlers"
	"storefront-service/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Services struct {
	Products *service.ProductService
	Reviews  *service.ReviewService
	Orders   *service.OrderService
	Checkout *service.CheckoutService
}

func NewRouter(s Services) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(handlers.Shopper)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	handlers.NewProductHandler(s.Products).RegisterRoutes(r)
	handlers.NewReviewHandler(s.Reviews).RegisterRoutes(r)
	handlers.NewOrderHandler(s.Orders).RegisterRoutes(r)
	handlers.NewCartHandler(s.Checkout).RegisterRoutes(r)

	return r
}
