package handlers

import (
	"net/http"

	"storefront-service/internal/history"
	"storefront-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type OrderHandler struct {
	orders *service.OrderService
}

func NewOrderHandler(orders *service.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Get("/orders", h.GetHistory)
	r.Get("/orders/purchased/{productId}", h.HasPurchased)
	r.Get("/orders/{id}", h.GetByID)
	r.Get("/orders/{id}/tracking", h.GetTracking)
}

// GetHistory serves one page of the shopper's orders. scope=all lists
// every order.
func (h *OrderHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	all := q.Get("scope") == "all"

	shopper := ShopperFrom(r.Context())
	if !all && shopper.Anonymous() {
		writeError(w, http.StatusUnauthorized, "unauthorized", "sign in required", nil)
		return
	}

	status, err := history.ParseStatus(q.Get("status"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return
	}
	date, err := history.ParseDateRange(q.Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return
	}
	page, err := history.ParsePage(q.Get("page"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_input", err.Error(), nil)
		return
	}

	query := history.NewQuery().
		WithSearch(q.Get("search")).
		WithStatus(status).
		WithDate(date).
		WithPage(page)

	writeJSON(w, http.StatusOK, h.orders.History(r.Context(), shopper.Email, all, query))
}

func (h *OrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	order, err := h.orders.Get(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (h *OrderHandler) GetTracking(w http.ResponseWriter, r *http.Request) {
	id, ok := idParam(w, r, "id")
	if !ok {
		return
	}

	view, err := h.orders.Track(r.Context(), id)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

func (h *OrderHandler) HasPurchased(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}
	productID, ok := idParam(w, r, "productId")
	if !ok {
		return
	}

	purchased, err := h.orders.HasPurchased(r.Context(), shopper.Email, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"purchased": purchased})
}
