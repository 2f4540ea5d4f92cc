package handlers

import (
	"net/http"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/service"

	"github.com/go-chi/chi/v5"
)

type CartHandler struct {
	checkout *service.CheckoutService
}

func NewCartHandler(checkout *service.CheckoutService) *CartHandler {
	return &CartHandler{checkout: checkout}
}

func (h *CartHandler) RegisterRoutes(r chi.Router) {
	r.Get("/cart", h.GetCart)
	r.Delete("/cart", h.ClearCart)
	r.Post("/cart/items", h.AddItem)
	r.Patch("/cart/items/{lineId}", h.UpdateItem)
	r.Delete("/cart/items/{lineId}", h.RemoveItem)
	r.Get("/cart/quote", h.GetQuote)
	r.Post("/checkout", h.Checkout)

	r.Get("/wishlist", h.GetWishlist)
	r.Get("/wishlist/{productId}", h.InWishlist)
	r.Post("/wishlist/{productId}", h.AddToWishlist)
	r.Delete("/wishlist/{productId}", h.RemoveFromWishlist)
}

type cartResponse struct {
	*models.Cart
	ItemCount int `json:"itemCount"`
}

type CartItemUpdateRequest struct {
	Quantity int `json:"quantity"`
}

func writeCart(w http.ResponseWriter, status int, c *models.Cart) {
	writeJSON(w, status, cartResponse{Cart: c, ItemCount: cart.ItemCount(c)})
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	c, err := h.checkout.Cart(r.Context(), shopper.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCart(w, http.StatusOK, c)
}

func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	if err := h.checkout.ClearCart(r.Context(), shopper.Email); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	var req service.CartLineInput
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.checkout.AddItem(r.Context(), shopper.Email, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCart(w, http.StatusCreated, c)
}

func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	var req CartItemUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	c, err := h.checkout.UpdateItem(r.Context(), shopper.Email, chi.URLParam(r, "lineId"), req.Quantity)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCart(w, http.StatusOK, c)
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	c, err := h.checkout.RemoveItem(r.Context(), shopper.Email, chi.URLParam(r, "lineId"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeCart(w, http.StatusOK, c)
}

func (h *CartHandler) GetQuote(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	totals, err := h.checkout.Quote(r.Context(), shopper.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, totals)
}

// Checkout places the cart as an order and empties it.
func (h *CartHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	var req service.CheckoutInput
	if !decodeJSON(w, r, &req) {
		return
	}

	order, err := h.checkout.Checkout(r.Context(), shopper.Email, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, order)
}

func (h *CartHandler) GetWishlist(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}

	products, err := h.checkout.Wishlist(r.Context(), shopper.Email)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

func (h *CartHandler) InWishlist(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}
	productID, ok := idParam(w, r, "productId")
	if !ok {
		return
	}

	in, err := h.checkout.InWishlist(r.Context(), shopper.Email, productID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"inWishlist": in})
}

func (h *CartHandler) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}
	productID, ok := idParam(w, r, "productId")
	if !ok {
		return
	}

	if err := h.checkout.AddToWishlist(r.Context(), shopper.Email, productID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *CartHandler) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	shopper, ok := requireShopper(w, r)
	if !ok {
		return
	}
	productID, ok := idParam(w, r, "productId")
	if !ok {
		return
	}

	if err := h.checkout.RemoveFromWishlist(r.Context(), shopper.Email, productID); err != nil {
		writeServiceError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
