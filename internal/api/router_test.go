package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"storefront-service/internal/api/handlers"
	"storefront-service/internal/apper"
	"storefront-service/internal/cart"
	"storefront-service/internal/history"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/repository"
	"storefront-service/internal/service"
	"storefront-service/internal/tracking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const shopperEmail = "ann@example.com"

func newTestRouter(t *testing.T, client apper.Client) http.Handler {
	t.Helper()
	products := repository.NewApperProductRepository(client)
	orderRepo := repository.NewApperOrderRepository(client)

	orders := service.NewOrderService(orderRepo, nil, nil)
	return NewRouter(Services{
		Products: service.NewProductService(products, nil),
		Reviews:  service.NewReviewService(repository.NewApperReviewRepository(client), orders, nil),
		Orders:   orders,
		Checkout: service.NewCheckoutService(cart.NewMemoryStore(), cart.NewMemoryWishlist(), products, orders, nil),
	})
}

func seededRouter(t *testing.T) http.Handler {
	t.Helper()
	client := apper.NewMemoryClient()
	repository.SeedCatalog(client, repository.DemoCatalog()...)
	return newTestRouter(t, client)
}

func do(t *testing.T, h http.Handler, method, path string, body any, signedIn bool) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if signedIn {
		req.Header.Set(handlers.HeaderUserEmailAddress, shopperEmail)
		req.Header.Set(handlers.HeaderUserFirstName, "Ann")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func notifications(t *testing.T, rec *httptest.ResponseRecorder) []notify.Notification {
	t.Helper()
	raw := rec.Header().Get(handlers.HeaderNotifications)
	if raw == "" {
		return nil
	}
	var out []notify.Notification
	require.NoError(t, json.Unmarshal([]byte(raw), &out))
	return out
}

func TestRouter_Products(t *testing.T) {
	h := seededRouter(t)

	rec := do(t, h, http.MethodGet, "/products?category=women&sortBy=price-high", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	products := decode[[]models.Product](t, rec)
	require.Len(t, products, 2)
	assert.Equal(t, "Wool Coat", products[0].Name)

	assert.Empty(t, notifications(t, rec))

	rec = do(t, h, http.MethodGet, "/products?sale=true", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/products?minPrice=cheap", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/featured?limit=2", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 2)

	rec = do(t, h, http.MethodGet, "/categories/shoes/products", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Product](t, rec), 1)

	rec = do(t, h, http.MethodGet, "/products/2/related", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	related := decode[[]models.Product](t, rec)
	require.Len(t, related, 1)
	assert.Equal(t, "Linen Shirt", related[0].Name)

	rec = do(t, h, http.MethodGet, "/products/999", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/abc", nil, false)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_UnavailableBackend(t *testing.T) {
	h := newTestRouter(t, nil)

	rec := do(t, h, http.MethodGet, "/products", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Failed to load products"}}, notifications(t, rec))

	rec = do(t, h, http.MethodGet, "/products/featured", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelError, Message: "Failed to load products"}}, notifications(t, rec))

	rec = do(t, h, http.MethodGet, "/products/1", nil, false)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/1/reviews/stats", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.ReviewStats](t, rec)
	assert.Equal(t, 0, stats.TotalReviews)
}

func TestRouter_Reviews(t *testing.T) {
	h := seededRouter(t)

	rec := do(t, h, http.MethodPost, "/products/1/reviews", map[string]any{"rating": 5}, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/products/1/reviews", map[string]any{"rating": 6}, true)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Rating must be between 1 and 5")

	rec = do(t, h, http.MethodPost, "/products/1/reviews", map[string]any{"rating": 5, "comment": "Great fit"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	review := decode[models.Review](t, rec)
	assert.Equal(t, "Ann", review.UserName)
	assert.False(t, review.Verified)

	rec = do(t, h, http.MethodPost, "/products/1/reviews", map[string]any{"rating": 4}, true)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(t, h, http.MethodGet, "/products/1/reviews/stats", nil, false)
	require.Equal(t, http.StatusOK, rec.Code)
	stats := decode[models.ReviewStats](t, rec)
	assert.Equal(t, 5.0, stats.AverageRating)
	assert.Equal(t, 1, stats.TotalReviews)

	rec = do(t, h, http.MethodPut, fmt.Sprintf("/reviews/%d", review.ReviewID), map[string]any{"comment": "Runs small"}, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Runs small", decode[models.Review](t, rec).Comment)

	rec = do(t, h, http.MethodGet, "/me/reviews", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode[[]models.Review](t, rec), 1)

	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ReviewID), nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodDelete, fmt.Sprintf("/reviews/%d", review.ReviewID), nil, true)
	require.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Contains(t, rec.Body.String(), fmt.Sprintf("Record with Id %d not found", review.ReviewID))
}

func TestRouter_CheckoutFlow(t *testing.T) {
	h := seededRouter(t)

	rec := do(t, h, http.MethodGet, "/cart", nil, false)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, h, http.MethodPost, "/cart/items", map[string]any{"productId": 1, "quantity": 2, "size": "M", "color": "White"}, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	var added struct {
		Items     []models.CartItem `json:"items"`
		ItemCount int               `json:"itemCount"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &added))
	assert.Equal(t, 2, added.ItemCount)

	rec = do(t, h, http.MethodGet, "/cart/quote", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, models.Totals{Subtotal: 80, Shipping: 9.99, Tax: 6.4, Total: 96.39}, decode[models.Totals](t, rec))

	checkout := map[string]any{
		"shippingAddress": map[string]any{
			"firstName": "Ann",
			"lastName":  "Lee",
			"email":     shopperEmail,
			"address":   "1 Main St",
			"city":      "Springfield",
			"zipCode":   "12345",
		},
		"paymentMethod": "card",
	}
	rec = do(t, h, http.MethodPost, "/checkout", checkout, true)
	require.Equal(t, http.StatusCreated, rec.Code)
	order := decode[models.Order](t, rec)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, []notify.Notification{{Level: notify.LevelSuccess, Message: "Order placed successfully"}}, notifications(t, rec))
	assert.Equal(t, 96.39, order.Total)

	rec = do(t, h, http.MethodPost, "/checkout", checkout, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, "/orders?status=confirmed&date=week", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	page := decode[history.Page](t, rec)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 1, page.TotalPages)

	rec = do(t, h, http.MethodGet, "/orders?date=decade", nil, true)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, h, http.MethodGet, fmt.Sprintf("/orders/%d/tracking", order.OrderID), nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	view := decode[tracking.View](t, rec)
	assert.Equal(t, 1, view.CurrentStep)
	assert.Equal(t, tracking.IconCheck, view.Status.Icon)

	rec = do(t, h, http.MethodGet, "/orders/purchased/1", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"purchased":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/orders/9999", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Wishlist(t *testing.T) {
	h := seededRouter(t)

	rec := do(t, h, http.MethodPost, "/wishlist/3", nil, true)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, h, http.MethodGet, "/wishlist/3", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"inWishlist":true}`, rec.Body.String())

	rec = do(t, h, http.MethodGet, "/wishlist", nil, true)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]models.Product](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "Oxford Shirt", list[0].Name)

	rec = do(t, h, http.MethodPost, "/wishlist/999", nil, true)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, h, http.MethodDelete, "/wishlist/3", nil, true)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
