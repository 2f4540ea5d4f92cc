package cart

import (
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItem_MergesMatchingLines(t *testing.T) {
	c := &models.Cart{UserEmail: "ann@example.com"}

	first := AddItem(c, models.CartItem{ProductID: 1, Name: "Linen Shirt", Price: 40, Quantity: 1, Size: "M", Color: "White"})
	require.NotEmpty(t, first.LineID)

	merged := AddItem(c, models.CartItem{ProductID: 1, Name: "Linen Shirt", Price: 40, Quantity: 2, Size: "M", Color: "White"})
	assert.Equal(t, first.LineID, merged.LineID)
	assert.Equal(t, 3, merged.Quantity)

	other := AddItem(c, models.CartItem{ProductID: 1, Name: "Linen Shirt", Price: 40, Quantity: 1, Size: "L", Color: "White"})
	assert.NotEqual(t, first.LineID, other.LineID)

	assert.Len(t, c.Items, 2)
	assert.Equal(t, 4, ItemCount(c))
}

func TestUpdateQuantityAndRemove(t *testing.T) {
	c := &models.Cart{}
	line := AddItem(c, models.CartItem{ProductID: 1, Quantity: 1})
	keep := AddItem(c, models.CartItem{ProductID: 2, Quantity: 1})

	require.NoError(t, UpdateQuantity(c, line.LineID, 5))
	assert.Equal(t, 5, c.Items[0].Quantity)

	require.NoError(t, UpdateQuantity(c, line.LineID, 0))
	require.Len(t, c.Items, 1)
	assert.Equal(t, keep.LineID, c.Items[0].LineID)

	assert.ErrorIs(t, UpdateQuantity(c, "missing", 2), repository.ErrNotFound)
	assert.ErrorIs(t, RemoveItem(c, "missing"), repository.ErrNotFound)

	require.NoError(t, RemoveItem(c, keep.LineID))
	assert.Empty(t, c.Items)
}

func TestOrderItems(t *testing.T) {
	c := &models.Cart{Items: []models.CartItem{{LineID: "x", ProductID: 3, Name: "Wool Coat", Price: 180, Quantity: 1, Size: "L", Color: "Camel", Image: "coat.jpg"}}}

	assert.Equal(t, []models.OrderItem{{ProductID: 3, Name: "Wool Coat", Price: 180, Quantity: 1, Size: "L", Color: "Camel", Image: "coat.jpg"}}, OrderItems(c))
}

func TestQuote(t *testing.T) {
	tests := []struct {
		name  string
		items []models.CartItem
		want  models.Totals
	}{
		{
			name:  "empty",
			items: nil,
			want:  models.Totals{},
		},
		{
			name:  "below threshold",
			items: []models.CartItem{{Price: 40, Quantity: 2}},
			want:  models.Totals{Subtotal: 80, Shipping: 9.99, Tax: 6.4, Total: 96.39},
		},
		{
			name:  "at threshold ships free",
			items: []models.CartItem{{Price: 50, Quantity: 2}},
			want:  models.Totals{Subtotal: 100, Shipping: 0, Tax: 8, Total: 108},
		},
		{
			name:  "float prices sum exactly",
			items: []models.CartItem{{Price: 0.1, Quantity: 3}, {Price: 19.99, Quantity: 1}},
			want:  models.Totals{Subtotal: 20.29, Shipping: 9.99, Tax: 1.62, Total: 31.9},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Quote(tt.items))
		})
	}
}
