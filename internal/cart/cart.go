package cart

import (
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"github.com/google/uuid"
)

// AddItem merges item into a line with the same product, size and color,
// or appends a new line. It returns the resulting line.
func AddItem(c *models.Cart, item models.CartItem) models.CartItem {
	for i, line := range c.Items {
		if line.ProductID == item.ProductID && line.Size == item.Size && line.Color == item.Color {
			c.Items[i].Quantity += item.Quantity
			return c.Items[i]
		}
	}

	item.LineID = uuid.NewString()
	c.Items = append(c.Items, item)
	return item
}

// UpdateQuantity sets a line's quantity. A quantity of zero or less
// removes the line.
func UpdateQuantity(c *models.Cart, lineID string, quantity int) error {
	if quantity <= 0 {
		return RemoveItem(c, lineID)
	}
	for i := range c.Items {
		if c.Items[i].LineID == lineID {
			c.Items[i].Quantity = quantity
			return nil
		}
	}
	return fmt.Errorf("%w: cart line %s", repository.ErrNotFound, lineID)
}

func RemoveItem(c *models.Cart, lineID string) error {
	for i := range c.Items {
		if c.Items[i].LineID == lineID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: cart line %s", repository.ErrNotFound, lineID)
}

func ItemCount(c *models.Cart) int {
	n := 0
	for _, line := range c.Items {
		n += line.Quantity
	}
	return n
}

// OrderItems snapshots the cart lines for an order.
func OrderItems(c *models.Cart) []models.OrderItem {
	items := make([]models.OrderItem, 0, len(c.Items))
	for _, line := range c.Items {
		items = append(items, models.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Size:      line.Size,
			Color:     line.Color,
			Image:     line.Image,
		})
	}
	return items
}
