package service

import (
	"context"
	"fmt"
	"log"
	"slices"

	"storefront-service/internal/cart"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/repository"
)

type CartLineInput struct {
	ProductID int    `json:"productId" validate:"required,gt=0"`
	Quantity  int    `json:"quantity" validate:"required,gt=0,lte=99"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type CheckoutInput struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
}

var cartMessages = map[string]string{
	"ProductID":     "product is required",
	"Quantity":      "quantity must be between 1 and 99",
	"PaymentMethod": "payment method is required",
	"Email":         "a valid shipping email is required",
}

// CheckoutService owns the cart, the wishlist and turning a cart into an
// order.
type CheckoutService struct {
	carts    cart.Store
	wishlist cart.WishlistStore
	products repository.ProductRepository
	orders   *OrderService
	notifier notify.Notifier
}

func NewCheckoutService(carts cart.Store, wishlist cart.WishlistStore, products repository.ProductRepository, orders *OrderService, n notify.Notifier) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		wishlist: wishlist,
		products: products,
		orders:   orders,
		notifier: notifierOrDefault(n),
	}
}

func requireShopper(email string) error {
	if email == "" {
		return fmt.Errorf("%w: shopper email is required", repository.ErrInvalidInput)
	}
	return nil
}

func (s *CheckoutService) Cart(ctx context.Context, email string) (*models.Cart, error) {
	if err := requireShopper(email); err != nil {
		return nil, err
	}
	return s.carts.Get(ctx, email)
}

// AddItem prices the line from the catalog and merges it into the cart.
func (s *CheckoutService) AddItem(ctx context.Context, email string, in CartLineInput) (*models.Cart, error) {
	if err := requireShopper(email); err != nil {
		return nil, err
	}
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err, cartMessages)
	}

	product, err := s.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if len(product.Sizes) > 0 && in.Size != "" && !slices.Contains(product.Sizes, in.Size) {
		return nil, fmt.Errorf("%w: size %s is not available", repository.ErrInvalidInput, in.Size)
	}

	c, err := s.carts.Get(ctx, email)
	if err != nil {
		return nil, err
	}

	line := models.CartItem{
		ProductID: product.ProductID,
		Name:      product.Name,
		Price:     product.Price,
		Quantity:  in.Quantity,
		Size:      in.Size,
		Color:     in.Color,
	}
	if len(product.Images) > 0 {
		line.Image = product.Images[0]
	}
	cart.AddItem(c, line)

	if err := s.carts.Save(ctx, c); err != nil {
		reportWriteFailure(ctx, s.notifier, "Failed to update cart", err)
		return nil, err
	}
	return c, nil
}

func (s *CheckoutService) UpdateItem(ctx context.Context, email, lineID string, quantity int) (*models.Cart, error) {
	return s.mutate(ctx, email, func(c *models.Cart) error {
		return cart.UpdateQuantity(c, lineID, quantity)
	})
}

func (s *CheckoutService) RemoveItem(ctx context.Context, email, lineID string) (*models.Cart, error) {
	return s.mutate(ctx, email, func(c *models.Cart) error {
		return cart.RemoveItem(c, lineID)
	})
}

func (s *CheckoutService) mutate(ctx context.Context, email string, fn func(*models.Cart) error) (*models.Cart, error) {
	if err := requireShopper(email); err != nil {
		return nil, err
	}
	c, err := s.carts.Get(ctx, email)
	if err != nil {
		return nil, err
	}
	if err := fn(c); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, c); err != nil {
		reportWriteFailure(ctx, s.notifier, "Failed to update cart", err)
		return nil, err
	}
	return c, nil
}

func (s *CheckoutService) ClearCart(ctx context.Context, email string) error {
	if err := requireShopper(email); err != nil {
		return err
	}
	return s.carts.Clear(ctx, email)
}

func (s *CheckoutService) Quote(ctx context.Context, email string) (models.Totals, error) {
	c, err := s.Cart(ctx, email)
	if err != nil {
		return models.Totals{}, err
	}
	return cart.Quote(c.Items), nil
}

// Checkout places an order for the shopper's cart and empties the cart.
func (s *CheckoutService) Checkout(ctx context.Context, email string, in CheckoutInput) (*models.Order, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err, cartMessages)
	}

	c, err := s.Cart(ctx, email)
	if err != nil {
		return nil, err
	}
	if len(c.Items) == 0 {
		return nil, fmt.Errorf("%w: cart is empty", repository.ErrInvalidInput)
	}

	totals := cart.Quote(c.Items)
	order, err := s.orders.Create(ctx, OrderInput{
		Items:           cart.OrderItems(c),
		Subtotal:        totals.Subtotal,
		Shipping:        totals.Shipping,
		Tax:             totals.Tax,
		Total:           totals.Total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	})
	if err != nil {
		return nil, err
	}

	if err := s.carts.Clear(ctx, email); err != nil {
		log.Printf("service: order %d placed but cart not cleared: %v", order.OrderID, err)
	}
	notify.Success(ctx, s.notifier, "Order placed successfully")
	return order, nil
}

// Wishlist returns the wishlisted products that still exist.
func (s *CheckoutService) Wishlist(ctx context.Context, email string) ([]models.Product, error) {
	if err := requireShopper(email); err != nil {
		return nil, err
	}
	ids, err := s.wishlist.List(ctx, email)
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		p, err := s.products.GetByID(ctx, id)
		if err != nil {
			log.Printf("service: wishlist product %d: %v", id, err)
			continue
		}
		products = append(products, *p)
	}
	return products, nil
}

func (s *CheckoutService) AddToWishlist(ctx context.Context, email string, productID int) error {
	if err := requireShopper(email); err != nil {
		return err
	}
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return err
	}
	return s.wishlist.Add(ctx, email, productID)
}

func (s *CheckoutService) RemoveFromWishlist(ctx context.Context, email string, productID int) error {
	if err := requireShopper(email); err != nil {
		return err
	}
	return s.wishlist.Remove(ctx, email, productID)
}

func (s *CheckoutService) InWishlist(ctx context.Context, email string, productID int) (bool, error) {
	if err := requireShopper(email); err != nil {
		return false, err
	}
	return s.wishlist.Contains(ctx, email, productID)
}
