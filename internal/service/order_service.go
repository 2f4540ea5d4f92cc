package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"storefront-service/internal/events"
	"storefront-service/internal/history"
	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/repository"
	"storefront-service/internal/tracking"
)

type OrderInput struct {
	Items           []models.OrderItem     `json:"items" validate:"required,min=1,dive"`
	Subtotal        float64                `json:"subtotal" validate:"gte=0"`
	Shipping        float64                `json:"shipping" validate:"gte=0"`
	Tax             float64                `json:"tax" validate:"gte=0"`
	Total           float64                `json:"total" validate:"gte=0"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod" validate:"required"`
}

var orderMessages = map[string]string{
	"Items":         "order must contain at least one item",
	"PaymentMethod": "payment method is required",
	"Email":         "a valid shipping email is required",
}

type OrderService struct {
	repo      repository.OrderRepository
	publisher events.Publisher
	notifier  notify.Notifier
	now       func() time.Time
}

func NewOrderService(repo repository.OrderRepository, publisher events.Publisher, n notify.Notifier) *OrderService {
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}
	return &OrderService{repo: repo, publisher: publisher, notifier: notifierOrDefault(n), now: time.Now}
}

func (s *OrderService) ForUser(ctx context.Context, email string) []models.Order {
	orders, err := s.repo.GetByUser(ctx, email)
	if err != nil {
		reportReadFailure(ctx, s.notifier, "", err)
		return []models.Order{}
	}
	return orders
}

func (s *OrderService) All(ctx context.Context) []models.Order {
	orders, err := s.repo.GetAll(ctx)
	if err != nil {
		reportReadFailure(ctx, s.notifier, "", err)
		return []models.Order{}
	}
	return orders
}

// Get reports any failure other than bad input as not found.
func (s *OrderService) Get(ctx context.Context, id int) (*models.Order, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, err
		}
		reportReadFailure(ctx, s.notifier, "", err)
		return nil, fmt.Errorf("%w: Order not found", repository.ErrNotFound)
	}
	return order, nil
}

func (s *OrderService) HasPurchased(ctx context.Context, email string, productID int) (bool, error) {
	return s.repo.HasPurchased(ctx, email, productID)
}

// Create stores a new confirmed order owned by the shipping address's
// email and announces it.
func (s *OrderService) Create(ctx context.Context, in OrderInput) (*models.Order, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err, orderMessages)
	}

	order := &models.Order{
		UserEmail:       in.ShippingAddress.Email,
		Status:          models.OrderStatusConfirmed,
		Items:           in.Items,
		Subtotal:        in.Subtotal,
		Shipping:        in.Shipping,
		Tax:             in.Tax,
		Total:           in.Total,
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
	}

	if err := s.repo.Create(ctx, order); err != nil {
		reportWriteFailure(ctx, s.notifier, "Failed to place order", err)
		return nil, err
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = s.now()
	}

	if err := s.publisher.PublishOrderPlaced(ctx, *order); err != nil {
		log.Printf("service: order %d placed but not announced: %v", order.OrderID, err)
	}
	return order, nil
}

// History returns one page of orders matching q. With all set it covers
// every shopper's orders.
func (s *OrderService) History(ctx context.Context, email string, all bool, q history.Query) history.Page {
	var orders []models.Order
	if all {
		orders = s.All(ctx)
	} else {
		orders = s.ForUser(ctx, email)
	}
	return history.Apply(orders, q, s.now())
}

func (s *OrderService) Track(ctx context.Context, id int) (*tracking.View, error) {
	order, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	view := tracking.Track(*order)
	return &view, nil
}

// ApplyStatusUpdate moves an order to status. It backs the status-update
// consumer.
func (s *OrderService) ApplyStatusUpdate(ctx context.Context, orderID int, status string) error {
	st, err := models.ParseOrderStatus(status)
	if err != nil {
		return fmt.Errorf("%w: %v", repository.ErrInvalidInput, err)
	}
	if orderID <= 0 {
		return fmt.Errorf("%w: order ID must be positive", repository.ErrInvalidInput)
	}
	return s.repo.UpdateStatus(ctx, orderID, st)
}
