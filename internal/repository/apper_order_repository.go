package repository

import (
	"context"
	"fmt"
	"log"

	"storefront-service/internal/apper"
	"storefront-service/internal/models"
)

type apperOrderRepo struct {
	client apper.Client
}

func NewApperOrderRepository(client apper.Client) OrderRepository {
	return &apperOrderRepo{client: client}
}

var orderFields = apper.Fields(
	colUserEmail,
	colStatus,
	colItems,
	colSubtotal,
	colShipping,
	colTax,
	colTotal,
	colShippingAddress,
	colPaymentMethod,
	apper.FieldCreatedOn,
)

func (r *apperOrderRepo) Create(ctx context.Context, order *models.Order) error {
	if r.client == nil {
		return ErrBackendUnavailable
	}

	items, err := encodeJSONColumn(order.Items)
	if err != nil {
		return fmt.Errorf("%w: encode items: %v", ErrInvalidInput, err)
	}
	address, err := encodeJSONColumn(order.ShippingAddress)
	if err != nil {
		return fmt.Errorf("%w: encode shipping address: %v", ErrInvalidInput, err)
	}

	rec, err := mutateOne(ctx, "create order", tableOrders, r.client.CreateRecord, apper.Record{
		colUserEmail:       order.UserEmail,
		colStatus:          string(order.Status),
		colItems:           items,
		colSubtotal:        order.Subtotal,
		colShipping:        order.Shipping,
		colTax:             order.Tax,
		colTotal:           order.Total,
		colShippingAddress: address,
		colPaymentMethod:   order.PaymentMethod,
	})
	if err != nil {
		return err
	}

	order.OrderID = recordInt(rec[apper.FieldID])
	order.CreatedAt = recordTime(rec[apper.FieldCreatedOn])
	return nil
}

func (r *apperOrderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	rec, err := fetchByID(ctx, r.client, tableOrders, id, apper.FetchParams{Fields: orderFields})
	if err != nil {
		return nil, err
	}
	order := orderFromRecord(rec)
	return &order, nil
}

func (r *apperOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	return r.list(ctx, apper.FetchParams{
		Fields:  orderFields,
		OrderBy: newestFirst(),
	})
}

func (r *apperOrderRepo) GetByUser(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}
	return r.list(ctx, apper.FetchParams{
		Fields:  orderFields,
		Where:   []apper.Condition{exactMatch(colUserEmail, email)},
		OrderBy: newestFirst(),
	})
}

// HasPurchased reports whether any of the shopper's orders contains the
// product. Items live in a JSON column, so the match happens here.
func (r *apperOrderRepo) HasPurchased(ctx context.Context, email string, productID int) (bool, error) {
	orders, err := r.GetByUser(ctx, email)
	if err != nil {
		return false, err
	}
	for _, o := range orders {
		if o.HasProduct(productID) {
			return true, nil
		}
	}
	return false, nil
}

func (r *apperOrderRepo) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: unknown order status %q", ErrInvalidInput, status)
	}
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}

	_, err := mutateOne(ctx, "update order status", tableOrders, r.client.UpdateRecord, apper.Record{
		apper.FieldID: id,
		colStatus:     string(status),
	})
	return err
}

func (r *apperOrderRepo) list(ctx context.Context, params apper.FetchParams) ([]models.Order, error) {
	records, err := fetch(ctx, r.client, tableOrders, params)
	if err != nil {
		return nil, err
	}
	orders := make([]models.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, orderFromRecord(rec))
	}
	return orders, nil
}

// orderFromRecord maps a stored order. A corrupt JSON column leaves the
// corresponding field empty.
func orderFromRecord(rec apper.Record) models.Order {
	order := models.Order{
		OrderID:       recordInt(rec[apper.FieldID]),
		UserEmail:     recordString(rec[colUserEmail]),
		Status:        models.OrderStatus(recordString(rec[colStatus])),
		Items:         []models.OrderItem{},
		Subtotal:      recordFloat(rec[colSubtotal]),
		Shipping:      recordFloat(rec[colShipping]),
		Tax:           recordFloat(rec[colTax]),
		Total:         recordFloat(rec[colTotal]),
		PaymentMethod: recordString(rec[colPaymentMethod]),
		CreatedAt:     recordTime(rec[apper.FieldCreatedOn]),
	}

	if err := decodeJSONColumn(rec[colItems], &order.Items); err != nil {
		log.Printf("orders: order %d has unreadable items: %v", order.OrderID, err)
		order.Items = []models.OrderItem{}
	}
	if order.Items == nil {
		order.Items = []models.OrderItem{}
	}
	if err := decodeJSONColumn(rec[colShippingAddress], &order.ShippingAddress); err != nil {
		log.Printf("orders: order %d has unreadable shipping address: %v", order.OrderID, err)
		order.ShippingAddress = models.ShippingAddress{}
	}
	return order
}
