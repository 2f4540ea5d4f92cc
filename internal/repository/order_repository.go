package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/jackc/pgx/v5/pgtype"
)

type orderRepo struct {
	db  DB
	now func() time.Time
}

func NewOrderRepository(db DB) OrderRepository {
	return &orderRepo{db: db, now: time.Now}
}

const orderColumns = `
		o.order_id,
		o.user_email,
		o.status,
		o.subtotal,
		o.shipping,
		o.tax,
		o.total,
		o.ship_first_name,
		o.ship_last_name,
		o.ship_email,
		o.ship_phone,
		o.ship_address,
		o.ship_city,
		o.ship_state,
		o.ship_zip_code,
		o.ship_country,
		o.payment_method,
		o.created_at`

func (r *orderRepo) Create(ctx context.Context, order *models.Order) error {
	if order == nil {
		return fmt.Errorf("%w: order cannot be nil", ErrInvalidInput)
	}
	if order.UserEmail == "" {
		return fmt.Errorf("%w: user email cannot be empty", ErrInvalidInput)
	}
	if len(order.Items) == 0 {
		return fmt.Errorf("%w: order must contain items", ErrInvalidInput)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return dbError("failed to create transaction", err)
	}
	defer tx.Rollback(ctx)

	insert := `INSERT INTO orders (
		user_email,
		status,
		subtotal,
		shipping,
		tax,
		total,
		ship_first_name,
		ship_last_name,
		ship_email,
		ship_phone,
		ship_address,
		ship_city,
		ship_state,
		ship_zip_code,
		ship_country,
		payment_method,
		created_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
	RETURNING order_id
	`

	var (
		a         = order.ShippingAddress
		orderID   int
		createdAt = r.now()
	)

	err = tx.QueryRow(ctx, insert,
		order.UserEmail,
		string(order.Status),
		order.Subtotal,
		order.Shipping,
		order.Tax,
		order.Total,
		a.FirstName,
		a.LastName,
		a.Email,
		a.Phone,
		a.Address,
		a.City,
		a.State,
		a.ZipCode,
		a.Country,
		order.PaymentMethod,
		createdAt,
	).Scan(&orderID)
	if err != nil {
		return dbError("failed to create order", err)
	}

	insertItem := `INSERT INTO order_items (order_id, product_id, name, price, quantity, size, color, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	for _, item := range order.Items {
		_, err = tx.Exec(ctx, insertItem,
			orderID,
			item.ProductID,
			item.Name,
			item.Price,
			item.Quantity,
			item.Size,
			item.Color,
			item.Image,
		)
		if err != nil {
			return dbError("failed to create order item", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return dbError("failed to commit transaction", err)
	}

	order.OrderID = orderID
	order.CreatedAt = createdAt
	return nil
}

func (r *orderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: order ID must be positive", ErrInvalidInput)
	}

	sql := `SELECT` + orderColumns + `,
		oi.product_id,
		oi.name,
		oi.price,
		oi.quantity,
		oi.size,
		oi.color,
		oi.image
	FROM orders o
	LEFT JOIN order_items oi ON o.order_id = oi.order_id
	WHERE o.order_id = $1
	ORDER BY oi.order_item_id
	`

	rows, err := r.db.Query(ctx, sql, id)
	if err != nil {
		return nil, dbError(fmt.Sprintf("failed to get order with items %d", id), err)
	}
	defer rows.Close()

	var order *models.Order

	for rows.Next() {
		var (
			current   models.Order
			productID pgtype.Int4
			name      pgtype.Text
			price     pgtype.Float8
			quantity  pgtype.Int4
			size      pgtype.Text
			color     pgtype.Text
			image     pgtype.Text
		)

		dest := append(orderScanDest(&current),
			&productID,
			&name,
			&price,
			&quantity,
			&size,
			&color,
			&image,
		)
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan order/item: %w", err)
		}

		if order == nil {
			current.Items = []models.OrderItem{}
			order = &current
		}
		if productID.Valid {
			order.Items = append(order.Items, models.OrderItem{
				ProductID: int(productID.Int32),
				Name:      name.String,
				Price:     price.Float64,
				Quantity:  int(quantity.Int32),
				Size:      size.String,
				Color:     color.String,
				Image:     image.String,
			})
		}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}

	if order == nil {
		return nil, ErrNotFound
	}

	return order, nil
}

func (r *orderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	sql := `SELECT` + orderColumns + `
	FROM orders o
	ORDER BY o.created_at DESC, o.order_id DESC`

	return r.list(ctx, "get all orders", sql)
}

func (r *orderRepo) GetByUser(ctx context.Context, email string) ([]models.Order, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + orderColumns + `
	FROM orders o
	WHERE o.user_email = $1
	ORDER BY o.created_at DESC, o.order_id DESC`

	return r.list(ctx, "get orders by user", sql, email)
}

func (r *orderRepo) HasPurchased(ctx context.Context, email string, productID int) (bool, error) {
	if email == "" || productID <= 0 {
		return false, nil
	}

	sql := `SELECT EXISTS(
		SELECT 1 FROM orders o
		JOIN order_items oi ON o.order_id = oi.order_id
		WHERE o.user_email = $1 AND oi.product_id = $2
	)`

	var exists bool
	if err := r.db.QueryRow(ctx, sql, email, productID).Scan(&exists); err != nil {
		return false, dbError("failed to check purchase", err)
	}
	return exists, nil
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: invalid status '%s'", ErrInvalidInput, status)
	}

	sql := `UPDATE orders
		SET status = $1
		WHERE order_id = $2
		`

	result, err := r.db.Exec(ctx, sql, string(status), id)
	if err != nil {
		return dbError(fmt.Sprintf("update status order %d", id), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// list loads the orders of sql and then their items in a single query.
func (r *orderRepo) list(ctx context.Context, op, sql string, args ...any) ([]models.Order, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("failed to "+op, err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		var o models.Order
		if err := rows.Scan(orderScanDest(&o)...); err != nil {
			return nil, fmt.Errorf("failed to scan orders: %w", err)
		}
		o.Items = []models.OrderItem{}
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}
	rows.Close()

	if len(orders) == 0 {
		return orders, nil
	}
	if err := r.loadItems(ctx, orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *orderRepo) loadItems(ctx context.Context, orders []models.Order) error {
	ids := make([]int, 0, len(orders))
	index := make(map[int]int, len(orders))
	for i, o := range orders {
		ids = append(ids, o.OrderID)
		index[o.OrderID] = i
	}

	sql := `SELECT
		order_id,
		product_id,
		name,
		price,
		quantity,
		size,
		color,
		image
	FROM order_items
	WHERE order_id = ANY($1::int[])
	ORDER BY order_item_id`

	rows, err := r.db.Query(ctx, sql, ids)
	if err != nil {
		return dbError("failed to get order items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID int
			item    models.OrderItem
		)
		err := rows.Scan(
			&orderID,
			&item.ProductID,
			&item.Name,
			&item.Price,
			&item.Quantity,
			&item.Size,
			&item.Color,
			&item.Image,
		)
		if err != nil {
			return fmt.Errorf("failed to scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, item)
		}
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to complete row iteration: %w", err)
	}
	return nil
}

func orderScanDest(o *models.Order) []any {
	a := &o.ShippingAddress
	return []any{
		&o.OrderID,
		&o.UserEmail,
		&o.Status,
		&o.Subtotal,
		&o.Shipping,
		&o.Tax,
		&o.Total,
		&a.FirstName,
		&a.LastName,
		&a.Email,
		&a.Phone,
		&a.Address,
		&a.City,
		&a.State,
		&a.ZipCode,
		&a.Country,
		&o.PaymentMethod,
		&o.CreatedAt,
	}
}
