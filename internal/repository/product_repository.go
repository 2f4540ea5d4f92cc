package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"storefront-service/internal/models"

	"github.com/jackc/pgx/v5"
)

type productRepo struct {
	db DB
}

func NewProductRepository(db DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `
		product_id,
		name,
		description,
		price,
		original_price,
		category,
		images,
		rating,
		stock,
		sizes,
		colors,
		featured,
		tags,
		created_at`

func (r *productRepo) GetAll(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if len(f.Categories) > 0 {
		where = append(where, "category = ANY("+arg(f.Categories)+"::text[])")
	}
	if f.Search != "" {
		p := arg("%" + f.Search + "%")
		where = append(where, fmt.Sprintf("(name ILIKE %[1]s OR description ILIKE %[1]s OR category ILIKE %[1]s)", p))
	}
	if f.MinPrice != nil {
		where = append(where, "price >= "+arg(*f.MinPrice))
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= "+arg(*f.MaxPrice))
	}
	if len(f.Sizes) > 0 {
		where = append(where, "sizes && "+arg(f.Sizes)+"::text[]")
	}
	if len(f.Colors) > 0 {
		where = append(where, "colors && "+arg(f.Colors)+"::text[]")
	}
	if f.Sale {
		where = append(where, "original_price IS NOT NULL AND price < original_price")
	}

	sql := "SELECT" + productColumns + "\n\tFROM products"
	if len(where) > 0 {
		sql += "\n\tWHERE " + strings.Join(where, " AND ")
	}
	sql += "\n\tORDER BY " + productOrderClause(f.SortBy)
	sql += "\n\tLIMIT " + arg(productListLimit)

	return r.query(ctx, "get all products", sql, args...)
}

func productOrderClause(sort SortBy) string {
	switch sort {
	case SortPriceLow:
		return "price ASC, product_id"
	case SortPriceHigh:
		return "price DESC, product_id"
	case SortName:
		return "name ASC, product_id"
	case SortRating:
		return "rating DESC, product_id"
	case SortNewest:
		return "created_at DESC, product_id DESC"
	}
	return "product_id"
}

func (r *productRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := "SELECT" + productColumns + "\n\tFROM products WHERE product_id = $1"

	p, err := scanProduct(r.db.QueryRow(ctx, sql, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dbError(fmt.Sprintf("failed to get product by id %d", id), err)
	}

	return p, nil
}

func (r *productRepo) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}

	sql := "SELECT" + productColumns + `
	FROM products
	WHERE featured = TRUE
	ORDER BY product_id
	LIMIT $1`

	return r.query(ctx, "get featured products", sql, limit)
}

func (r *productRepo) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category cannot be empty", ErrInvalidInput)
	}

	sql := "SELECT" + productColumns + `
	FROM products
	WHERE category = $1
	ORDER BY product_id`

	return r.query(ctx, "get products with category", sql, category)
}

func (r *productRepo) GetRelated(ctx context.Context, productID int, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	current, err := r.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	sql := "SELECT" + productColumns + `
	FROM products
	WHERE category = $1 AND product_id <> $2
	ORDER BY product_id
	LIMIT $3`

	return r.query(ctx, "get related products", sql, current.Category, productID, limit)
}

func (r *productRepo) query(ctx context.Context, op, sql string, args ...any) ([]models.Product, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("failed to "+op, err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan products: %w", err)
		}
		products = append(products, *p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (*models.Product, error) {
	var (
		p      models.Product
		colors []string
	)
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.OriginalPrice,
		&p.Category,
		&p.Images,
		&p.Rating,
		&p.Stock,
		&p.Sizes,
		&colors,
		&p.Featured,
		&p.Tags,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.Colors = make([]models.Color, 0, len(colors))
	for _, name := range colors {
		p.Colors = append(p.Colors, models.NewColor(name))
	}
	return &p, nil
}
