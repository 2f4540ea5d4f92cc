package repository

import (
	"context"

	"storefront-service/internal/models"
)

type SortBy string

const (
	SortPriceLow  SortBy = "price-low"
	SortPriceHigh SortBy = "price-high"
	SortName      SortBy = "name"
	SortRating    SortBy = "rating"
	SortNewest    SortBy = "newest"
)

type ProductFilter struct {
	Categories []string
	Search     string
	MinPrice   *float64
	MaxPrice   *float64
	Sizes      []string
	Colors     []string
	Sale       bool
	SortBy     SortBy
}

const (
	productListLimit     = 100
	DefaultFeaturedLimit = 8
	DefaultRelatedLimit  = 4
)

type ProductRepository interface {
	GetAll(ctx context.Context, filter ProductFilter) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	GetByCategory(ctx context.Context, category string) ([]models.Product, error)
	GetRelated(ctx context.Context, productID int, limit int) ([]models.Product, error)
}

// OrderRepository lists orders newest first.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, id int) (*models.Order, error)
	GetAll(ctx context.Context) ([]models.Order, error)
	GetByUser(ctx context.Context, email string) ([]models.Order, error)
	HasPurchased(ctx context.Context, email string, productID int) (bool, error)
	UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error
}

// ReviewRepository lists reviews newest first.
type ReviewRepository interface {
	GetByProductID(ctx context.Context, productID int) ([]models.Review, error)
	GetByUser(ctx context.Context, email string) ([]models.Review, error)
	Create(ctx context.Context, review *models.Review) error
	Update(ctx context.Context, id int, update models.ReviewUpdate) (*models.Review, error)
	Delete(ctx context.Context, id int) error
}
