package service

import (
	"context"
	"errors"
	"fmt"

	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/repository"
)

const msgLoadProductsFailed = "Failed to load products"

type ProductService struct {
	repo     repository.ProductRepository
	notifier notify.Notifier
}

func NewProductService(repo repository.ProductRepository, n notify.Notifier) *ProductService {
	return &ProductService{repo: repo, notifier: notifierOrDefault(n)}
}

func (s *ProductService) List(ctx context.Context, filter repository.ProductFilter) []models.Product {
	products, err := s.repo.GetAll(ctx, filter)
	if err != nil {
		reportReadFailure(ctx, s.notifier, msgLoadProductsFailed, err)
		return []models.Product{}
	}
	return products
}

func (s *ProductService) Featured(ctx context.Context, limit int) []models.Product {
	products, err := s.repo.GetFeatured(ctx, limit)
	if err != nil {
		reportReadFailure(ctx, s.notifier, msgLoadProductsFailed, err)
		return []models.Product{}
	}
	return products
}

func (s *ProductService) ByCategory(ctx context.Context, category string) []models.Product {
	products, err := s.repo.GetByCategory(ctx, category)
	if err != nil {
		reportReadFailure(ctx, s.notifier, msgLoadProductsFailed, err)
		return []models.Product{}
	}
	return products
}

func (s *ProductService) Related(ctx context.Context, productID, limit int) []models.Product {
	products, err := s.repo.GetRelated(ctx, productID, limit)
	if err != nil {
		reportReadFailure(ctx, s.notifier, msgLoadProductsFailed, err)
		return []models.Product{}
	}
	return products
}

// Get reports any failure other than bad input as not found.
func (s *ProductService) Get(ctx context.Context, id int) (*models.Product, error) {
	product, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidInput) {
			return nil, err
		}
		reportReadFailure(ctx, s.notifier, "", err)
		return nil, fmt.Errorf("%w: product %d", repository.ErrNotFound, id)
	}
	return product, nil
}
