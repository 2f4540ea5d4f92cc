package service

import (
	"context"
	"errors"
	"testing"

	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductService_ListSwallowsFailures(t *testing.T) {
	repo := &MockProductRepo{}
	repo.On("GetAll", repository.ProductFilter{Search: "coat"}).Return(nil, repository.ErrBackendUnavailable)

	ctx, collected := notify.WithCollector(context.Background())
	products := NewProductService(repo, nil).List(ctx, repository.ProductFilter{Search: "coat"})

	assert.NotNil(t, products)
	assert.Empty(t, products)
	assert.Equal(t, []string{"Failed to load products"}, collected.Messages(notify.LevelError))
	repo.AssertExpectations(t)
}

func TestProductService_Lookups(t *testing.T) {
	repo := &MockProductRepo{}
	coat := models.Product{ProductID: 3, Name: "Wool Coat"}
	repo.On("GetFeatured", 8).Return([]models.Product{coat}, nil)
	repo.On("GetByCategory", "Outerwear").Return(nil, errors.New("timeout"))
	repo.On("GetRelated", 3, 4).Return([]models.Product{}, nil)

	ctx, collected := notify.WithCollector(context.Background())
	s := NewProductService(repo, nil)

	assert.Equal(t, []models.Product{coat}, s.Featured(ctx, 8))
	assert.Empty(t, s.ByCategory(ctx, "Outerwear"))
	assert.Empty(t, s.Related(ctx, 3, 4))
	assert.Equal(t, []string{"Failed to load products"}, collected.Messages(notify.LevelError))
}

func TestProductService_Get(t *testing.T) {
	repo := &MockProductRepo{}
	repo.On("GetByID", 3).Return(&models.Product{ProductID: 3}, nil)
	repo.On("GetByID", 4).Return(nil, repository.ErrBackendUnavailable)
	repo.On("GetByID", 0).Return(nil, repository.ErrInvalidInput)

	s := NewProductService(repo, nil)

	p, err := s.Get(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, p.ProductID)

	_, err = s.Get(context.Background(), 4)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.Get(context.Background(), 0)
	assert.ErrorIs(t, err, repository.ErrInvalidInput)
}
