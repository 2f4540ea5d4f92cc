package service

import (
	"context"

	"storefront-service/internal/models"
	"storefront-service/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockProductRepo struct {
	mock.Mock
}

func (m *MockProductRepo) GetAll(ctx context.Context, f repository.ProductFilter) ([]models.Product, error) {
	args := m.Called(f)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockProductRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	args := m.Called(id)
	p, _ := args.Get(0).(*models.Product)
	return p, args.Error(1)
}

func (m *MockProductRepo) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	args := m.Called(limit)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockProductRepo) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	args := m.Called(category)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

func (m *MockProductRepo) GetRelated(ctx context.Context, productID int, limit int) ([]models.Product, error) {
	args := m.Called(productID, limit)
	products, _ := args.Get(0).([]models.Product)
	return products, args.Error(1)
}

type MockOrderRepo struct {
	mock.Mock
}

func (m *MockOrderRepo) Create(ctx context.Context, order *models.Order) error {
	return m.Called(order).Error(0)
}

func (m *MockOrderRepo) GetByID(ctx context.Context, id int) (*models.Order, error) {
	args := m.Called(id)
	o, _ := args.Get(0).(*models.Order)
	return o, args.Error(1)
}

func (m *MockOrderRepo) GetAll(ctx context.Context) ([]models.Order, error) {
	args := m.Called()
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) GetByUser(ctx context.Context, email string) ([]models.Order, error) {
	args := m.Called(email)
	orders, _ := args.Get(0).([]models.Order)
	return orders, args.Error(1)
}

func (m *MockOrderRepo) HasPurchased(ctx context.Context, email string, productID int) (bool, error) {
	args := m.Called(email, productID)
	return args.Bool(0), args.Error(1)
}

func (m *MockOrderRepo) UpdateStatus(ctx context.Context, id int, status models.OrderStatus) error {
	return m.Called(id, status).Error(0)
}

type MockReviewRepo struct {
	mock.Mock
}

func (m *MockReviewRepo) GetByProductID(ctx context.Context, productID int) ([]models.Review, error) {
	args := m.Called(productID)
	list, _ := args.Get(0).([]models.Review)
	return list, args.Error(1)
}

func (m *MockReviewRepo) GetByUser(ctx context.Context, email string) ([]models.Review, error) {
	args := m.Called(email)
	list, _ := args.Get(0).([]models.Review)
	return list, args.Error(1)
}

func (m *MockReviewRepo) Create(ctx context.Context, review *models.Review) error {
	return m.Called(review).Error(0)
}

func (m *MockReviewRepo) Update(ctx context.Context, id int, update models.ReviewUpdate) (*models.Review, error) {
	args := m.Called(id, update)
	r, _ := args.Get(0).(*models.Review)
	return r, args.Error(1)
}

func (m *MockReviewRepo) Delete(ctx context.Context, id int) error {
	return m.Called(id).Error(0)
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishOrderPlaced(ctx context.Context, order models.Order) error {
	return m.Called(order).Error(0)
}
