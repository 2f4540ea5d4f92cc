package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"storefront-service/internal/models"
	"storefront-service/internal/notify"
	"storefront-service/internal/repository"
	"storefront-service/internal/reviews"
)

const defaultReviewerName = "Anonymous"

type ReviewInput struct {
	ProductID int    `json:"productId" validate:"required,gt=0"`
	UserEmail string `json:"userEmail" validate:"required,email"`
	UserName  string `json:"userName" validate:"max=100"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

var reviewMessages = map[string]string{
	"ProductID": "product is required",
	"UserEmail": "a valid email is required",
	"Rating":    "Rating must be between 1 and 5",
}

// PurchaseChecker tells whether a shopper bought a product.
type PurchaseChecker interface {
	HasPurchased(ctx context.Context, email string, productID int) (bool, error)
}

type ReviewService struct {
	repo     repository.ReviewRepository
	orders   PurchaseChecker
	notifier notify.Notifier
}

// NewReviewService builds the service. With a nil checker every new
// review is marked verified.
func NewReviewService(repo repository.ReviewRepository, orders PurchaseChecker, n notify.Notifier) *ReviewService {
	return &ReviewService{repo: repo, orders: orders, notifier: notifierOrDefault(n)}
}

func (s *ReviewService) ForProduct(ctx context.Context, productID int) []models.Review {
	list, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		reportReadFailure(ctx, s.notifier, "", err)
		return []models.Review{}
	}
	return list
}

func (s *ReviewService) ForUser(ctx context.Context, email string) []models.Review {
	list, err := s.repo.GetByUser(ctx, email)
	if err != nil {
		reportReadFailure(ctx, s.notifier, "", err)
		return []models.Review{}
	}
	return list
}

func (s *ReviewService) Create(ctx context.Context, in ReviewInput) (*models.Review, error) {
	if err := validate.Struct(in); err != nil {
		return nil, validationError(err, reviewMessages)
	}

	existing, err := s.repo.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if strings.EqualFold(r.UserEmail, in.UserEmail) {
			return nil, fmt.Errorf("%w: You have already reviewed this product", repository.ErrDuplicate)
		}
	}

	review := &models.Review{
		ProductID: in.ProductID,
		UserEmail: in.UserEmail,
		UserName:  strings.TrimSpace(in.UserName),
		Rating:    in.Rating,
		Comment:   strings.TrimSpace(in.Comment),
		Verified:  s.verified(ctx, in.UserEmail, in.ProductID),
	}
	if review.UserName == "" {
		review.UserName = defaultReviewerName
	}

	if err := s.repo.Create(ctx, review); err != nil {
		reportWriteFailure(ctx, s.notifier, "Failed to create review", err)
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) verified(ctx context.Context, email string, productID int) bool {
	if s.orders == nil {
		return true
	}
	ok, err := s.orders.HasPurchased(ctx, email, productID)
	if err != nil {
		log.Printf("service: purchase check for %s on product %d: %v", email, productID, err)
		return false
	}
	return ok
}

func (s *ReviewService) Update(ctx context.Context, id int, update models.ReviewUpdate) (*models.Review, error) {
	if update.Rating != nil && !reviews.ValidRating(*update.Rating) {
		return nil, fmt.Errorf("%w: %s", repository.ErrInvalidInput, reviewMessages["Rating"])
	}
	if update.Comment != nil {
		trimmed := strings.TrimSpace(*update.Comment)
		update.Comment = &trimmed
	}

	review, err := s.repo.Update(ctx, id, update)
	if err != nil {
		reportWriteFailure(ctx, s.notifier, "Failed to update review", err)
		return nil, err
	}
	return review, nil
}

func (s *ReviewService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		reportWriteFailure(ctx, s.notifier, "Failed to delete review", err)
		return err
	}
	return nil
}

// Stats aggregates a product's reviews. A failed read yields zero stats.
func (s *ReviewService) Stats(ctx context.Context, productID int) models.ReviewStats {
	list, err := s.repo.GetByProductID(ctx, productID)
	if err != nil {
		reportReadFailure(ctx, s.notifier, "", err)
		return models.EmptyReviewStats()
	}
	return reviews.Aggregate(list)
}
