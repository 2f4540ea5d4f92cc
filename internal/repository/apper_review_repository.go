package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-service/internal/apper"
	"storefront-service/internal/models"
)

type apperReviewRepo struct {
	client apper.Client
	now    func() time.Time
}

func NewApperReviewRepository(client apper.Client) ReviewRepository {
	return &apperReviewRepo{client: client, now: time.Now}
}

var reviewFields = []apper.Field{
	{Name: colProductID, Reference: colName},
	{Name: colUserEmail},
	{Name: colUserName},
	{Name: colRating},
	{Name: colComment},
	{Name: colVerified},
	{Name: apper.FieldCreatedOn},
	{Name: apper.FieldModifiedOn},
}

func (r *apperReviewRepo) GetByProductID(ctx context.Context, productID int) ([]models.Review, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: product ID must be positive", ErrInvalidInput)
	}
	records, err := fetch(ctx, r.client, tableReviews, apper.FetchParams{
		Fields:  reviewFields,
		Where:   []apper.Condition{exactMatch(colProductID, productID)},
		OrderBy: newestFirst(),
	})
	if err != nil {
		return nil, err
	}
	return reviewsFromRecords(records, productID), nil
}

func (r *apperReviewRepo) GetByUser(ctx context.Context, email string) ([]models.Review, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}
	records, err := fetch(ctx, r.client, tableReviews, apper.FetchParams{
		Fields:  reviewFields,
		Where:   []apper.Condition{exactMatch(colUserEmail, email)},
		OrderBy: newestFirst(),
	})
	if err != nil {
		return nil, err
	}
	return reviewsFromRecords(records, 0), nil
}

func (r *apperReviewRepo) Create(ctx context.Context, review *models.Review) error {
	if r.client == nil {
		return ErrBackendUnavailable
	}

	now := r.now()
	rec, err := mutateOne(ctx, "create review", tableReviews, r.client.CreateRecord, apper.Record{
		colProductID: review.ProductID,
		colUserEmail: review.UserEmail,
		colUserName:  review.UserName,
		colRating:    review.Rating,
		colComment:   review.Comment,
		colVerified:  review.Verified,
	})
	if err != nil {
		return err
	}

	created := reviewFromRecord(rec, review.ProductID)
	review.ReviewID = created.ReviewID
	review.CreatedAt = created.CreatedAt
	review.UpdatedAt = created.UpdatedAt
	if review.CreatedAt.IsZero() {
		review.CreatedAt = now
		review.UpdatedAt = now
	}
	return nil
}

func (r *apperReviewRepo) Update(ctx context.Context, id int, update models.ReviewUpdate) (*models.Review, error) {
	if r.client == nil {
		return nil, ErrBackendUnavailable
	}
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	rec := apper.Record{apper.FieldID: id}
	if update.Rating != nil {
		rec[colRating] = *update.Rating
	}
	if update.Comment != nil {
		rec[colComment] = *update.Comment
	}
	if update.UserName != nil {
		rec[colUserName] = *update.UserName
	}

	updated, err := mutateOne(ctx, "update review", tableReviews, r.client.UpdateRecord, rec)
	if err != nil {
		return nil, err
	}
	review := reviewFromRecord(updated, 0)
	return &review, nil
}

func (r *apperReviewRepo) Delete(ctx context.Context, id int) error {
	if r.client == nil {
		return ErrBackendUnavailable
	}
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	resp, err := r.client.DeleteRecord(ctx, tableReviews, []int{id})
	if err != nil {
		return fmt.Errorf("%w: delete review: %v", ErrBackendUnavailable, err)
	}
	_, err = checkMutation("delete review", resp)
	return err
}

func reviewsFromRecords(records []apper.Record, productID int) []models.Review {
	reviews := make([]models.Review, 0, len(records))
	for _, rec := range records {
		reviews = append(reviews, reviewFromRecord(rec, productID))
	}
	return reviews
}

// reviewFromRecord maps a stored review. The product reference falls back
// to productID when the lookup column carries no id.
func reviewFromRecord(rec apper.Record, productID int) models.Review {
	review := models.Review{
		ReviewID:  recordInt(rec[apper.FieldID]),
		ProductID: productID,
		UserEmail: recordString(rec[colUserEmail]),
		UserName:  recordString(rec[colUserName]),
		Rating:    recordInt(rec[colRating]),
		Comment:   recordString(rec[colComment]),
		Verified:  recordBool(rec[colVerified]),
		CreatedAt: recordTime(rec[apper.FieldCreatedOn]),
		UpdatedAt: recordTime(rec[apper.FieldModifiedOn]),
	}
	if id, ok := recordLookupID(rec[colProductID]); ok {
		review.ProductID = id
	}
	return review
}
