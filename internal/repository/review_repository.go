package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"storefront-service/internal/models"

	"github.com/jackc/pgx/v5"
)

type reviewRepo struct {
	db  DB
	now func() time.Time
}

func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepo{db: db, now: time.Now}
}

const reviewColumns = `
		review_id,
		product_id,
		user_email,
		user_name,
		rating,
		comment,
		verified,
		created_at,
		updated_at`

func (r *reviewRepo) GetByProductID(ctx context.Context, productID int) ([]models.Review, error) {
	if productID <= 0 {
		return nil, fmt.Errorf("%w: product ID must be positive", ErrInvalidInput)
	}

	sql := `SELECT` + reviewColumns + `
	FROM reviews
	WHERE product_id = $1
	ORDER BY created_at DESC, review_id DESC`

	return r.query(ctx, "get reviews by product", sql, productID)
}

func (r *reviewRepo) GetByUser(ctx context.Context, email string) ([]models.Review, error) {
	if email == "" {
		return nil, fmt.Errorf("%w: email cannot be empty", ErrInvalidInput)
	}

	sql := `SELECT` + reviewColumns + `
	FROM reviews
	WHERE user_email = $1
	ORDER BY created_at DESC, review_id DESC`

	return r.query(ctx, "get reviews by user", sql, email)
}

func (r *reviewRepo) Create(ctx context.Context, review *models.Review) error {
	if review.ProductID <= 0 || review.UserEmail == "" {
		return fmt.Errorf("%w: product ID and user email are required", ErrInvalidInput)
	}

	sql := `
		INSERT INTO reviews (
			product_id,
			user_email,
			user_name,
			rating,
			comment,
			verified,
			created_at,
			updated_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING review_id
	`

	now := r.now()
	review.CreatedAt = now
	review.UpdatedAt = now

	err := r.db.QueryRow(ctx, sql,
		review.ProductID,
		review.UserEmail,
		review.UserName,
		review.Rating,
		review.Comment,
		review.Verified,
		review.CreatedAt,
		review.UpdatedAt,
	).Scan(&review.ReviewID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: user has already reviewed this product", ErrDuplicate)
		}
		return dbError("failed to create review", err)
	}

	return nil
}

func (r *reviewRepo) Update(ctx context.Context, id int, update models.ReviewUpdate) (*models.Review, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `
	UPDATE reviews
	SET
		rating = COALESCE($1, rating),
		comment = COALESCE($2, comment),
		user_name = COALESCE($3, user_name),
		updated_at = $4
	WHERE review_id = $5
	RETURNING` + reviewColumns

	review, err := scanReview(r.db.QueryRow(ctx, sql,
		update.Rating,
		update.Comment,
		update.UserName,
		r.now(),
		id,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, dbError(fmt.Sprintf("failed to update review %d", id), err)
	}

	return review, nil
}

func (r *reviewRepo) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return fmt.Errorf("%w: ID must be positive", ErrInvalidInput)
	}

	sql := `DELETE FROM reviews WHERE review_id = $1`

	result, err := r.db.Exec(ctx, sql, id)
	if err != nil {
		return dbError(fmt.Sprintf("failed to delete review %d", id), err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *reviewRepo) query(ctx context.Context, op, sql string, args ...any) ([]models.Review, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, dbError("failed to "+op, err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		review, err := scanReview(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reviews: %w", err)
		}
		reviews = append(reviews, *review)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to complete row iteration: %w", err)
	}

	return reviews, nil
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var review models.Review
	err := row.Scan(
		&review.ReviewID,
		&review.ProductID,
		&review.UserEmail,
		&review.UserName,
		&review.Rating,
		&review.Comment,
		&review.Verified,
		&review.CreatedAt,
		&review.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &review, nil
}
