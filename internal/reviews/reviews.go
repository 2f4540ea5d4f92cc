// Package reviews summarises the ratings a product has received.
package reviews

import (
	"math"

	"storefront-service/internal/models"
)

const (
	MinRating = 1
	MaxRating = 5
)

// Aggregate counts reviews, averages their ratings to one decimal and
// builds a 1..5 histogram. Ratings outside 1..5 count toward the average
// and total but not the histogram.
func Aggregate(reviews []models.Review) models.ReviewStats {
	stats := models.EmptyReviewStats()
	if len(reviews) == 0 {
		return stats
	}

	sum := 0
	for _, r := range reviews {
		sum += r.Rating
		if r.Rating >= MinRating && r.Rating <= MaxRating {
			stats.RatingBreakdown[r.Rating]++
		}
	}

	stats.TotalReviews = len(reviews)
	stats.AverageRating = math.Round(float64(sum)/float64(len(reviews))*10) / 10
	return stats
}

func ValidRating(rating int) bool {
	return rating >= MinRating && rating <= MaxRating
}
