package reviews

import (
	"testing"

	"storefront-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func withRatings(ratings ...int) []models.Review {
	out := make([]models.Review, 0, len(ratings))
	for _, r := range ratings {
		out = append(out, models.Review{Rating: r})
	}
	return out
}

func TestAggregate(t *testing.T) {
	stats := Aggregate(withRatings(5, 5, 4, 3, 5))

	assert.Equal(t, 4.4, stats.AverageRating)
	assert.Equal(t, 5, stats.TotalReviews)
	assert.Equal(t, map[int]int{5: 3, 4: 1, 3: 1, 2: 0, 1: 0}, stats.RatingBreakdown)
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil)

	assert.Equal(t, 0.0, stats.AverageRating)
	assert.Equal(t, 0, stats.TotalReviews)
	assert.Equal(t, map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}, stats.RatingBreakdown)
}

func TestAggregate_Rounding(t *testing.T) {
	assert.Equal(t, 4.7, Aggregate(withRatings(5, 5, 4)).AverageRating)
	assert.Equal(t, 3.5, Aggregate(withRatings(4, 3)).AverageRating)
}

func TestAggregate_OutOfRange(t *testing.T) {
	stats := Aggregate(withRatings(5, 7))

	assert.Equal(t, 6.0, stats.AverageRating)
	assert.Equal(t, 2, stats.TotalReviews)
	assert.Equal(t, 1, stats.RatingBreakdown[5])
	assert.NotContains(t, stats.RatingBreakdown, 7)
}

func TestValidRating(t *testing.T) {
	assert.False(t, ValidRating(0))
	assert.True(t, ValidRating(1))
	assert.True(t, ValidRating(5))
	assert.False(t, ValidRating(6))
}
