package models

import "time"

type Review struct {
	ReviewID  int       `json:"Id"`
	ProductID int       `json:"productId"`
	UserEmail string    `json:"userEmail"`
	UserName  string    `json:"userName"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	Verified  bool      `json:"verified"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ReviewUpdate carries the fields a review author may change. Nil fields
// are left untouched.
type ReviewUpdate struct {
	Rating   *int    `json:"rating,omitempty"`
	Comment  *string `json:"comment,omitempty"`
	UserName *string `json:"userName,omitempty"`
}

type ReviewStats struct {
	AverageRating   float64     `json:"averageRating"`
	TotalReviews    int         `json:"totalReviews"`
	RatingBreakdown map[int]int `json:"ratingBreakdown"`
}

func EmptyReviewStats() ReviewStats {
	return ReviewStats{RatingBreakdown: map[int]int{5: 0, 4: 0, 3: 0, 2: 0, 1: 0}}
}
