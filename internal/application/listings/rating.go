package listings

import (
	"math"

	"stayhub-backend/internal/domain"
)

// AverageRating returns the mean rating rounded to one decimal and the review count.
// No reviews yields 0, 0.
func AverageRating(reviews []domain.Review) (float64, int) {
	if len(reviews) == 0 {
		return 0, 0
	}
	sum := 0
	for _, r := range reviews {
		sum += r.Rating
	}
	avg := float64(sum) / float64(len(reviews))
	return math.Round(avg*10) / 10, len(reviews)
}
