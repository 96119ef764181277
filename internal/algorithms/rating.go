package algorithms

import "vlinky_backend/internal/models"

// RatingSummary is the derived view shown on a creator's public profile.
type RatingSummary struct {
	AverageRating   float64 `json:"average_rating"`
	RatingCount     int64   `json:"rating_count"`
	CompletedOrders int64   `json:"completed_orders"`
}

// AggregateRatings computes a creator's average rating and completed-order
// count from their request records.
//
// A nil Rating is the "not rated" sentinel and is excluded from the average;
// the completed-order count is independent of rating presence. An empty input
// yields a zero summary.
func AggregateRatings(requests []models.VideoRequest) RatingSummary {
	var summary RatingSummary
	var sum int
	for i := range requests {
		req := &requests[i]
		if req.Rating != nil {
			sum += *req.Rating
			summary.RatingCount++
		}
		if req.Status == models.RequestStatusCompleted {
			summary.CompletedOrders++
		}
	}
	if summary.RatingCount > 0 {
		summary.AverageRating = float64(sum) / float64(summary.RatingCount)
	}
	return summary
}

// PlatformRevenue sums the frozen prices of all completed requests and applies
// the configured platform fee percentage.
func PlatformRevenue(requests []models.VideoRequest, feePercent float64) (revenue, fee float64) {
	for i := range requests {
		if requests[i].Status == models.RequestStatusCompleted {
			revenue += requests[i].TotalPrice
		}
	}
	fee = revenue * feePercent / 100
	return revenue, fee
}
