package algorithms

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"vlinky_backend/internal/models"
)

func intPtr(v int) *int { return &v }

func TestAggregateRatings_Empty(t *testing.T) {
	summary := AggregateRatings(nil)

	assert.Zero(t, summary.AverageRating)
	assert.Zero(t, summary.RatingCount)
	assert.Zero(t, summary.CompletedOrders)
}

func TestAggregateRatings_MixedStatusesAndRatings(t *testing.T) {
	requests := []models.VideoRequest{
		{Rating: intPtr(4), Status: models.RequestStatusCompleted},
		{Rating: intPtr(2), Status: models.RequestStatusPending},
		{Rating: nil, Status: models.RequestStatusCompleted},
	}

	summary := AggregateRatings(requests)

	// Mean of the two non-nil ratings; the unrated completed request still counts
	// toward completed orders.
	assert.InDelta(t, 3.0, summary.AverageRating, 0.001)
	assert.EqualValues(t, 2, summary.RatingCount)
	assert.EqualValues(t, 2, summary.CompletedOrders)
}

func TestAggregateRatings_NoRatingsButCompletedOrders(t *testing.T) {
	requests := []models.VideoRequest{
		{Status: models.RequestStatusCompleted},
		{Status: models.RequestStatusDeclined},
	}

	summary := AggregateRatings(requests)

	assert.Zero(t, summary.AverageRating)
	assert.EqualValues(t, 1, summary.CompletedOrders)
}

func TestPlatformRevenue(t *testing.T) {
	requests := []models.VideoRequest{
		{TotalPrice: 52.50, Status: models.RequestStatusCompleted},
		{TotalPrice: 100, Status: models.RequestStatusCompleted},
		{TotalPrice: 999, Status: models.RequestStatusPending},
		{TotalPrice: 999, Status: models.RequestStatusDeclined},
	}

	revenue, fee := PlatformRevenue(requests, 20)

	assert.InDelta(t, 152.50, revenue, 0.001)
	assert.InDelta(t, 30.50, fee, 0.001)
}
