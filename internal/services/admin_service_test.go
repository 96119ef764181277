package services

import (
	"testing"

	"vlinky_backend/internal/models"
	"vlinky_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCompletedRequests(t *testing.T, requests *memRequestRepo, creatorID string, prices []float64) {
	t.Helper()
	for _, price := range prices {
		req := &models.VideoRequest{
			CreatorID:  creatorID,
			FanName:    "Fan",
			FanEmail:   "fan@example.com",
			TotalPrice: price,
			Status:     models.RequestStatusCompleted,
		}
		require.NoError(t, requests.Create(req))
	}
}

func TestPlatformStats(t *testing.T) {
	creators := newMemCreatorRepo()
	requests := newMemRequestRepo()
	service := NewAdminService(requests, creators, newMemEarningsRepo(), newMemActivityRepo(), 20)

	// $100 + $52.50 completed, one pending order ignored by revenue.
	seedCompletedRequests(t, requests, "creator-1", []float64{100, 52.50})
	pending := &models.VideoRequest{
		CreatorID: "creator-1", FanName: "Fan", FanEmail: "fan@example.com",
		TotalPrice: 35, Status: models.RequestStatusPending,
	}
	require.NoError(t, requests.Create(pending))

	approved := &models.CreatorApplication{
		DisplayName: "Rina", Email: "rina@example.com",
		TermsAgreed: true, Status: models.ApplicationStatusApproved,
	}
	require.NoError(t, creators.Create(approved))

	stats, err := service.PlatformStats()
	require.NoError(t, err)

	assert.Equal(t, 152.50, stats.Revenue)
	assert.Equal(t, 30.50, stats.PlatformFee)
	assert.Equal(t, 20.0, stats.FeePercent)
	assert.Equal(t, int64(2), stats.CompletedOrders)
	assert.Equal(t, int64(1), stats.PendingRequests)
	assert.Equal(t, int64(1), stats.ApprovedCreators)
}

func TestGetCreatorEarnings_NotFound(t *testing.T) {
	service := NewAdminService(newMemRequestRepo(), newMemCreatorRepo(), newMemEarningsRepo(), newMemActivityRepo(), 20)

	_, err := service.GetCreatorEarnings("missing")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.CodeNotFound, appErr.Code)
}

func TestListEarnings_OrderedByTotal(t *testing.T) {
	earnings := newMemEarningsRepo()
	service := NewAdminService(newMemRequestRepo(), newMemCreatorRepo(), earnings, newMemActivityRepo(), 20)

	require.NoError(t, earnings.Upsert(&models.CreatorEarnings{CreatorID: "creator-low", TotalEarnings: 10}))
	require.NoError(t, earnings.Upsert(&models.CreatorEarnings{CreatorID: "creator-high", TotalEarnings: 500}))

	list, err := service.ListEarnings(1, 20)
	require.NoError(t, err)
	require.Len(t, list.Earnings, 2)
	assert.Equal(t, "creator-high", list.Earnings[0].CreatorID)
}

func TestListActivity_DecodesData(t *testing.T) {
	activity := newMemActivityRepo()
	service := NewAdminService(newMemRequestRepo(), newMemCreatorRepo(), newMemEarningsRepo(), activity, 20)

	require.NoError(t, activity.Create(&models.ActivityLog{
		AdminID: "admin-1",
		Action:  "application_approved",
		Target:  "app-1",
		Data:    []byte(`{"display_name":"Rina"}`),
	}))

	list, err := service.ListActivity(1, 20)
	require.NoError(t, err)
	require.Len(t, list.Entries, 1)

	entry := list.Entries[0]
	assert.Equal(t, "application_approved", entry.Action)
	data, ok := entry.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "Rina", data["display_name"])
}
