package algorithms

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"vlinky_backend/internal/models"
)

func TestTotalPrice(t *testing.T) {
	tests := []struct {
		name    string
		base    float64
		express bool
		longer  bool
		want    float64
	}{
		{"no add-ons", 35, false, false, 35},
		{"express only", 35, true, false, 52.50},
		{"longer only", 35, false, true, 52.50},
		{"both add-ons", 35, true, true, 70},
		{"zero base no add-ons", 0, false, false, 0},
		{"zero base both add-ons", 0, true, true, 35},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TotalPrice(tt.base, tt.express, tt.longer)
			assert.InDelta(t, tt.want, got, 0.001)
			assert.GreaterOrEqual(t, got, tt.base)
		})
	}
}

func TestPriceForOrderType(t *testing.T) {
	assert.InDelta(t, 100.0, PriceForOrderType(100, models.OrderTypeStandard), 0.001)
	assert.InDelta(t, 117.5, PriceForOrderType(100, models.OrderTypeExpress), 0.001)
	assert.InDelta(t, 117.5, PriceForOrderType(100, models.OrderTypeLongerVideo), 0.001)
	assert.InDelta(t, 135.0, PriceForOrderType(100, models.OrderTypeExpressLonger), 0.001)
}

func TestDeadline(t *testing.T) {
	createdAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, createdAt.AddDate(0, 0, 1), Deadline(createdAt, true))
	assert.Equal(t, createdAt.AddDate(0, 0, 7), Deadline(createdAt, false))
}
