package models

import "time"

// CreatorEarnings is the per-creator payout aggregate shown in the admin area.
// Rows are maintained by the earnings worker, not written by request handlers.
type CreatorEarnings struct {
	BaseModel
	CreatorID      string    `gorm:"type:uuid;not null;uniqueIndex"`
	TotalEarnings  float64   `gorm:"default:0"`
	PendingPayout  float64   `gorm:"default:0"`
	MonthEarnings  float64   `gorm:"default:0"`
	NextPayoutDate time.Time
}
