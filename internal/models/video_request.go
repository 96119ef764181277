package models

import "time"

// VideoRequest is one fan's order to one creator. TotalPrice is computed once
// at creation from the creator's base price plus add-ons and never recomputed,
// even if the creator later changes their base price.
type VideoRequest struct {
	BaseModel
	CreatorID     string  `gorm:"type:uuid;not null;index"`
	FanID         *string `gorm:"type:uuid;index"` // nullable, schema permits guest rows
	FanName       string  `gorm:"not null"`
	FanEmail      string  `gorm:"not null"`
	RecipientName string  // defaults to FanName when empty at creation
	OrderType     OrderType `gorm:"type:varchar(20);not null;default:'standard'"`
	Instructions  string
	Private       bool      `gorm:"default:false"`
	Deadline      time.Time `gorm:"not null"`
	TotalPrice    float64   `gorm:"not null"`
	VideoURL      *string
	Rating        *int          `gorm:"check:rating >= 1 AND rating <= 5"`
	Status        RequestStatus `gorm:"type:varchar(20);default:'pending';index"`

	// Relations
	Creator CreatorApplication `gorm:"foreignKey:CreatorID"`
	Fan     *User              `gorm:"foreignKey:FanID"`
}

// Terminal reports whether the request can no longer change status.
func (r *VideoRequest) Terminal() bool {
	return r.Status == RequestStatusCompleted || r.Status == RequestStatusDeclined
}
