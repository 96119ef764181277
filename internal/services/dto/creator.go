package dto

import (
	"time"

	"vlinky_backend/internal/models"
)

type CreateApplicationRequest struct {
	DisplayName     string   `json:"display_name" validate:"required,min=2,max=100"`
	Email           string   `json:"email" validate:"required,email"`
	Country         string   `json:"country" validate:"max=60"`
	Languages       []string `json:"languages"`
	Platforms       []string `json:"platforms" validate:"required,min=1"`
	FollowerBucket  string   `json:"follower_bucket"`
	BasePrice       float64  `json:"base_price" validate:"gte=0"`
	TurnaroundDays  int      `json:"turnaround_days" validate:"gte=0"`
	Available       bool     `json:"available"`
	ProfileImageURL string   `json:"profile_image_url"`
	IntroVideoURL   string   `json:"intro_video_url"`
	AgencyAffiliate bool     `json:"agency_affiliate"`
	ContentRights   string   `json:"content_rights" validate:"omitempty,content_rights"`
	TermsAgreed     bool     `json:"terms_agreed" validate:"required"` // must be true
}

// UpdateProfileRequest mutates an approved application. Nil fields are left
// unchanged.
type UpdateProfileRequest struct {
	DisplayName     *string  `json:"display_name" validate:"omitempty,min=2,max=100"`
	Country         *string  `json:"country" validate:"omitempty,max=60"`
	Languages       []string `json:"languages"`
	Platforms       []string `json:"platforms" validate:"omitempty,min=1"`
	FollowerBucket  *string  `json:"follower_bucket"`
	BasePrice       *float64 `json:"base_price" validate:"omitempty,gte=0"`
	TurnaroundDays  *int     `json:"turnaround_days" validate:"omitempty,gte=0"`
	Available       *bool    `json:"available"`
	ProfileImageURL *string  `json:"profile_image_url"`
	IntroVideoURL   *string  `json:"intro_video_url"`
}

type ApplicationResponse struct {
	ID              string                   `json:"id"`
	UserID          *string                  `json:"user_id,omitempty"`
	DisplayName     string                   `json:"display_name"`
	Email           string                   `json:"email"`
	Country         string                   `json:"country"`
	Languages       []string                 `json:"languages"`
	Platforms       []string                 `json:"platforms"`
	FollowerBucket  string                   `json:"follower_bucket"`
	BasePrice       float64                  `json:"base_price"`
	TurnaroundDays  int                      `json:"turnaround_days"`
	Available       bool                     `json:"available"`
	ProfileImageURL string                   `json:"profile_image_url"`
	IntroVideoURL   string                   `json:"intro_video_url"`
	AgencyAffiliate bool                     `json:"agency_affiliate"`
	ContentRights   models.ContentRights     `json:"content_rights"`
	Status          models.ApplicationStatus `json:"status"`
	CreatedAt       time.Time                `json:"created_at"`
}

// CreatorCard is the fan-facing discovery view of an approved creator.
type CreatorCard struct {
	ID              string   `json:"id"`
	DisplayName     string   `json:"display_name"`
	Country         string   `json:"country"`
	Languages       []string `json:"languages"`
	Platforms       []string `json:"platforms"`
	BasePrice       float64  `json:"base_price"`
	TurnaroundDays  int      `json:"turnaround_days"`
	Available       bool     `json:"available"`
	ProfileImageURL string   `json:"profile_image_url"`
	IntroVideoURL   string   `json:"intro_video_url"`
	AverageRating   float64  `json:"average_rating"`
	CompletedOrders int64    `json:"completed_orders"`
}

type CreatorListResponse struct {
	Creators   []CreatorCard `json:"creators"`
	Total      int64         `json:"total"`
	TotalPages int           `json:"total_pages"`
}

type ApplicationListResponse struct {
	Applications []ApplicationResponse `json:"applications"`
	Total        int64                 `json:"total"`
	TotalPages   int                   `json:"total_pages"`
}
