package dto

import (
	"time"

	"vlinky_backend/internal/models"
)

type CreateRequestRequest struct {
	CreatorID     string `json:"creator_id" validate:"required"`
	FanName       string `json:"fan_name" validate:"required,min=1,max=100"`
	FanEmail      string `json:"fan_email" validate:"required,email"`
	RecipientName string `json:"recipient_name" validate:"max=100"`
	OrderType     string `json:"order_type" validate:"required,order_type"`
	Instructions  string `json:"instructions" validate:"max=2000"`
	Private       bool   `json:"private"`
}

type FulfillRequestRequest struct {
	VideoURL string `json:"video_url" validate:"required,url"`
}

type RateRequestRequest struct {
	Rating int `json:"rating" validate:"required,min=1,max=5"`
}

type RequestResponse struct {
	ID            string               `json:"id"`
	CreatorID     string               `json:"creator_id"`
	FanID         *string              `json:"fan_id,omitempty"`
	FanName       string               `json:"fan_name"`
	FanEmail      string               `json:"fan_email"`
	RecipientName string               `json:"recipient_name"`
	OrderType     models.OrderType     `json:"order_type"`
	Instructions  string               `json:"instructions"`
	Private       bool                 `json:"private"`
	Deadline      time.Time            `json:"deadline"`
	TotalPrice    float64              `json:"total_price"`
	VideoURL      *string              `json:"video_url,omitempty"`
	Rating        *int                 `json:"rating,omitempty"`
	Status        models.RequestStatus `json:"status"`
	CreatedAt     time.Time            `json:"created_at"`
	UpdatedAt     time.Time            `json:"updated_at"`
}

type RequestListResponse struct {
	Requests   []RequestResponse `json:"requests"`
	Total      int64             `json:"total"`
	TotalPages int               `json:"total_pages"`
}

type VideoLinkResponse struct {
	RequestID string `json:"request_id"`
	VideoURL  string `json:"video_url"`
	Signed    bool   `json:"signed"`
}
