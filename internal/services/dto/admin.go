package dto

import "time"

type PlatformStatsResponse struct {
	Revenue             float64 `json:"revenue"`
	PlatformFee         float64 `json:"platform_fee"`
	FeePercent          float64 `json:"fee_percent"`
	CompletedOrders     int64   `json:"completed_orders"`
	PendingRequests     int64   `json:"pending_requests"`
	ApprovedCreators    int64   `json:"approved_creators"`
	PendingApplications int64   `json:"pending_applications"`
}

type EarningsResponse struct {
	CreatorID      string    `json:"creator_id"`
	TotalEarnings  float64   `json:"total_earnings"`
	PendingPayout  float64   `json:"pending_payout"`
	MonthEarnings  float64   `json:"month_earnings"`
	NextPayoutDate time.Time `json:"next_payout_date"`
}

type EarningsListResponse struct {
	Earnings   []EarningsResponse `json:"earnings"`
	Total      int64              `json:"total"`
	TotalPages int                `json:"total_pages"`
}

type ActivityLogResponse struct {
	ID        string      `json:"id"`
	AdminID   string      `json:"admin_id"`
	Action    string      `json:"action"`
	Target    string      `json:"target"`
	Data      interface{} `json:"data,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
}

type ActivityLogListResponse struct {
	Entries    []ActivityLogResponse `json:"entries"`
	Total      int64                 `json:"total"`
	TotalPages int                   `json:"total_pages"`
}
