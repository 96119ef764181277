package algorithms

import (
	"time"

	"vlinky_backend/internal/models"
)

// AddOnSurcharge is the flat fee charged per selected add-on (express delivery,
// longer video). It does not scale with the creator's base price.
const AddOnSurcharge = 17.50

// Delivery windows by add-on selection.
const (
	ExpressDeadline  = 24 * time.Hour
	StandardDeadline = 7 * 24 * time.Hour
)

// TotalPrice computes the price of a request from the creator's base price and
// the selected add-ons. The result is always >= base.
func TotalPrice(base float64, expressDelivery, longerVideo bool) float64 {
	total := base
	if expressDelivery {
		total += AddOnSurcharge
	}
	if longerVideo {
		total += AddOnSurcharge
	}
	return total
}

// PriceForOrderType computes the frozen request price for an order type.
func PriceForOrderType(base float64, orderType models.OrderType) float64 {
	return TotalPrice(base, orderType.ExpressDelivery(), orderType.LongerVideo())
}

// Deadline computes the request deadline from its creation time: one day out
// for express orders, seven days otherwise.
func Deadline(createdAt time.Time, expressDelivery bool) time.Time {
	if expressDelivery {
		return createdAt.Add(ExpressDeadline)
	}
	return createdAt.Add(StandardDeadline)
}
