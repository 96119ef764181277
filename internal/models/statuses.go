package models

type UserStatus string
type UserRole string
type ApplicationStatus string
type RequestStatus string
type OrderType string
type ContentRights string

const (
	UserStatusPending   UserStatus = "pending"
	UserStatusActive    UserStatus = "active"
	UserStatusSuspended UserStatus = "suspended"
	UserStatusBanned    UserStatus = "banned"

	UserRoleFan     UserRole = "fan"
	UserRoleCreator UserRole = "creator"
	UserRoleAdmin   UserRole = "admin"

	ApplicationStatusPending  ApplicationStatus = "pending"
	ApplicationStatusApproved ApplicationStatus = "approved"
	ApplicationStatusRejected ApplicationStatus = "rejected"

	RequestStatusPending   RequestStatus = "pending"
	RequestStatusCompleted RequestStatus = "completed"
	RequestStatusDeclined  RequestStatus = "declined"

	OrderTypeStandard      OrderType = "standard"
	OrderTypeExpress       OrderType = "express"
	OrderTypeLongerVideo   OrderType = "longer_video"
	OrderTypeExpressLonger OrderType = "express_longer"

	ContentRightsSelf       ContentRights = "self"
	ContentRightsAgency     ContentRights = "agency"
	ContentRightsManagement ContentRights = "management"
	ContentRightsThirdParty ContentRights = "third_party"
)

// ExpressDelivery reports whether the order type includes the express add-on.
func (t OrderType) ExpressDelivery() bool {
	return t == OrderTypeExpress || t == OrderTypeExpressLonger
}

// LongerVideo reports whether the order type includes the longer-video add-on.
func (t OrderType) LongerVideo() bool {
	return t == OrderTypeLongerVideo || t == OrderTypeExpressLonger
}

// ValidOrderType reports whether t is one of the known order types.
func ValidOrderType(t OrderType) bool {
	switch t {
	case OrderTypeStandard, OrderTypeExpress, OrderTypeLongerVideo, OrderTypeExpressLonger:
		return true
	}
	return false
}

// ValidContentRights reports whether r is a known content-rights assertion.
func ValidContentRights(r ContentRights) bool {
	switch r {
	case ContentRightsSelf, ContentRightsAgency, ContentRightsManagement, ContentRightsThirdParty:
		return true
	}
	return false
}
