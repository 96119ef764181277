package models

import "gorm.io/datatypes"

// ActivityLog records privileged administrator actions.
type ActivityLog struct {
	BaseModel
	AdminID string         `gorm:"type:uuid;not null;index"`
	Action  string         `gorm:"not null"` // "application_approved", "application_rejected", ...
	Target  string         // id of the affected record
	Data    datatypes.JSON `gorm:"type:jsonb"`
}
