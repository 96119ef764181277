package models

import "gorm.io/datatypes"

// CreatorApplication is a creator's registration on the marketplace. It doubles
// as the public creator profile once approved: only approved applications are
// discoverable by fans.
//
// UserID is nullable: the registration flow accepts guest submissions that are
// reconciled to an account later by an administrator.
type CreatorApplication struct {
	BaseModel
	UserID          *string           `gorm:"type:uuid;index"`
	DisplayName     string            `gorm:"not null"`
	Email           string            `gorm:"not null;index"`
	Country         string            `gorm:"type:varchar(60)"`
	Languages       datatypes.JSON    `gorm:"type:jsonb"` // ordered list of language names
	Platforms       datatypes.JSON    `gorm:"type:jsonb"` // ordered list of platform names
	FollowerBucket  string            // free text, e.g. "10k-50k"
	BasePrice       float64           `gorm:"not null;check:base_price >= 0"`
	TurnaroundDays  int               `gorm:"default:7"`
	Available       bool              `gorm:"default:true"`
	ProfileImageURL string
	IntroVideoURL   string
	AgencyAffiliate bool              `gorm:"default:false"`
	ContentRights   ContentRights     `gorm:"type:varchar(20);default:'self'"`
	TermsAgreed     bool              `gorm:"not null"`
	Status          ApplicationStatus `gorm:"type:varchar(20);default:'pending';index"`

	// Relations
	User     *User          `gorm:"foreignKey:UserID"`
	Requests []VideoRequest `gorm:"foreignKey:CreatorID"`
	Earnings *CreatorEarnings `gorm:"foreignKey:CreatorID"`
}

// IsApproved reports whether the application is live on the marketplace.
func (a *CreatorApplication) IsApproved() bool {
	return a.Status == ApplicationStatusApproved
}
