package domain

import "gorm.io/gorm"

const (
	SubscriptionStarter  = "starter"
	SubscriptionPro      = "pro"
	SubscriptionBusiness = "business"
)

// User is the credential record. Token holds the single active session JWT:
// a bearer token authenticates only while it equals this column, so a later
// login or a logout invalidates whatever was issued before.
type User struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Email             string  `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash      string  `json:"-"`
	AvatarURL         string  `json:"avatarURL"`
	Subscription      string  `gorm:"type:varchar(20);not null;default:starter" json:"subscription"`
	Token             *string `json:"-"`
	Verify            bool    `gorm:"not null;default:false" json:"verify"`
	VerificationToken *string `gorm:"index" json:"-"`
	gorm.Model
}
