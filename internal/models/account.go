package models

import "time"

// Account roles. A role is chosen at sign-up and never changes afterwards.
const (
	RoleTenant   = "tenant"
	RoleLandlord = "landlord"
	RoleAdmin    = "admin"
)

// Verification states shared by accounts (identity) and listings (property
// legitimacy). Only the external reviewer moves a record to verified or
// rejected.
const (
	VerificationNotStarted = "not_started"
	VerificationPending    = "pending"
	VerificationVerified   = "verified"
	VerificationRejected   = "rejected"
)

type Account struct {
	ID                 string    `json:"id" gorm:"primaryKey;type:text"`
	Email              string    `json:"email" gorm:"uniqueIndex;type:text"`
	PasswordHash       string    `json:"-" gorm:"type:text"`
	FullName           string    `json:"full_name" gorm:"type:text"`
	Phone              string    `json:"phone" gorm:"type:text"`
	Role               string    `json:"role" gorm:"type:text;index"`
	AvatarURL          string    `json:"avatar_url" gorm:"type:text"`
	VerificationStatus string    `json:"verification_status" gorm:"type:text"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (Account) TableName() string { return "profiles" }

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r string) bool {
	return r == RoleTenant || r == RoleLandlord || r == RoleAdmin
}
