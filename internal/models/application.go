package models

import "time"

// Application statuses. Reviewed and withdrawn are reserved values kept for
// forward compatibility; no endpoint produces them.
const (
	ApplicationPending   = "pending"
	ApplicationReviewed  = "reviewed"
	ApplicationApproved  = "approved"
	ApplicationRejected  = "rejected"
	ApplicationWithdrawn = "withdrawn"
)

type Application struct {
	ID               string     `json:"id" gorm:"primaryKey;type:text"`
	ListingID        string     `json:"listing_id" gorm:"type:text;index"`
	ApplicantID      string     `json:"applicant_id" gorm:"type:text;index"`
	Status           string     `json:"status" gorm:"type:text;index"`
	Employer         string     `json:"employer" gorm:"type:text"`
	MonthlyIncome    int        `json:"monthly_income"`
	MoveInDate       time.Time  `json:"move_in_date"`
	Message          string     `json:"message" gorm:"type:text"`
	ReferenceContact string     `json:"reference_contact" gorm:"type:text"`
	ReviewedAt       *time.Time `json:"reviewed_at"`
	CreatedAt        time.Time  `json:"created_at"`
}

func (Application) TableName() string { return "applications" }

// ApplicationWithListing is an application flattened with the zero-or-one
// joined listing. The join is normalized here, in the data layer, so no
// caller ever sees a nested object-or-array shape.
type ApplicationWithListing struct {
	Application
	ListingTitle   string `json:"listing_title"`
	ListingImage   string `json:"listing_image,omitempty"`
	ListingOwnerID string `json:"-"`
}

// CanReview reports whether the listing owner may move an application from
// its current status to next. Only pending→approved and pending→rejected
// exist; the reserved statuses are unreachable.
func CanReview(current, next string) bool {
	if current != ApplicationPending {
		return false
	}
	return next == ApplicationApproved || next == ApplicationRejected
}
