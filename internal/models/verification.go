package models

import "time"

// Identity document types.
const (
	DocumentNationalID     = "national_id"
	DocumentPassport       = "passport"
	DocumentDriversLicense = "drivers_license"
)

type VerificationRequest struct {
	ID             string    `json:"id" gorm:"primaryKey;type:text"`
	AccountID      string    `json:"account_id" gorm:"type:text;index"`
	DocumentType   string    `json:"document_type" gorm:"type:text"`
	DocumentNumber string    `json:"document_number" gorm:"type:text"`
	DocumentPath   string    `json:"document_path" gorm:"type:text"`
	Status         string    `json:"status" gorm:"type:text;index"`
	CreatedAt      time.Time `json:"created_at"`
}

func (VerificationRequest) TableName() string { return "verification_requests" }

// ValidDocumentType reports whether t is an accepted identity document type.
func ValidDocumentType(t string) bool {
	switch t {
	case DocumentNationalID, DocumentPassport, DocumentDriversLicense:
		return true
	}
	return false
}
