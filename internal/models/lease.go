package models

import "time"

// Lease statuses. Leases are read-only through the API; only the expiry
// scanner moves active leases to expired.
const (
	LeaseActive     = "active"
	LeaseTerminated = "terminated"
	LeaseExpired    = "expired"
)

type Lease struct {
	ID        string    `json:"id" gorm:"primaryKey;type:text"`
	ListingID string    `json:"listing_id" gorm:"type:text;index"`
	TenantID  string    `json:"tenant_id" gorm:"type:text;index"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	Status    string    `json:"status" gorm:"type:text;index"`
	CreatedAt time.Time `json:"created_at"`
}

func (Lease) TableName() string { return "leases" }

// ExpiresWithin reports whether an active lease ends inside the window.
func (l *Lease) ExpiresWithin(window time.Duration, now time.Time) bool {
	return l.Status == LeaseActive && l.EndDate.After(now) && l.EndDate.Before(now.Add(window))
}
