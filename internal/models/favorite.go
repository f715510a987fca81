package models

import "time"

// Favorite is an existence-only join of account and listing.
type Favorite struct {
	AccountID string    `json:"account_id" gorm:"primaryKey;type:text"`
	ListingID string    `json:"listing_id" gorm:"primaryKey;type:text"`
	CreatedAt time.Time `json:"created_at"`
}

func (Favorite) TableName() string { return "favorites" }
