package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Listing categories.
const (
	CategoryHouse     = "house"
	CategoryApartment = "apartment"
	CategoryTownhouse = "townhouse"
	CategoryRoom      = "room"
)

// StringList is stored as a JSON array in a TEXT column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (l *StringList) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		return json.Unmarshal([]byte(v), l)
	case []byte:
		return json.Unmarshal(v, l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
}

type Listing struct {
	ID                 string     `json:"id" gorm:"primaryKey;type:text"`
	OwnerID            string     `json:"owner_id" gorm:"type:text;index"`
	Title              string     `json:"title" gorm:"type:text"`
	Description        string     `json:"description" gorm:"type:text"`
	Street             string     `json:"street" gorm:"type:text"`
	City               string     `json:"city" gorm:"type:text;index"`
	PostalCode         string     `json:"postal_code" gorm:"type:text"`
	Category           string     `json:"category" gorm:"type:text;index"`
	Bedrooms           int        `json:"bedrooms"`
	Bathrooms          int        `json:"bathrooms"`
	MonthlyRent        int        `json:"monthly_rent"`
	Deposit            int        `json:"deposit"`
	AvailableFrom      time.Time  `json:"available_from"`
	VerificationStatus string     `json:"verification_status" gorm:"type:text;index"`
	ImageURLs          StringList `json:"image_urls" gorm:"type:text"`
	Amenities          StringList `json:"amenities" gorm:"type:text"`
	IsActive           bool       `json:"is_active" gorm:"index"`
	Latitude           *float64   `json:"latitude"`
	Longitude          *float64   `json:"longitude"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (Listing) TableName() string { return "properties" }

// ValidCategory reports whether c is a known listing category.
func ValidCategory(c string) bool {
	switch c {
	case CategoryHouse, CategoryApartment, CategoryTownhouse, CategoryRoom:
		return true
	}
	return false
}
