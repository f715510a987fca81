package search

import (
	"time"

	"rentnest/server/internal/models"
)

// SampleListings is the fixed fallback shown on the public home preview
// when the backend holds zero verified, active listings. The ids are
// deliberately outside the uuid space so they can never collide with real
// rows.
func SampleListings() []models.Listing {
	available := time.Now().UTC().AddDate(0, 1, 0).Truncate(24 * time.Hour)
	return []models.Listing{
		{
			ID:                 "sample-1",
			Title:              "Canal-side one bedroom",
			Description:        "Sample listing shown while no verified properties exist.",
			City:               "amsterdam",
			Category:           models.CategoryApartment,
			Bedrooms:           1,
			Bathrooms:          1,
			MonthlyRent:        1450,
			Deposit:            2900,
			AvailableFrom:      available,
			VerificationStatus: models.VerificationVerified,
			Amenities:          models.StringList{"balcony"},
			IsActive:           true,
		},
		{
			ID:                 "sample-2",
			Title:              "Family townhouse with garden",
			Description:        "Sample listing shown while no verified properties exist.",
			City:               "utrecht",
			Category:           models.CategoryTownhouse,
			Bedrooms:           3,
			Bathrooms:          2,
			MonthlyRent:        2100,
			Deposit:            4200,
			AvailableFrom:      available,
			VerificationStatus: models.VerificationVerified,
			Amenities:          models.StringList{"garden", "parking"},
			IsActive:           true,
		},
		{
			ID:                 "sample-3",
			Title:              "Furnished student room",
			Description:        "Sample listing shown while no verified properties exist.",
			City:               "rotterdam",
			Category:           models.CategoryRoom,
			Bedrooms:           1,
			Bathrooms:          1,
			MonthlyRent:        650,
			Deposit:            650,
			AvailableFrom:      available,
			VerificationStatus: models.VerificationVerified,
			Amenities:          models.StringList{"furnished"},
			IsActive:           true,
		},
	}
}
