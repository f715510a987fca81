package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentnest/server/internal/models"
)

func testListing() *models.Listing {
	return &models.Listing{
		ID:            "listing-1",
		OwnerID:       "landlord-1",
		Title:         "Canal view apartment",
		Description:   "Bright two-bedroom",
		Street:        "Herengracht 1",
		City:          "amsterdam",
		PostalCode:    "1015 BA",
		Category:      models.CategoryApartment,
		Bedrooms:      2,
		Bathrooms:     1,
		MonthlyRent:   1850,
		Deposit:       3700,
		AvailableFrom: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		ImageURLs:     models.StringList{"http://x/a.jpg"},
		Amenities:     models.StringList{"balcony", "dishwasher"},
		IsActive:      true,
	}
}

func TestCreateListing_ForcesPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO properties`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	l := testListing()
	l.VerificationStatus = models.VerificationVerified // caller input is ignored

	d := NewWithDB(db)
	require.NoError(t, d.CreateListing(context.Background(), l))
	assert.Equal(t, models.VerificationPending, l.VerificationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateListing_RevertsVerificationToPending(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	l := testListing()
	l.VerificationStatus = models.VerificationVerified

	mock.ExpectExec(`UPDATE properties SET`).
		WithArgs(
			l.Title, l.Description, l.Street, l.City, l.PostalCode,
			l.Category, l.Bedrooms, l.Bathrooms, l.MonthlyRent,
			l.Deposit, l.AvailableFrom, models.VerificationPending,
			sqlmock.AnyArg(), sqlmock.AnyArg(), l.IsActive,
			nil, nil, sqlmock.AnyArg(),
			l.ID,
		).
		WillReturnResult(sqlmock.NewResult(0, 1))

	d := NewWithDB(db)
	require.NoError(t, d.UpdateListing(context.Background(), l))
	assert.Equal(t, models.VerificationPending, l.VerificationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetListingByID_ScansNullableCoordinates(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"id", "owner_id", "title", "description", "street", "city",
		"postal_code", "category", "bedrooms", "bathrooms", "monthly_rent",
		"deposit", "available_from", "verification_status", "image_urls",
		"amenities", "is_active", "latitude", "longitude", "created_at", "updated_at",
	}).AddRow(
		"listing-1", "landlord-1", "Canal view apartment", "Bright", "Herengracht 1",
		"amsterdam", "1015 BA", "apartment", 2, 1, 1850,
		3700, now, "verified", `["http://x/a.jpg"]`,
		`["balcony"]`, true, 52.3676, 4.9041, now, now,
	)

	mock.ExpectQuery(`FROM properties WHERE id`).
		WithArgs("listing-1").
		WillReturnRows(rows)

	d := NewWithDB(db)
	l, err := d.GetListingByID(context.Background(), "listing-1")
	require.NoError(t, err)
	require.NotNil(t, l.Latitude)
	assert.InDelta(t, 52.3676, *l.Latitude, 0.0001)
	assert.Equal(t, models.StringList{"http://x/a.jpg"}, l.ImageURLs)
}

func TestGetListingByID_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM properties WHERE id`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	d := NewWithDB(db)
	_, err = d.GetListingByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
