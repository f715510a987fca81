package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentnest/server/internal/models"
)

const listingColumns = `
	id, owner_id, title, description, street, city, postal_code, category,
	bedrooms, bathrooms, monthly_rent, deposit, available_from,
	verification_status, image_urls, amenities, is_active,
	latitude, longitude, created_at, updated_at`

// CreateListing inserts a listing. Verification status is forced to pending
// on insert no matter what the caller set.
func (d *Database) CreateListing(ctx context.Context, l *models.Listing) error {
	now := time.Now().UTC()
	l.CreatedAt = now
	l.UpdatedAt = now
	l.VerificationStatus = models.VerificationPending

	imgs, err := l.ImageURLs.Value()
	if err != nil {
		return err
	}
	amen, err := l.Amenities.Value()
	if err != nil {
		return err
	}

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO properties (`+listingColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.OwnerID, l.Title, l.Description, l.Street, l.City, l.PostalCode,
		l.Category, l.Bedrooms, l.Bathrooms, l.MonthlyRent, l.Deposit,
		l.AvailableFrom, l.VerificationStatus, imgs, amen, l.IsActive,
		l.Latitude, l.Longitude, l.CreatedAt, l.UpdatedAt,
	)
	return err
}

// UpdateListing rewrites a listing's content fields. Every content edit
// reverts verification status to pending and refreshes updated_at,
// regardless of which fields actually changed.
func (d *Database) UpdateListing(ctx context.Context, l *models.Listing) error {
	l.UpdatedAt = time.Now().UTC()
	l.VerificationStatus = models.VerificationPending

	imgs, err := l.ImageURLs.Value()
	if err != nil {
		return err
	}
	amen, err := l.Amenities.Value()
	if err != nil {
		return err
	}

	res, err := d.db.ExecContext(ctx, `
		UPDATE properties SET
			title = ?, description = ?, street = ?, city = ?, postal_code = ?,
			category = ?, bedrooms = ?, bathrooms = ?, monthly_rent = ?,
			deposit = ?, available_from = ?, verification_status = ?,
			image_urls = ?, amenities = ?, is_active = ?,
			latitude = ?, longitude = ?, updated_at = ?
		WHERE id = ?`,
		l.Title, l.Description, l.Street, l.City, l.PostalCode,
		l.Category, l.Bedrooms, l.Bathrooms, l.MonthlyRent,
		l.Deposit, l.AvailableFrom, l.VerificationStatus,
		imgs, amen, l.IsActive,
		l.Latitude, l.Longitude, l.UpdatedAt,
		l.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) GetListingByID(ctx context.Context, id string) (*models.Listing, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+listingColumns+` FROM properties WHERE id = ?`, id)

	l, err := scanListing(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return l, nil
}

// GetPublicListings returns the verified, active listings shown to
// visitors, newest first.
func (d *Database) GetPublicListings(ctx context.Context) ([]models.Listing, error) {
	return d.queryListings(ctx, `
		SELECT `+listingColumns+` FROM properties
		WHERE verification_status = ? AND is_active = 1
		ORDER BY created_at DESC`,
		models.VerificationVerified,
	)
}

func (d *Database) GetListingsByOwner(ctx context.Context, ownerID string) ([]models.Listing, error) {
	return d.queryListings(ctx, `
		SELECT `+listingColumns+` FROM properties
		WHERE owner_id = ?
		ORDER BY created_at DESC`,
		ownerID,
	)
}

func (d *Database) DeleteListing(ctx context.Context, id string) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM properties WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

// DistinctCities lists the cities that actually have listings, feeding the
// search type-ahead.
func (d *Database) DistinctCities(ctx context.Context) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT DISTINCT city FROM properties
		WHERE city != '' ORDER BY city`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cities []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, err
		}
		cities = append(cities, c)
	}
	return cities, rows.Err()
}

func (d *Database) queryListings(ctx context.Context, query string, args ...interface{}) ([]models.Listing, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, *l)
	}
	return listings, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanListing(row rowScanner) (*models.Listing, error) {
	var l models.Listing
	var latitude, longitude sql.NullFloat64

	err := row.Scan(
		&l.ID, &l.OwnerID, &l.Title, &l.Description, &l.Street, &l.City,
		&l.PostalCode, &l.Category, &l.Bedrooms, &l.Bathrooms,
		&l.MonthlyRent, &l.Deposit, &l.AvailableFrom, &l.VerificationStatus,
		&l.ImageURLs, &l.Amenities, &l.IsActive,
		&latitude, &longitude, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if latitude.Valid {
		lat := latitude.Float64
		l.Latitude = &lat
	}
	if longitude.Valid {
		lon := longitude.Float64
		l.Longitude = &lon
	}
	return &l, nil
}
