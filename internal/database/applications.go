package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"rentnest/server/internal/models"
)

var ErrDuplicateApplication = errors.New("application already exists for this listing")

func (d *Database) CreateApplication(ctx context.Context, a *models.Application) error {
	var exists bool
	err := d.db.QueryRowContext(ctx, `
		SELECT EXISTS(
			SELECT 1 FROM applications
			WHERE listing_id = ? AND applicant_id = ?
		)`, a.ListingID, a.ApplicantID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("duplicate check failed: %w", err)
	}
	if exists {
		return ErrDuplicateApplication
	}

	a.CreatedAt = time.Now().UTC()
	a.Status = models.ApplicationPending

	_, err = d.db.ExecContext(ctx, `
		INSERT INTO applications (
			id, listing_id, applicant_id, status, employer, monthly_income,
			move_in_date, message, reference_contact, reviewed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ListingID, a.ApplicantID, a.Status, a.Employer,
		a.MonthlyIncome, a.MoveInDate, a.Message, a.ReferenceContact,
		a.ReviewedAt, a.CreatedAt,
	)
	return err
}

const applicationJoinColumns = `
	a.id, a.listing_id, a.applicant_id, a.status, a.employer,
	a.monthly_income, a.move_in_date, a.message, a.reference_contact,
	a.reviewed_at, a.created_at,
	COALESCE(p.title, ''), COALESCE(p.image_urls, '[]'), COALESCE(p.owner_id, '')`

// GetApplicationByID returns the application flattened with its zero-or-one
// joined listing.
func (d *Database) GetApplicationByID(ctx context.Context, id string) (*models.ApplicationWithListing, error) {
	row := d.db.QueryRowContext(ctx, `
		SELECT `+applicationJoinColumns+`
		FROM applications a
		LEFT JOIN properties p ON p.id = a.listing_id
		WHERE a.id = ?`, id)

	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return app, nil
}

// GetApplicationsByApplicant lists a tenant's own applications, newest
// first, with the listing title and cover image flattened in.
func (d *Database) GetApplicationsByApplicant(ctx context.Context, applicantID string) ([]models.ApplicationWithListing, error) {
	return d.queryApplications(ctx, `
		SELECT `+applicationJoinColumns+`
		FROM applications a
		LEFT JOIN properties p ON p.id = a.listing_id
		WHERE a.applicant_id = ?
		ORDER BY a.created_at DESC`,
		applicantID,
	)
}

// GetApplicationsForOwner lists applications to any of a landlord's
// listings, newest first.
func (d *Database) GetApplicationsForOwner(ctx context.Context, ownerID string) ([]models.ApplicationWithListing, error) {
	return d.queryApplications(ctx, `
		SELECT `+applicationJoinColumns+`
		FROM applications a
		JOIN properties p ON p.id = a.listing_id
		WHERE p.owner_id = ?
		ORDER BY a.created_at DESC`,
		ownerID,
	)
}

func (d *Database) UpdateApplicationStatus(ctx context.Context, id, status string, reviewedAt time.Time) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE applications SET status = ?, reviewed_at = ? WHERE id = ?`,
		status, reviewedAt, id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) queryApplications(ctx context.Context, query string, args ...interface{}) ([]models.ApplicationWithListing, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var apps []models.ApplicationWithListing
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, *app)
	}
	return apps, rows.Err()
}

func scanApplication(row rowScanner) (*models.ApplicationWithListing, error) {
	var app models.ApplicationWithListing
	var reviewedAt sql.NullTime
	var images models.StringList

	err := row.Scan(
		&app.ID, &app.ListingID, &app.ApplicantID, &app.Status, &app.Employer,
		&app.MonthlyIncome, &app.MoveInDate, &app.Message, &app.ReferenceContact,
		&reviewedAt, &app.CreatedAt,
		&app.ListingTitle, &images, &app.ListingOwnerID,
	)
	if err != nil {
		return nil, err
	}

	if reviewedAt.Valid {
		t := reviewedAt.Time
		app.ReviewedAt = &t
	}
	if len(images) > 0 {
		app.ListingImage = images[0]
	}
	return &app, nil
}
