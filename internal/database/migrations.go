package database

import (
	"errors"

	"rentnest/server/internal/models"
)

// RunMigrations creates or updates the schema for every entity table.
func (d *Database) RunMigrations() error {
	if d.gorm == nil {
		return errors.New("migrations require a gorm-backed database")
	}

	if err := d.gorm.AutoMigrate(
		&models.Account{},
		&models.Listing{},
		&models.Application{},
		&models.Lease{},
		&models.Favorite{},
		&models.VerificationRequest{},
	); err != nil {
		return err
	}

	// Composite index backing the public search query
	_, err := d.db.Exec(`
		CREATE INDEX IF NOT EXISTS idx_properties_public
		ON properties(verification_status, is_active);
	`)
	if err != nil {
		return err
	}

	// One application per applicant per listing
	_, err = d.db.Exec(`
		CREATE UNIQUE INDEX IF NOT EXISTS idx_applications_listing_applicant
		ON applications(listing_id, applicant_id);
	`)
	return err
}
