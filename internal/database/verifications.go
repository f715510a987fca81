package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentnest/server/internal/models"
)

func (d *Database) CreateVerificationRequest(ctx context.Context, v *models.VerificationRequest) error {
	v.CreatedAt = time.Now().UTC()
	v.Status = models.VerificationPending

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO verification_requests (
			id, account_id, document_type, document_number,
			document_path, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.AccountID, v.DocumentType, v.DocumentNumber,
		v.DocumentPath, v.Status, v.CreatedAt,
	)
	return err
}

// GetLatestVerificationRequest returns the account's most recent request,
// or ErrNotFound when the account never submitted one.
func (d *Database) GetLatestVerificationRequest(ctx context.Context, accountID string) (*models.VerificationRequest, error) {
	var v models.VerificationRequest
	err := d.db.QueryRowContext(ctx, `
		SELECT id, account_id, document_type, document_number,
		       document_path, status, created_at
		FROM verification_requests
		WHERE account_id = ?
		ORDER BY created_at DESC
		LIMIT 1`,
		accountID,
	).Scan(
		&v.ID, &v.AccountID, &v.DocumentType, &v.DocumentNumber,
		&v.DocumentPath, &v.Status, &v.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}
