package database

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"rentnest/server/internal/models"
)

var ErrNotFound = errors.New("not found")

func (d *Database) CreateAccount(ctx context.Context, a *models.Account) error {
	now := time.Now().UTC()
	a.CreatedAt = now
	a.UpdatedAt = now
	if a.VerificationStatus == "" {
		a.VerificationStatus = models.VerificationNotStarted
	}

	_, err := d.db.ExecContext(ctx, `
		INSERT INTO profiles (
			id, email, password_hash, full_name, phone, role,
			avatar_url, verification_status, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Email, a.PasswordHash, a.FullName, a.Phone, a.Role,
		a.AvatarURL, a.VerificationStatus, a.CreatedAt, a.UpdatedAt,
	)
	return err
}

func (d *Database) GetAccountByID(ctx context.Context, id string) (*models.Account, error) {
	return d.getAccount(ctx, `WHERE id = ?`, id)
}

func (d *Database) GetAccountByEmail(ctx context.Context, email string) (*models.Account, error) {
	return d.getAccount(ctx, `WHERE email = ?`, email)
}

func (d *Database) getAccount(ctx context.Context, where string, arg interface{}) (*models.Account, error) {
	var a models.Account
	err := d.db.QueryRowContext(ctx, `
		SELECT id, email, password_hash, full_name, phone, role,
		       avatar_url, verification_status, created_at, updated_at
		FROM profiles `+where,
		arg,
	).Scan(
		&a.ID, &a.Email, &a.PasswordHash, &a.FullName, &a.Phone, &a.Role,
		&a.AvatarURL, &a.VerificationStatus, &a.CreatedAt, &a.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// UpdateAccountVerification sets the account's identity verification status.
// The role column is deliberately untouchable: no update statement in this
// package writes it.
func (d *Database) UpdateAccountVerification(ctx context.Context, id, status string) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE profiles SET verification_status = ?, updated_at = ? WHERE id = ?`,
		status, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (d *Database) UpdateAccountProfile(ctx context.Context, id, fullName, phone, avatarURL string) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE profiles SET full_name = ?, phone = ?, avatar_url = ?, updated_at = ?
		WHERE id = ?`,
		fullName, phone, avatarURL, time.Now().UTC(), id,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
