package database

import (
	"context"
	"time"

	"rentnest/server/internal/models"
)

const leaseColumns = `id, listing_id, tenant_id, start_date, end_date, status, created_at`

func (d *Database) GetLeasesByTenant(ctx context.Context, tenantID string) ([]models.Lease, error) {
	return d.queryLeases(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE tenant_id = ?
		ORDER BY end_date DESC`,
		tenantID,
	)
}

// GetLeasesForOwner lists leases on any of a landlord's listings.
func (d *Database) GetLeasesForOwner(ctx context.Context, ownerID string) ([]models.Lease, error) {
	return d.queryLeases(ctx, `
		SELECT l.id, l.listing_id, l.tenant_id, l.start_date, l.end_date, l.status, l.created_at
		FROM leases l
		JOIN properties p ON p.id = l.listing_id
		WHERE p.owner_id = ?
		ORDER BY l.end_date DESC`,
		ownerID,
	)
}

// ExpireOverdueLeases flips active leases whose end date has passed to
// expired. Returns the number of leases changed.
func (d *Database) ExpireOverdueLeases(ctx context.Context, now time.Time) (int64, error) {
	res, err := d.db.ExecContext(ctx, `
		UPDATE leases SET status = ? WHERE status = ? AND end_date < ?`,
		models.LeaseExpired, models.LeaseActive, now,
	)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// GetExpiringLeases returns active leases ending inside the window.
func (d *Database) GetExpiringLeases(ctx context.Context, now time.Time, window time.Duration) ([]models.Lease, error) {
	return d.queryLeases(ctx, `
		SELECT `+leaseColumns+` FROM leases
		WHERE status = ? AND end_date >= ? AND end_date < ?
		ORDER BY end_date`,
		models.LeaseActive, now, now.Add(window),
	)
}

func (d *Database) queryLeases(ctx context.Context, query string, args ...interface{}) ([]models.Lease, error) {
	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leases []models.Lease
	for rows.Next() {
		var l models.Lease
		if err := rows.Scan(&l.ID, &l.ListingID, &l.TenantID, &l.StartDate, &l.EndDate, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		leases = append(leases, l)
	}
	return leases, rows.Err()
}
