package database

import (
	"context"
	"time"
)

// AddFavorite is idempotent: favoriting the same listing twice is a no-op.
func (d *Database) AddFavorite(ctx context.Context, accountID, listingID string) error {
	_, err := d.db.ExecContext(ctx, `
		INSERT OR IGNORE INTO favorites (account_id, listing_id, created_at)
		VALUES (?, ?, ?)`,
		accountID, listingID, time.Now().UTC(),
	)
	return err
}

func (d *Database) RemoveFavorite(ctx context.Context, accountID, listingID string) error {
	_, err := d.db.ExecContext(ctx, `
		DELETE FROM favorites WHERE account_id = ? AND listing_id = ?`,
		accountID, listingID,
	)
	return err
}

// GetFavoriteListingIDs returns the listing ids an account has favorited,
// most recently saved first.
func (d *Database) GetFavoriteListingIDs(ctx context.Context, accountID string) ([]string, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT listing_id FROM favorites
		WHERE account_id = ?
		ORDER BY created_at DESC`,
		accountID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
