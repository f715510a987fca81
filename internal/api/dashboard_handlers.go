package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/models"
)

// Dashboard collects everything the dashboard view shows in one response.
// Empty sections are empty arrays; a landlord with zero listings is a
// normal state, not an error.
type Dashboard struct {
	Listings     []models.Listing                `json:"listings"`
	Applications []models.ApplicationWithListing `json:"applications"`
	Leases       []models.Lease                  `json:"leases"`
	FavoriteIDs  []string                        `json:"favorite_listing_ids"`
}

// GetDashboard fans the section queries out concurrently; each goroutine
// writes its own field, so no locking beyond the WaitGroup is needed.
func (h *Handler) GetDashboard(c *gin.Context) {
	account := auth.CurrentAccount(c)
	ctx := c.Request.Context()

	var (
		dashboard Dashboard
		errs      [4]error
		wg        sync.WaitGroup
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		if account.Role == models.RoleLandlord {
			dashboard.Listings, errs[0] = h.db.GetListingsByOwner(ctx, account.ID)
		}
	}()
	go func() {
		defer wg.Done()
		if account.Role == models.RoleLandlord {
			dashboard.Applications, errs[1] = h.db.GetApplicationsForOwner(ctx, account.ID)
		} else {
			dashboard.Applications, errs[1] = h.db.GetApplicationsByApplicant(ctx, account.ID)
		}
	}()
	go func() {
		defer wg.Done()
		if account.Role == models.RoleLandlord {
			dashboard.Leases, errs[2] = h.db.GetLeasesForOwner(ctx, account.ID)
		} else {
			dashboard.Leases, errs[2] = h.db.GetLeasesByTenant(ctx, account.ID)
		}
	}()
	go func() {
		defer wg.Done()
		dashboard.FavoriteIDs, errs[3] = h.db.GetFavoriteListingIDs(ctx, account.ID)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			h.logger.WithError(err).Error("Failed to load dashboard")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
			return
		}
	}

	if dashboard.Listings == nil {
		dashboard.Listings = []models.Listing{}
	}
	if dashboard.Applications == nil {
		dashboard.Applications = []models.ApplicationWithListing{}
	}
	if dashboard.Leases == nil {
		dashboard.Leases = []models.Lease{}
	}
	if dashboard.FavoriteIDs == nil {
		dashboard.FavoriteIDs = []string{}
	}

	c.JSON(http.StatusOK, dashboard)
}
