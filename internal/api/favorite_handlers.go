package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
)

type FavoriteRequest struct {
	ListingID string `json:"listing_id" binding:"required"`
}

func (h *Handler) GetFavorites(c *gin.Context) {
	account := auth.CurrentAccount(c)
	listingIDs, err := h.db.GetFavoriteListingIDs(c.Request.Context(), account.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get favorites")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get favorites"})
		return
	}
	if listingIDs == nil {
		listingIDs = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"listing_ids": listingIDs})
}

// AddFavorite is idempotent: favoriting twice is a no-op, not an error.
func (h *Handler) AddFavorite(c *gin.Context) {
	var req FavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid favorite payload"})
		return
	}

	if _, err := h.db.GetListingByID(c.Request.Context(), req.ListingID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to check listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	account := auth.CurrentAccount(c)
	if err := h.db.AddFavorite(c.Request.Context(), account.ID, req.ListingID); err != nil {
		h.logger.WithError(err).Error("Failed to save favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save favorite"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "saved"})
}

func (h *Handler) RemoveFavorite(c *gin.Context) {
	account := auth.CurrentAccount(c)
	if err := h.db.RemoveFavorite(c.Request.Context(), account.ID, c.Param("listing_id")); err != nil {
		h.logger.WithError(err).Error("Failed to remove favorite")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove favorite"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
