package api

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
	"rentnest/server/internal/models"
	"rentnest/server/internal/search"
	"rentnest/server/internal/storage"
)

type ListingRequest struct {
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description"`
	Street        string    `json:"street" binding:"required"`
	City          string    `json:"city" binding:"required"`
	PostalCode    string    `json:"postal_code"`
	Category      string    `json:"category" binding:"required"`
	Bedrooms      int       `json:"bedrooms"`
	Bathrooms     int       `json:"bathrooms"`
	MonthlyRent   int       `json:"monthly_rent" binding:"required"`
	Deposit       int       `json:"deposit"`
	AvailableFrom time.Time `json:"available_from"`
	Amenities     []string  `json:"amenities"`
	IsActive      *bool     `json:"is_active"`
}

// GetListings returns the public set: verified and active listings, newest
// first, with any query filters applied in-process. An empty marketplace
// falls back to the fixed sample set so the home preview is never blank.
func (h *Handler) GetListings(c *gin.Context) {
	listings, err := h.db.GetPublicListings(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}

	if len(listings) == 0 {
		listings = search.SampleListings()
	}

	filter := search.ParseFilter(c.Request.URL.Query())
	listings = filter.Apply(listings)
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

func (h *Handler) GetListing(c *gin.Context) {
	listing, err := h.db.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return
	}

	// Unverified or deactivated listings are visible to their owner only.
	if listing.VerificationStatus != models.VerificationVerified || !listing.IsActive {
		account := auth.CurrentAccount(c)
		if account == nil || (account.ID != listing.OwnerID && account.Role != models.RoleAdmin) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
	}

	c.JSON(http.StatusOK, listing)
}

// CreateListing creates a landlord's listing. The role gate sits in the
// route middleware, so a non-landlord request never reaches this handler
// or the database.
func (h *Handler) CreateListing(c *gin.Context) {
	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown listing category"})
		return
	}

	account := auth.CurrentAccount(c)
	listing := &models.Listing{
		ID:            uuid.New().String(),
		OwnerID:       account.ID,
		Title:         req.Title,
		Description:   req.Description,
		Street:        req.Street,
		City:          strings.ToLower(req.City),
		PostalCode:    req.PostalCode,
		Category:      req.Category,
		Bedrooms:      req.Bedrooms,
		Bathrooms:     req.Bathrooms,
		MonthlyRent:   req.MonthlyRent,
		Deposit:       req.Deposit,
		AvailableFrom: req.AvailableFrom,
		Amenities:     req.Amenities,
		IsActive:      true,
	}
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}

	h.geocodeListing(listing)

	if err := h.db.CreateListing(c.Request.Context(), listing); err != nil {
		h.logger.WithError(err).Error("Failed to create listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create listing"})
		return
	}

	c.JSON(http.StatusCreated, listing)
}

func (h *Handler) UpdateListing(c *gin.Context) {
	listing, ok := h.ownedListing(c)
	if !ok {
		return
	}

	var req ListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid listing payload"})
		return
	}
	if !models.ValidCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown listing category"})
		return
	}

	addressChanged := listing.Street != req.Street ||
		listing.City != strings.ToLower(req.City) ||
		listing.PostalCode != req.PostalCode

	listing.Title = req.Title
	listing.Description = req.Description
	listing.Street = req.Street
	listing.City = strings.ToLower(req.City)
	listing.PostalCode = req.PostalCode
	listing.Category = req.Category
	listing.Bedrooms = req.Bedrooms
	listing.Bathrooms = req.Bathrooms
	listing.MonthlyRent = req.MonthlyRent
	listing.Deposit = req.Deposit
	listing.AvailableFrom = req.AvailableFrom
	listing.Amenities = req.Amenities
	if req.IsActive != nil {
		listing.IsActive = *req.IsActive
	}
	if addressChanged {
		listing.Latitude = nil
		listing.Longitude = nil
		h.geocodeListing(listing)
	}

	// Every content update sends the listing back through review.
	if err := h.db.UpdateListing(c.Request.Context(), listing); err != nil {
		h.logger.WithError(err).Error("Failed to update listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update listing"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

func (h *Handler) DeleteListing(c *gin.Context) {
	listing, ok := h.ownedListing(c)
	if !ok {
		return
	}

	for _, imageURL := range listing.ImageURLs {
		if objectPath := h.store.ObjectPath(imageURL); objectPath != "" {
			if err := h.store.Remove(objectPath); err != nil {
				h.logger.WithError(err).Warn("Failed to remove listing image object")
			}
		}
	}

	if err := h.db.DeleteListing(c.Request.Context(), listing.ID); err != nil {
		h.logger.WithError(err).Error("Failed to delete listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete listing"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (h *Handler) UploadListingImage(c *gin.Context) {
	listing, ok := h.ownedListing(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image file"})
		return
	}
	defer file.Close()

	_, publicURL, err := h.store.Upload(storage.BucketPropertyImages, header.Filename, file)
	if err != nil {
		h.logger.WithError(err).Error("Failed to store listing image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	listing.ImageURLs = append(listing.ImageURLs, publicURL)
	if err := h.db.UpdateListing(c.Request.Context(), listing); err != nil {
		h.logger.WithError(err).Error("Failed to attach listing image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach image"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"url": publicURL, "listing": listing})
}

// RemoveListingImage drops an image URL from the listing and deletes the
// stored object, so removed images never linger on disk.
func (h *Handler) RemoveListingImage(c *gin.Context) {
	listing, ok := h.ownedListing(c)
	if !ok {
		return
	}

	imageURL := c.Query("url")
	if imageURL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing image url"})
		return
	}

	kept := listing.ImageURLs[:0]
	found := false
	for _, u := range listing.ImageURLs {
		if u == imageURL {
			found = true
			continue
		}
		kept = append(kept, u)
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"error": "Image not on listing"})
		return
	}
	listing.ImageURLs = kept

	if err := h.db.UpdateListing(c.Request.Context(), listing); err != nil {
		h.logger.WithError(err).Error("Failed to detach listing image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach image"})
		return
	}

	if objectPath := h.store.ObjectPath(imageURL); objectPath != "" {
		if err := h.store.Remove(objectPath); err != nil {
			h.logger.WithError(err).Warn("Failed to remove image object")
		}
	}

	c.JSON(http.StatusOK, listing)
}

// GetCities backs the search type-ahead: cities that actually have
// listings, or the configured city list while the marketplace is empty.
func (h *Handler) GetCities(c *gin.Context) {
	cities, err := h.db.DistinctCities(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("Failed to get cities")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get cities"})
		return
	}
	if len(cities) == 0 {
		cities = h.cities
	}

	// ?q= narrows the list the way the type-ahead does.
	if q := c.Query("q"); q != "" {
		suggester := search.NewSuggester(cities)
		suggester.SetInput(q)
		cities = suggester.Matches()
		if cities == nil {
			cities = []string{}
		}
	}
	c.JSON(http.StatusOK, gin.H{"cities": cities})
}

// GetMyListings returns the caller's own listings regardless of
// verification state.
func (h *Handler) GetMyListings(c *gin.Context) {
	account := auth.CurrentAccount(c)
	listings, err := h.db.GetListingsByOwner(c.Request.Context(), account.ID)
	if err != nil {
		h.logger.WithError(err).Error("Failed to get own listings")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listings"})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}
	c.JSON(http.StatusOK, listings)
}

// ownedListing loads the listing from the :id param and enforces that the
// caller owns it. Admins pass the owner check.
func (h *Handler) ownedListing(c *gin.Context) (*models.Listing, bool) {
	listing, err := h.db.GetListingByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return nil, false
		}
		h.logger.WithError(err).Error("Failed to get listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get listing"})
		return nil, false
	}

	account := auth.CurrentAccount(c)
	if account.ID != listing.OwnerID && account.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return nil, false
	}
	return listing, true
}

// geocodeListing resolves coordinates best effort. A geocoding failure
// never blocks the save; the listing just stays without coordinates.
func (h *Handler) geocodeListing(listing *models.Listing) {
	if h.geocoder == nil || listing.Street == "" {
		return
	}
	lat, lon, err := h.geocoder.GeocodeAddress(listing.Street, listing.PostalCode, listing.City)
	if err != nil {
		h.logger.WithError(err).WithField("listing_id", listing.ID).Warn("Failed to geocode listing address")
		return
	}
	listing.Latitude = &lat
	listing.Longitude = &lon
}
