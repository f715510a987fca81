package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
	"rentnest/server/internal/models"
	"rentnest/server/internal/queue"
)

type ApplicationRequest struct {
	ListingID        string    `json:"listing_id" binding:"required"`
	Employer         string    `json:"employer"`
	MonthlyIncome    int       `json:"monthly_income"`
	MoveInDate       time.Time `json:"move_in_date"`
	Message          string    `json:"message"`
	ReferenceContact string    `json:"reference_contact"`
}

type ApplicationStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateApplication files a tenant's application against an existing
// listing. One application per tenant per listing.
func (h *Handler) CreateApplication(c *gin.Context) {
	var req ApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid application payload"})
		return
	}

	if _, err := h.db.GetListingByID(c.Request.Context(), req.ListingID); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Listing not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to check listing")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply"})
		return
	}

	account := auth.CurrentAccount(c)
	application := &models.Application{
		ID:               uuid.New().String(),
		ListingID:        req.ListingID,
		ApplicantID:      account.ID,
		Employer:         req.Employer,
		MonthlyIncome:    req.MonthlyIncome,
		MoveInDate:       req.MoveInDate,
		Message:          req.Message,
		ReferenceContact: req.ReferenceContact,
	}

	if err := h.db.CreateApplication(c.Request.Context(), application); err != nil {
		if errors.Is(err, database.ErrDuplicateApplication) {
			c.JSON(http.StatusConflict, gin.H{"error": "You already applied to this listing"})
			return
		}
		h.logger.WithError(err).Error("Failed to create application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to apply"})
		return
	}

	if joined, err := h.db.GetApplicationByID(c.Request.Context(), application.ID); err == nil {
		h.publishEvent(queue.Event{Kind: queue.EventApplicationCreated, Application: *joined})
	}

	c.JSON(http.StatusCreated, application)
}

// GetApplications lists applications for the caller: tenants see their own,
// landlords see everything filed against their listings. Newest first, each
// row flattened with the listing title and cover image.
func (h *Handler) GetApplications(c *gin.Context) {
	account := auth.CurrentAccount(c)

	role := c.DefaultQuery("role", account.Role)
	var (
		applications []models.ApplicationWithListing
		err          error
	)
	switch role {
	case models.RoleLandlord:
		applications, err = h.db.GetApplicationsForOwner(c.Request.Context(), account.ID)
	default:
		applications, err = h.db.GetApplicationsByApplicant(c.Request.Context(), account.ID)
	}
	if err != nil {
		h.logger.WithError(err).Error("Failed to get applications")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get applications"})
		return
	}

	if applications == nil {
		applications = []models.ApplicationWithListing{}
	}
	c.JSON(http.StatusOK, applications)
}

// UpdateApplicationStatus lets the listing owner review a pending
// application. Approved and rejected are the only reachable outcomes.
func (h *Handler) UpdateApplicationStatus(c *gin.Context) {
	var req ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status payload"})
		return
	}

	application, err := h.db.GetApplicationByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to get application")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	account := auth.CurrentAccount(c)
	if application.ListingOwnerID != account.ID && account.Role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "access denied"})
		return
	}

	if !models.CanReview(application.Status, req.Status) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid status transition"})
		return
	}

	reviewedAt := time.Now().UTC()
	if err := h.db.UpdateApplicationStatus(c.Request.Context(), application.ID, req.Status, reviewedAt); err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Application not found"})
			return
		}
		h.logger.WithError(err).Error("Failed to update application status")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update application"})
		return
	}

	application.Status = req.Status
	application.ReviewedAt = &reviewedAt
	h.publishEvent(queue.Event{Kind: queue.EventApplicationReviewed, Application: *application})

	c.JSON(http.StatusOK, application)
}
