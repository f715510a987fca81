package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"rentnest/server/internal/auth"
	"rentnest/server/internal/database"
	"rentnest/server/internal/models"
	"rentnest/server/internal/storage"
)

// SubmitVerification accepts an identity document and moves the account
// into the pending verification state. The steps are upload, request row,
// account status; a failure anywhere rolls the account back to not_started
// and removes the uploaded document, so a failed attempt never blocks the
// next one.
func (h *Handler) SubmitVerification(c *gin.Context) {
	documentType := c.PostForm("document_type")
	if !models.ValidDocumentType(documentType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown document type"})
		return
	}

	file, header, err := c.Request.FormFile("document")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing document file"})
		return
	}
	defer file.Close()

	account := auth.CurrentAccount(c)
	ctx := c.Request.Context()

	objectPath, _, err := h.store.Upload(storage.BucketVerificationDocuments, header.Filename, file)
	if err != nil {
		h.logger.WithError(err).Error("Failed to store verification document")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store document"})
		return
	}

	request := &models.VerificationRequest{
		ID:             uuid.New().String(),
		AccountID:      account.ID,
		DocumentType:   documentType,
		DocumentNumber: c.PostForm("document_number"),
		DocumentPath:   objectPath,
	}
	if err := h.db.CreateVerificationRequest(ctx, request); err != nil {
		h.logger.WithError(err).Error("Failed to create verification request")
		h.rollbackVerification(c, objectPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit verification"})
		return
	}

	if err := h.db.UpdateAccountVerification(ctx, account.ID, models.VerificationPending); err != nil {
		h.logger.WithError(err).Error("Failed to mark account pending verification")
		h.rollbackVerification(c, objectPath)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit verification"})
		return
	}
	account.VerificationStatus = models.VerificationPending

	c.JSON(http.StatusCreated, gin.H{"status": models.VerificationPending, "request": request})
}

// GetVerificationStatus returns the account's verification state and the
// latest submitted request, if any.
func (h *Handler) GetVerificationStatus(c *gin.Context) {
	account := auth.CurrentAccount(c)

	request, err := h.db.GetLatestVerificationRequest(c.Request.Context(), account.ID)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"status": account.VerificationStatus, "request": nil})
			return
		}
		h.logger.WithError(err).Error("Failed to get verification request")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get verification status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": account.VerificationStatus, "request": request})
}

// rollbackVerification undoes a half-finished submission: account back to
// not_started, orphan upload removed. Both best effort.
func (h *Handler) rollbackVerification(c *gin.Context, objectPath string) {
	account := auth.CurrentAccount(c)
	if err := h.db.UpdateAccountVerification(c.Request.Context(), account.ID, models.VerificationNotStarted); err != nil {
		h.logger.WithError(err).Error("Failed to roll back account verification status")
	}
	if err := h.store.Remove(objectPath); err != nil {
		h.logger.WithError(err).Warn("Failed to remove orphaned verification document")
	}
}
