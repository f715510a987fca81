package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rentnest/server/internal/auth"
)

// ProfileRequest deliberately has no role field: the role is fixed at
// sign-up and no endpoint can change it.
type ProfileRequest struct {
	FullName  string `json:"full_name" binding:"required"`
	Phone     string `json:"phone"`
	AvatarURL string `json:"avatar_url"`
}

func (h *Handler) UpdateProfile(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile payload"})
		return
	}

	account := auth.CurrentAccount(c)
	if err := h.db.UpdateAccountProfile(c.Request.Context(), account.ID, req.FullName, req.Phone, req.AvatarURL); err != nil {
		h.logger.WithError(err).Error("Failed to update profile")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	account.FullName = req.FullName
	account.Phone = req.Phone
	account.AvatarURL = req.AvatarURL
	c.JSON(http.StatusOK, gin.H{"account": account})
}
