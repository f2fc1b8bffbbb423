package handlers

import (
	"gorm.io/gorm"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/middleware"
)

type MeHandler struct {
	db *gorm.DB
}

func NewMeHandler(db *gorm.DB) *MeHandler {
	return &MeHandler{db: db}
}

func (h *MeHandler) Get(c *gin.Context) {
	httpresp.OK(c, middleware.CurrentUser(c))
}

type UpdateMeRequest struct {
	// Role, email and active status are admin-managed; a user only edits
	// presentation and preferences.
	Name               *string `json:"name"`
	EmailNotifications *bool   `json:"email_notifications"`
}

func (h *MeHandler) Update(c *gin.Context) {
	user := middleware.CurrentUser(c)

	var req UpdateMeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.EmailNotifications != nil {
		user.EmailNotifications = *req.EmailNotifications
	}

	if err := h.db.Save(user).Error; err != nil {
		httperr.Internal(c, "failed_to_update_profile", "could not update profile")
		return
	}

	httpresp.OK(c, user)
}
