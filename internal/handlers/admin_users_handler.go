package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/audit"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/infra/repository"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/models"
	"github.com/skillbridge/marketplace/internal/validators"
)

// AdminUsersHandler is the moderation surface for accounts. Every mutation
// lands in the audit log with before/after snapshots.
type AdminUsersHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
}

func NewAdminUsersHandler(db *gorm.DB, auditor *audit.Dispatcher) *AdminUsersHandler {
	return &AdminUsersHandler{db: db, audit: auditor}
}

func (h *AdminUsersHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.Model(&models.User{})

	if role := c.Query("role"); role != "" {
		q = q.Where("role = ?", strings.ToUpper(role))
	}
	if v := c.Query("q"); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(email) LIKE ? OR LOWER(name) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "could not list users")
		return
	}

	var users []models.User
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&users).Error; err != nil {
		httperr.Internal(c, "failed_to_list_users", "could not list users")
		return
	}

	httpresp.List(c, users, page, limit, total)
}

func (h *AdminUsersHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, user)
}

type AdminCreateUserRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name"`
	Role  string `json:"role" binding:"required"`
}

func (h *AdminUsersHandler) Create(c *gin.Context) {
	var req AdminCreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	role := models.Role(strings.ToUpper(req.Role))
	if !role.Valid() {
		httperr.WriteField(c, "role", "invalid_role", "role must be SEEKER, PROVIDER or ADMIN")
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailDomainValid(email) {
		httperr.WriteField(c, "email", "invalid_email_domain", "email domain does not resolve")
		return
	}

	user := models.User{
		Email:  email,
		Name:   req.Name,
		Role:   role,
		Active: true,
	}

	if err := h.db.Create(&user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.WriteField(c, "email", "already_exists", "a user with this email exists")
			return
		}
		httperr.Internal(c, "failed_to_create_user", "could not create user")
		return
	}

	h.auditUser(c, audit.ActionCreate, user.ID, "user created: "+user.Email, nil)
	httpresp.Created(c, user)
}

type AdminUpdateUserRequest struct {
	Email  *string `json:"email"`
	Name   *string `json:"name"`
	Role   *string `json:"role"`
	Active *bool   `json:"active"`
}

func (h *AdminUsersHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		writeError(c, err)
		return
	}

	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	before := userSnapshot(&user)

	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !validators.IsEmailDomainValid(email) {
			httperr.WriteField(c, "email", "invalid_email_domain", "email domain does not resolve")
			return
		}
		user.Email = email
	}
	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Role != nil {
		role := models.Role(strings.ToUpper(*req.Role))
		if !role.Valid() {
			httperr.WriteField(c, "role", "invalid_role", "role must be SEEKER, PROVIDER or ADMIN")
			return
		}
		user.Role = role
	}
	if req.Active != nil {
		user.Active = *req.Active
	}

	if err := h.db.Save(&user).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.WriteField(c, "email", "already_exists", "a user with this email exists")
			return
		}
		httperr.Internal(c, "failed_to_update_user", "could not update user")
		return
	}

	h.auditUser(c, audit.ActionUpdate, user.ID, "user updated", &audit.Changes{
		Before: before,
		After:  userSnapshot(&user),
	})
	httpresp.OK(c, user)
}

func (h *AdminUsersHandler) Activate(c *gin.Context) {
	h.setActive(c, true)
}

func (h *AdminUsersHandler) Deactivate(c *gin.Context) {
	h.setActive(c, false)
}

func (h *AdminUsersHandler) setActive(c *gin.Context, active bool) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		writeError(c, err)
		return
	}

	if user.Active != active {
		user.Active = active
		if err := h.db.Save(&user).Error; err != nil {
			httperr.Internal(c, "failed_to_update_user", "could not update user")
			return
		}

		action := audit.ActionDeactivate
		if active {
			action = audit.ActionActivate
		}
		h.auditUser(c, action, user.ID, "user "+string(action)+": "+user.Email, nil)
	}

	httpresp.OK(c, user)
}

func (h *AdminUsersHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	if actor.ID == id {
		httperr.BadRequest(c, "cannot_delete_self", "deactivate the account instead")
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		writeError(c, err)
		return
	}

	if err := h.db.Delete(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_user", "could not delete user")
		return
	}

	h.auditUser(c, audit.ActionDelete, user.ID, "user deleted: "+user.Email, nil)
	c.Status(204)
}

func userSnapshot(u *models.User) map[string]any {
	return map[string]any{
		"email":  u.Email,
		"name":   u.Name,
		"role":   string(u.Role),
		"active": u.Active,
	}
}

func (h *AdminUsersHandler) auditUser(
	c *gin.Context,
	action audit.ActionType,
	id uint,
	description string,
	changes *audit.Changes,
) {
	actor := middleware.CurrentUser(c)
	adminID := actor.ID
	h.audit.Dispatch(audit.Event{
		AdminUserID: &adminID,
		Action:      action,
		Resource:    audit.ResourceUser,
		ResourceID:  id,
		Description: description,
		Changes:     changes,
		IPAddress:   c.ClientIP(),
		RequestID:   middleware.GetRequestID(c),
	})
}
