package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/audit"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/infra/repository"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/models"
	"github.com/skillbridge/marketplace/internal/policy"
)

type CategoryHandler struct {
	db     *gorm.DB
	policy *policy.Evaluator
	audit  *audit.Dispatcher
}

func NewCategoryHandler(db *gorm.DB, pol *policy.Evaluator, auditor *audit.Dispatcher) *CategoryHandler {
	return &CategoryHandler{db: db, policy: pol, audit: auditor}
}

func (h *CategoryHandler) List(c *gin.Context) {
	var categories []models.Category
	if err := h.db.Order("name ASC").Find(&categories).Error; err != nil {
		httperr.Internal(c, "failed_to_list_categories", "could not list categories")
		return
	}
	httpresp.OK(c, categories)
}

func (h *CategoryHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var cat models.Category
	if err := h.db.First(&cat, id).Error; err != nil {
		writeError(c, err)
		return
	}
	httpresp.OK(c, cat)
}

type CategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *CategoryHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !h.policy.Allow(actor, policy.ActionWrite, policy.Resource{Kind: policy.KindCategory}, h.policy.ProviderOrReadOnly) {
		httperr.Forbidden(c, "not_allowed", "only providers and admins manage categories")
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	cat := models.Category{
		Name: req.Name,
		Slug: models.MakeSlug(req.Name),
	}
	if cat.Slug == "" {
		httperr.WriteField(c, "name", "invalid_name", "name must contain letters or digits")
		return
	}

	if err := h.db.Create(&cat).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.WriteField(c, "name", "already_exists", "a category with this name exists")
			return
		}
		httperr.Internal(c, "failed_to_create_category", "could not create category")
		return
	}

	h.auditWrite(c, actor, audit.ActionCreate, cat.ID, "category created: "+cat.Name, nil)
	httpresp.Created(c, cat)
}

func (h *CategoryHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !h.policy.Allow(actor, policy.ActionWrite, policy.Resource{Kind: policy.KindCategory}, h.policy.ProviderOrReadOnly) {
		httperr.Forbidden(c, "not_allowed", "only providers and admins manage categories")
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	var cat models.Category
	if err := h.db.First(&cat, id).Error; err != nil {
		writeError(c, err)
		return
	}

	var req CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	before := map[string]any{"name": cat.Name}

	cat.Name = req.Name
	cat.Slug = models.MakeSlug(req.Name)
	if cat.Slug == "" {
		httperr.WriteField(c, "name", "invalid_name", "name must contain letters or digits")
		return
	}

	if err := h.db.Save(&cat).Error; err != nil {
		if repository.IsUniqueViolation(err) {
			httperr.WriteField(c, "name", "already_exists", "a category with this name exists")
			return
		}
		httperr.Internal(c, "failed_to_update_category", "could not update category")
		return
	}

	h.auditWrite(c, actor, audit.ActionUpdate, cat.ID, "category renamed", &audit.Changes{
		Before: before,
		After:  map[string]any{"name": cat.Name},
	})
	httpresp.OK(c, cat)
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !h.policy.Allow(actor, policy.ActionWrite, policy.Resource{Kind: policy.KindCategory}, h.policy.AdminOnly) {
		httperr.Forbidden(c, "admin_only", "only admins delete categories")
		return
	}

	id, ok := idParam(c)
	if !ok {
		return
	}

	var cat models.Category
	if err := h.db.First(&cat, id).Error; err != nil {
		writeError(c, err)
		return
	}

	// Services keep existing with a null category.
	if err := h.db.Delete(&cat).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_category", "could not delete category")
		return
	}

	h.auditWrite(c, actor, audit.ActionDelete, cat.ID, "category deleted: "+cat.Name, nil)
	c.Status(204)
}

func (h *CategoryHandler) auditWrite(
	c *gin.Context,
	actor *models.User,
	action audit.ActionType,
	id uint,
	description string,
	changes *audit.Changes,
) {
	// The action log records admin activity only. Provider-made category
	// writes are ordinary user actions and stay out of it.
	if !actor.IsAdmin() {
		return
	}
	adminID := actor.ID
	h.audit.Dispatch(audit.Event{
		AdminUserID: &adminID,
		Action:      action,
		Resource:    audit.ResourceCategory,
		ResourceID:  id,
		Description: description,
		Changes:     changes,
		IPAddress:   c.ClientIP(),
		RequestID:   middleware.GetRequestID(c),
	})
}
