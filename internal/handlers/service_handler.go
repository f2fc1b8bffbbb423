package handlers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/analytics"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/models"
	"github.com/skillbridge/marketplace/internal/policy"
)

type ServiceHandler struct {
	db     *gorm.DB
	policy *policy.Evaluator
}

func NewServiceHandler(db *gorm.DB, pol *policy.Evaluator) *ServiceHandler {
	return &ServiceHandler{db: db, policy: pol}
}

// ======================================================
// LIST / GET (public)
// ======================================================

func (h *ServiceHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.Model(&models.Service{})

	if v := c.Query("category"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q = q.Where("category_id = ?", uint(id))
		}
	}
	if v := c.Query("provider"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q = q.Where("provider_id = ?", uint(id))
		}
	}
	if v := c.Query("q"); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	var services []models.Service
	if err := q.
		Preload("Provider").
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	if err := h.attachReviewStats(services); err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	httpresp.List(c, services, page, limit, total)
}

func (h *ServiceHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.
		Preload("Provider").
		Preload("Category").
		First(&svc, id).Error; err != nil {
		writeError(c, err)
		return
	}

	services := []models.Service{svc}
	if err := h.attachReviewStats(services); err != nil {
		httperr.Internal(c, "failed_to_get_service", "could not load service")
		return
	}

	httpresp.OK(c, services[0])
}

// Mine lists the authenticated provider's own services, drafts included.
func (h *ServiceHandler) Mine(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit, offset := pagination(c)

	q := h.db.Model(&models.Service{}).Where("provider_id = ?", actor.ID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	var services []models.Service
	if err := q.
		Preload("Category").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	if err := h.attachReviewStats(services); err != nil {
		httperr.Internal(c, "failed_to_list_services", "could not list services")
		return
	}

	httpresp.List(c, services, page, limit, total)
}

// ======================================================
// CREATE / UPDATE / DELETE
// ======================================================

type ServiceRequest struct {
	Title       string   `json:"title" binding:"required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" binding:"required"`
	CategoryID  *uint    `json:"category_id"`
}

func (h *ServiceHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	if !h.policy.Allow(actor, policy.ActionWrite, policy.Resource{Kind: policy.KindService}, h.policy.ProviderOrReadOnly) {
		httperr.Forbidden(c, "not_a_provider", "only providers publish services")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if *req.Price < 0 {
		httperr.WriteField(c, "price", "negative_price", "price must not be negative")
		return
	}

	if req.CategoryID != nil {
		var count int64
		if err := h.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil || count == 0 {
			httperr.WriteField(c, "category_id", "not_found", "category does not exist")
			return
		}
	}

	svc := models.Service{
		ProviderID:  actor.ID,
		CategoryID:  req.CategoryID,
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "could not create service")
		return
	}

	httpresp.Created(c, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForService(&svc), h.policy.OwnerOrReadOnly) {
		httperr.Forbidden(c, "not_owner", "only the owning provider edits a service")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if *req.Price < 0 {
		httperr.WriteField(c, "price", "negative_price", "price must not be negative")
		return
	}

	if req.CategoryID != nil {
		var count int64
		if err := h.db.Model(&models.Category{}).Where("id = ?", *req.CategoryID).Count(&count).Error; err != nil || count == 0 {
			httperr.WriteField(c, "category_id", "not_found", "category does not exist")
			return
		}
	}

	svc.Title = req.Title
	svc.Description = req.Description
	svc.Price = *req.Price
	svc.CategoryID = req.CategoryID

	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "could not update service")
		return
	}

	httpresp.OK(c, svc)
}

func (h *ServiceHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, id).Error; err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForService(&svc), h.policy.OwnerOrReadOnly) {
		httperr.Forbidden(c, "not_owner", "only the owning provider deletes a service")
		return
	}

	if err := h.db.Delete(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_service", "could not delete service")
		return
	}

	c.Status(204)
}

// attachReviewStats fills the computed rating fields with one grouped query.
func (h *ServiceHandler) attachReviewStats(services []models.Service) error {
	if len(services) == 0 {
		return nil
	}

	ids := make([]uint, len(services))
	for i, svc := range services {
		ids[i] = svc.ID
	}

	var rows []struct {
		ServiceID uint
		Avg       float64
		Count     int
	}
	if err := h.db.
		Model(&models.Review{}).
		Select("service_id, AVG(rating) AS avg, COUNT(*) AS count").
		Where("service_id IN ?", ids).
		Group("service_id").
		Scan(&rows).Error; err != nil {
		return err
	}

	stats := make(map[uint]struct {
		avg   float64
		count int
	}, len(rows))
	for _, row := range rows {
		stats[row.ServiceID] = struct {
			avg   float64
			count int
		}{row.Avg, row.Count}
	}

	for i := range services {
		if s, ok := stats[services[i].ID]; ok {
			avg := analytics.Round2(s.avg)
			services[i].AverageRating = &avg
			services[i].ReviewCount = s.count
		}
	}
	return nil
}
