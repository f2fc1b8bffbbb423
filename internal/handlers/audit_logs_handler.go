package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/models"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	page, limit, offset := pagination(c)

	q := h.db.Model(&models.AdminActionLog{})

	if v := c.Query("action_type"); v != "" {
		q = q.Where("action_type = ?", v)
	}
	if v := c.Query("resource_type"); v != "" {
		q = q.Where("resource_type = ?", v)
	}
	if v := c.Query("admin_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			q = q.Where("admin_user_id = ?", uint(id))
		}
	}
	if v := c.Query("from"); v != "" {
		if from, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}
	if v := c.Query("to"); v != "" {
		if to, err := time.Parse("2006-01-02", v); err == nil {
			q = q.Where("created_at < ?", to.Add(24*time.Hour))
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "could not count audit entries")
		return
	}

	var logs []models.AdminActionLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {
		httperr.Internal(c, "audit_list_failed", "could not list audit entries")
		return
	}

	httpresp.List(c, logs, page, limit, total)
}
