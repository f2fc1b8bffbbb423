package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/marketplace/internal/analytics"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
)

type AnalyticsHandler struct {
	analytics *analytics.Service
}

func NewAnalyticsHandler(svc *analytics.Service) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: svc}
}

func (h *AnalyticsHandler) Overview(c *gin.Context) {
	days, _ := strconv.Atoi(c.DefaultQuery("days", "30"))
	if days <= 0 || days > 365 {
		days = 30
	}

	overview, err := h.analytics.Overview(c.Request.Context(), days)
	if err != nil {
		httperr.Internal(c, "analytics_failed", "could not compute analytics")
		return
	}

	httpresp.OK(c, overview)
}
