package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	domain "github.com/skillbridge/marketplace/internal/domain/complaint"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/policy"
	usecase "github.com/skillbridge/marketplace/internal/usecase/complaint"
)

type ComplaintHandler struct {
	repo   domain.Repository
	policy *policy.Evaluator
	create *usecase.CreateComplaint
	update *usecase.UpdateComplaint
}

func NewComplaintHandler(
	repo domain.Repository,
	pol *policy.Evaluator,
	create *usecase.CreateComplaint,
	update *usecase.UpdateComplaint,
) *ComplaintHandler {
	return &ComplaintHandler{repo: repo, policy: pol, create: create, update: update}
}

// List shows admins every complaint, everyone else only their own filings.
func (h *ComplaintHandler) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit, offset := pagination(c)

	f := domain.ListFilter{
		Type: c.Query("type"),
	}
	if v := c.Query("service"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 64); err == nil {
			f.ServiceID = uint(id)
		}
	}
	if !actor.IsAdmin() {
		f.UserID = actor.ID
	}

	complaints, total, err := h.repo.List(c.Request.Context(), f, limit, offset)
	if err != nil {
		httperr.Internal(c, "failed_to_list_complaints", "could not list complaints")
		return
	}

	httpresp.List(c, complaints, page, limit, total)
}

type CreateComplaintRequest struct {
	ComplaintType string `json:"complaint_type" binding:"required"`
	Description   string `json:"description" binding:"required"`
	ServiceID     *uint  `json:"service_id"`
	BookingID     *uint  `json:"booking_id"`
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req CreateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	cp, err := h.create.Execute(c.Request.Context(), actor, usecase.CreateComplaintInput{
		ComplaintType: req.ComplaintType,
		Description:   req.Description,
		ServiceID:     req.ServiceID,
		BookingID:     req.BookingID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, cp)
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	cp, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	// Complaints are private: outsiders get the missing-row 404.
	if !h.policy.Allow(actor, policy.ActionRead, policy.ForComplaint(cp), h.policy.OwnerOnly) {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	httpresp.OK(c, cp)
}

type UpdateComplaintRequest struct {
	Description   *string `json:"description"`
	Status        *string `json:"status"`
	AdminResponse *string `json:"admin_response"`
}

func (h *ComplaintHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	cp, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForComplaint(cp), h.policy.OwnerOnly) {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	var req UpdateComplaintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.update.Execute(c.Request.Context(), actor, cp, usecase.UpdateComplaintInput{
		Description:   req.Description,
		Status:        req.Status,
		AdminResponse: req.AdminResponse,
		IPAddress:     c.ClientIP(),
		RequestID:     middleware.GetRequestID(c),
	}); err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, cp)
}
