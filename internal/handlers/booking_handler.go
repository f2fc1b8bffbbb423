package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillbridge/marketplace/internal/audit"
	domain "github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/models"
	"github.com/skillbridge/marketplace/internal/policy"
	usecase "github.com/skillbridge/marketplace/internal/usecase/booking"
)

type BookingHandler struct {
	repo       domain.Repository
	policy     *policy.Evaluator
	create     *usecase.CreateBooking
	transition *usecase.TransitionBooking
	audit      *audit.Dispatcher
}

func NewBookingHandler(
	repo domain.Repository,
	pol *policy.Evaluator,
	create *usecase.CreateBooking,
	transition *usecase.TransitionBooking,
	auditor *audit.Dispatcher,
) *BookingHandler {
	return &BookingHandler{
		repo:       repo,
		policy:     pol,
		create:     create,
		transition: transition,
		audit:      auditor,
	}
}

// List is scoped by role: seekers see their own bookings, providers the
// bookings on their services, admins everything.
func (h *BookingHandler) List(c *gin.Context) {
	actor := middleware.CurrentUser(c)
	page, limit, offset := pagination(c)

	var (
		bookings []models.Booking
		total    int64
		err      error
	)

	switch {
	case actor.IsAdmin():
		bookings, total, err = h.repo.ListAll(c.Request.Context(), limit, offset)
	case actor.Role == models.RoleProvider:
		bookings, total, err = h.repo.ListForProvider(c.Request.Context(), actor.ID, limit, offset)
	default:
		bookings, total, err = h.repo.ListForSeeker(c.Request.Context(), actor.ID, limit, offset)
	}
	if err != nil {
		httperr.Internal(c, "failed_to_list_bookings", "could not list bookings")
		return
	}

	httpresp.List(c, bookings, page, limit, total)
}

type CreateBookingRequest struct {
	ServiceID   uint      `json:"service_id" binding:"required"`
	BookingDate time.Time `json:"booking_date" binding:"required"`
	Status      string    `json:"status"`
}

func (h *BookingHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	b, err := h.create.Execute(c.Request.Context(), actor, usecase.CreateBookingInput{
		ServiceID:   req.ServiceID,
		BookingDate: req.BookingDate,
		Status:      req.Status,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, b)
}

func (h *BookingHandler) Get(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	// Non-participants get the same 404 as a missing row.
	if !h.policy.Allow(actor, policy.ActionRead, policy.ForBooking(b), h.policy.Participant) {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	httpresp.OK(c, b)
}

type UpdateBookingRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *BookingHandler) UpdateStatus(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForBooking(b), h.policy.Participant) {
		httperr.NotFound(c, "not_found", "resource not found")
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if err := h.transition.Execute(c.Request.Context(), actor, b, domain.Status(req.Status)); err != nil {
		writeError(c, err)
		return
	}

	if actor.IsAdmin() && actor.ID != b.SeekerID && actor.ID != b.Service.ProviderID {
		adminID := actor.ID
		h.audit.Dispatch(audit.Event{
			AdminUserID: &adminID,
			Action:      audit.ActionUpdate,
			Resource:    audit.ResourceBooking,
			ResourceID:  b.ID,
			Description: "booking moved to " + b.Status,
			IPAddress:   c.ClientIP(),
			RequestID:   middleware.GetRequestID(c),
		})
	}

	httpresp.OK(c, b)
}

// Delete removes a booking record outright. Participants cancel through the
// status endpoint; hard deletion is an admin cleanup tool.
func (h *BookingHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := idParam(c)
	if !ok {
		return
	}

	b, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForBooking(b), h.policy.AdminOnly) {
		httperr.Forbidden(c, "admin_only", "bookings are canceled, not deleted")
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		httperr.Internal(c, "failed_to_delete_booking", "could not delete booking")
		return
	}

	adminID := actor.ID
	h.audit.Dispatch(audit.Event{
		AdminUserID: &adminID,
		Action:      audit.ActionDelete,
		Resource:    audit.ResourceBooking,
		ResourceID:  b.ID,
		Description: "booking deleted",
		IPAddress:   c.ClientIP(),
		RequestID:   middleware.GetRequestID(c),
	})

	c.Status(204)
}
