package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/httpresp"
	"github.com/skillbridge/marketplace/internal/middleware"
	"github.com/skillbridge/marketplace/internal/models"
	"github.com/skillbridge/marketplace/internal/policy"
	usecase "github.com/skillbridge/marketplace/internal/usecase/review"
)

type ReviewHandler struct {
	db     *gorm.DB
	policy *policy.Evaluator
	create *usecase.CreateReview
}

func NewReviewHandler(db *gorm.DB, pol *policy.Evaluator, create *usecase.CreateReview) *ReviewHandler {
	return &ReviewHandler{db: db, policy: pol, create: create}
}

// List returns a service's reviews, newest first. Public.
func (h *ReviewHandler) List(c *gin.Context) {
	serviceID, ok := idParam(c)
	if !ok {
		return
	}

	page, limit, offset := pagination(c)

	q := h.db.Model(&models.Review{}).Where("service_id = ?", serviceID)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "could not list reviews")
		return
	}

	var reviews []models.Review
	if err := q.
		Preload("Seeker").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		httperr.Internal(c, "failed_to_list_reviews", "could not list reviews")
		return
	}

	httpresp.List(c, reviews, page, limit, total)
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required"`
	Comment string `json:"comment"`
}

func (h *ReviewHandler) Create(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	serviceID, ok := idParam(c)
	if !ok {
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	rv, err := h.create.Execute(c.Request.Context(), actor, usecase.CreateReviewInput{
		ServiceID: serviceID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Created(c, rv)
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func (h *ReviewHandler) Update(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := reviewIDParam(c)
	if !ok {
		return
	}

	var rv models.Review
	if err := h.db.First(&rv, id).Error; err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForReview(&rv), h.policy.OwnerOrReadOnly) {
		httperr.Forbidden(c, "not_owner", "only the author edits a review")
		return
	}

	var req UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", err.Error())
		return
	}

	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			httperr.WriteField(c, "rating", "out_of_range", "rating must be between 1 and 5")
			return
		}
		rv.Rating = *req.Rating
	}
	if req.Comment != nil {
		rv.Comment = *req.Comment
	}

	if err := h.db.Save(&rv).Error; err != nil {
		httperr.Internal(c, "failed_to_update_review", "could not update review")
		return
	}

	httpresp.OK(c, rv)
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	actor := middleware.CurrentUser(c)

	id, ok := reviewIDParam(c)
	if !ok {
		return
	}

	var rv models.Review
	if err := h.db.First(&rv, id).Error; err != nil {
		writeError(c, err)
		return
	}

	if !h.policy.Allow(actor, policy.ActionWrite, policy.ForReview(&rv), h.policy.OwnerOrReadOnly) {
		httperr.Forbidden(c, "not_owner", "only the author deletes a review")
		return
	}

	if err := h.db.Delete(&rv).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_review", "could not delete review")
		return
	}

	c.Status(204)
}

// reviewIDParam reads the nested review id; the service id segment is not
// needed once the review row is loaded.
func reviewIDParam(c *gin.Context) (uint, bool) {
	id, err := parseUintParam(c, "review_id")
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "review_id must be a positive integer")
		return 0, false
	}
	return id, true
}
