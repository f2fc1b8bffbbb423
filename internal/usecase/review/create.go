package review

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

type Repository interface {
	// GetService preloads the provider for the notification path.
	GetService(ctx context.Context, id uint) (*models.Service, error)
	Create(ctx context.Context, rv *models.Review) error
}

type Events interface {
	ReviewCreated(rv *models.Review, svc *models.Service)
}

// ======================================================
// INPUT
// ======================================================

type CreateReviewInput struct {
	ServiceID uint
	Rating    int
	Comment   string
}

// ======================================================
// USE CASE
// ======================================================

type CreateReview struct {
	repo   Repository
	events Events
}

func NewCreateReview(repo Repository, events Events) *CreateReview {
	return &CreateReview{repo: repo, events: events}
}

func (uc *CreateReview) Execute(
	ctx context.Context,
	actor *models.User,
	in CreateReviewInput,
) (*models.Review, error) {

	if actor.Role != models.RoleSeeker {
		return nil, httperr.ErrField("seeker", "not_a_seeker")
	}

	if in.Rating < 1 || in.Rating > 5 {
		return nil, httperr.ErrField("rating", "out_of_range")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	rv := &models.Review{
		ServiceID: svc.ID,
		SeekerID:  actor.ID,
		Rating:    in.Rating,
		Comment:   in.Comment,
	}

	if err := uc.repo.Create(ctx, rv); err != nil {
		return nil, err
	}

	uc.events.ReviewCreated(rv, svc)
	return rv, nil
}
