package complaint

import (
	"context"

	domain "github.com/skillbridge/marketplace/internal/domain/complaint"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

// Events is the slice of the notification surface the complaint usecases need.
type Events interface {
	ComplaintResolved(cp *models.Complaint)
}

// ======================================================
// INPUT
// ======================================================

type CreateComplaintInput struct {
	ComplaintType string
	Description   string

	ServiceID *uint
	BookingID *uint
}

// ======================================================
// USE CASE
// ======================================================

type CreateComplaint struct {
	repo domain.Repository
}

func NewCreateComplaint(repo domain.Repository) *CreateComplaint {
	return &CreateComplaint{repo: repo}
}

func (uc *CreateComplaint) Execute(
	ctx context.Context,
	actor *models.User,
	in CreateComplaintInput,
) (*models.Complaint, error) {

	if err := domain.ValidateType(domain.Type(in.ComplaintType)); err != nil {
		return nil, err
	}
	if in.Description == "" {
		return nil, httperr.ErrField("description", "required")
	}

	if in.ServiceID != nil {
		ok, err := uc.repo.ServiceExists(ctx, *in.ServiceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrField("service_id", "not_found")
		}
	}
	if in.BookingID != nil {
		ok, err := uc.repo.BookingExists(ctx, *in.BookingID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrField("booking_id", "not_found")
		}
	}

	cp := &models.Complaint{
		UserID:        actor.ID,
		ServiceID:     in.ServiceID,
		BookingID:     in.BookingID,
		ComplaintType: in.ComplaintType,
		Description:   in.Description,
		Status:        string(domain.StatusPending),
	}

	if err := uc.repo.Create(ctx, cp); err != nil {
		return nil, err
	}

	return uc.repo.GetByID(ctx, cp.ID)
}
