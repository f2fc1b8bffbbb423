package booking

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	domain "github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

// Events is the slice of the notification surface the booking usecases need.
type Events interface {
	BookingConfirmed(b *models.Booking)
	BookingCompleted(b *models.Booking)
	BookingCanceled(b *models.Booking, by domain.CanceledBy)
}

// ======================================================
// INPUT
// ======================================================

type CreateBookingInput struct {
	ServiceID   uint
	BookingDate time.Time

	// Optional; defaults to PENDING. Only PENDING and CONFIRMED are
	// acceptable at creation time.
	Status string
}

// ======================================================
// USE CASE
// ======================================================

type CreateBooking struct {
	repo   domain.Repository
	events Events
}

func NewCreateBooking(repo domain.Repository, events Events) *CreateBooking {
	return &CreateBooking{repo: repo, events: events}
}

func (uc *CreateBooking) Execute(
	ctx context.Context,
	actor *models.User,
	in CreateBookingInput,
) (*models.Booking, error) {

	if actor.Role != models.RoleSeeker {
		return nil, httperr.ErrField("seeker", "not_a_seeker")
	}

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, httperr.ErrBusiness("service_not_found")
		}
		return nil, err
	}

	if svc.ProviderID == actor.ID {
		return nil, httperr.ErrField("service", "own_service")
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		status = domain.Status(in.Status)
		if status != domain.StatusPending && status != domain.StatusConfirmed {
			return nil, httperr.ErrField("status", "invalid_status")
		}
	}

	b := &models.Booking{
		ServiceID:   svc.ID,
		SeekerID:    actor.ID,
		Status:      string(status),
		BookingDate: in.BookingDate,
	}

	if err := uc.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	full, err := uc.repo.GetByID(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if status == domain.StatusConfirmed {
		uc.events.BookingConfirmed(full)
	}

	return full, nil
}
