package booking

import (
	"context"
	"time"

	domain "github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/models"
)

// ======================================================
// USE CASE
// ======================================================

type TransitionBooking struct {
	repo   domain.Repository
	events Events
}

func NewTransitionBooking(repo domain.Repository, events Events) *TransitionBooking {
	return &TransitionBooking{repo: repo, events: events}
}

// Execute applies a status change to an already-loaded, already-authorized
// booking. Side effects fire only when the status actually changes, so a
// repeated request is a harmless no-op.
func (uc *TransitionBooking) Execute(
	ctx context.Context,
	actor *models.User,
	b *models.Booking,
	to domain.Status,
) error {

	changed, err := domain.Transition(b, to, time.Now().UTC())
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	if err := uc.repo.Update(ctx, b); err != nil {
		return err
	}

	switch to {
	case domain.StatusConfirmed:
		uc.events.BookingConfirmed(b)
	case domain.StatusCompleted:
		uc.events.BookingCompleted(b)
	case domain.StatusCanceled:
		uc.events.BookingCanceled(b, domain.CancelingParty(b, actor.ID))
	}

	return nil
}
