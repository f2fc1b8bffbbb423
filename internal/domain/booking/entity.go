package booking

import (
	"time"

	"github.com/skillbridge/marketplace/internal/models"
)

// Transition moves a booking to the requested status, stamping terminal
// timestamps. Returns whether the status actually changed, so callers fire
// entry side effects exactly once.
func Transition(b *models.Booking, to Status, now time.Time) (bool, error) {
	from := Status(b.Status)
	if err := CanTransition(from, to); err != nil {
		return false, err
	}
	if from == to {
		return false, nil
	}

	b.Status = string(to)
	switch to {
	case StatusCanceled:
		b.CanceledAt = &now
	case StatusCompleted:
		b.CompletedAt = &now
	}
	return true, nil
}

// CanceledBy identifies which party requested a cancellation, by comparing
// the requester against the booking's seeker and the service's provider.
type CanceledBy string

const (
	CanceledBySeeker   CanceledBy = "SEEKER"
	CanceledByProvider CanceledBy = "PROVIDER"
	CanceledByAdmin    CanceledBy = "ADMIN"
)

func CancelingParty(b *models.Booking, requesterID uint) CanceledBy {
	switch requesterID {
	case b.SeekerID:
		return CanceledBySeeker
	case b.Service.ProviderID:
		return CanceledByProvider
	}
	return CanceledByAdmin
}
