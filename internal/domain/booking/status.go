package booking

import "github.com/skillbridge/marketplace/internal/httperr"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCanceled  Status = "CANCELED"
	StatusCompleted Status = "COMPLETED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted:
		return true
	}
	return false
}

// Terminal statuses admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCanceled || s == StatusCompleted
}

// CanTransition enforces only the terminal-state rule; which party may set
// which status is the policy layer's concern.
func CanTransition(from, to Status) error {
	if !to.Valid() {
		return httperr.ErrBusiness("invalid_status")
	}
	if from.Terminal() {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func InitialStatus() Status {
	return StatusPending
}
