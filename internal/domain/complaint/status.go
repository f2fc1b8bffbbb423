package complaint

import "github.com/skillbridge/marketplace/internal/httperr"

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusInReview  Status = "IN_REVIEW"
	StatusResolved  Status = "RESOLVED"
	StatusDismissed Status = "DISMISSED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInReview, StatusResolved, StatusDismissed:
		return true
	}
	return false
}

type Type string

const (
	TypeServiceIssue  Type = "SERVICE_ISSUE"
	TypeBookingIssue  Type = "BOOKING_ISSUE"
	TypeUserBehavior  Type = "USER_BEHAVIOR"
	TypePlatformIssue Type = "PLATFORM_ISSUE"
	TypeOther         Type = "OTHER"
)

func (t Type) Valid() bool {
	switch t {
	case TypeServiceIssue, TypeBookingIssue, TypeUserBehavior, TypePlatformIssue, TypeOther:
		return true
	}
	return false
}

func ValidateType(t Type) error {
	if !t.Valid() {
		return httperr.ErrField("complaint_type", "invalid_complaint_type")
	}
	return nil
}
