package policy

import "github.com/skillbridge/marketplace/internal/models"

type Kind string

const (
	KindUser      Kind = "user"
	KindCategory  Kind = "category"
	KindService   Kind = "service"
	KindBooking   Kind = "booking"
	KindReview    Kind = "review"
	KindComplaint Kind = "complaint"
)

// Resource is the policy-facing view of a target object: its kind plus the
// extracted ownership ids. Each resource kind has exactly one constructor so
// ownership extraction is explicit rather than duck-typed.
type Resource struct {
	Kind Kind

	// OwnerID is the user allowed to mutate the object: the service's
	// provider, the booking's or review's seeker, the complaint's filer,
	// the user record itself.
	OwnerID uint

	// Participant ids beyond the owner, for visibility checks. Only set for
	// bookings (the provider of the booked service).
	ProviderID uint
}

func ForUser(u *models.User) Resource {
	return Resource{Kind: KindUser, OwnerID: u.ID}
}

func ForCategory(_ *models.Category) Resource {
	return Resource{Kind: KindCategory}
}

func ForService(s *models.Service) Resource {
	return Resource{Kind: KindService, OwnerID: s.ProviderID}
}

// ForBooking needs the provider of the booked service; callers preload it.
func ForBooking(b *models.Booking) Resource {
	return Resource{
		Kind:       KindBooking,
		OwnerID:    b.SeekerID,
		ProviderID: b.Service.ProviderID,
	}
}

func ForReview(r *models.Review) Resource {
	return Resource{Kind: KindReview, OwnerID: r.SeekerID}
}

func ForComplaint(cp *models.Complaint) Resource {
	return Resource{Kind: KindComplaint, OwnerID: cp.UserID}
}
