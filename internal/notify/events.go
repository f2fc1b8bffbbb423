package notify

import (
	"strconv"
	"strings"

	"github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/models"
)

// Events translates domain happenings into notifications. Bookings must come
// in with Seeker and Service.Provider preloaded; helpers tolerate missing
// associations by skipping the recipient.
type Events struct {
	notifier   *Notifier
	dispatcher *Dispatcher
}

func NewEvents(notifier *Notifier, dispatcher *Dispatcher) *Events {
	return &Events{notifier: notifier, dispatcher: dispatcher}
}

func bookingData(b *models.Booking) map[string]string {
	return map[string]string{
		"ServiceTitle": b.Service.Title,
		"BookingDate":  b.BookingDate.Format("2006-01-02 15:04"),
	}
}

func (e *Events) BookingConfirmed(b *models.Booking) {
	data := bookingData(b)
	seeker := b.Seeker
	provider := b.Service.Provider
	e.dispatcher.Dispatch(func() {
		_ = e.notifier.Send(&seeker, "Booking confirmed", "booking_confirmed_seeker", data)
		_ = e.notifier.Send(&provider, "Booking confirmed", "booking_confirmed_provider", data)
	})
}

func (e *Events) BookingCompleted(b *models.Booking) {
	data := bookingData(b)
	seeker := b.Seeker
	provider := b.Service.Provider
	e.dispatcher.Dispatch(func() {
		_ = e.notifier.Send(&seeker, "Booking completed", "booking_completed_seeker", data)
		_ = e.notifier.Send(&provider, "Booking completed", "booking_completed_provider", data)
	})
}

// BookingCanceled notifies the side that did not cancel. An admin
// cancellation notifies both parties.
func (e *Events) BookingCanceled(b *models.Booking, by booking.CanceledBy) {
	data := bookingData(b)
	data["CanceledBy"] = strings.ToLower(string(by))
	seeker := b.Seeker
	provider := b.Service.Provider
	e.dispatcher.Dispatch(func() {
		if by != booking.CanceledBySeeker {
			_ = e.notifier.Send(&seeker, "Booking canceled", "booking_canceled_seeker", data)
		}
		if by != booking.CanceledByProvider {
			_ = e.notifier.Send(&provider, "Booking canceled", "booking_canceled_provider", data)
		}
	})
}

// ReviewCreated tells the provider about a new review. The service must have
// Provider preloaded.
func (e *Events) ReviewCreated(rv *models.Review, svc *models.Service) {
	data := map[string]string{
		"ServiceTitle": svc.Title,
		"Rating":       strconv.Itoa(rv.Rating),
	}
	provider := svc.Provider
	e.dispatcher.Dispatch(func() {
		_ = e.notifier.Send(&provider, "New review", "new_review", data)
	})
}

// ComplaintResolved tells the filer. The complaint must have User preloaded.
func (e *Events) ComplaintResolved(cp *models.Complaint) {
	data := map[string]string{
		"ComplaintType": cp.ComplaintType,
		"AdminResponse": cp.AdminResponse,
	}
	filer := cp.User
	e.dispatcher.Dispatch(func() {
		_ = e.notifier.Send(&filer, "Complaint resolved", "complaint_resolved", data)
	})
}
