package booking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

func pendingBooking() *models.Booking {
	return &models.Booking{
		ID:        1,
		ServiceID: 3,
		SeekerID:  7,
		Status:    string(domain.StatusPending),
		Service:   models.Service{ID: 3, ProviderID: 9},
	}
}

func TestTransition_ConfirmNotifiesBothParties(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()

	repo.On("Update", mock.Anything, b).Return(nil)
	events.On("BookingConfirmed", b).Return()

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), seeker(), b, domain.StatusConfirmed)

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusConfirmed), b.Status)
	events.AssertExpectations(t)
}

func TestTransition_CancelBySeeker(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()

	repo.On("Update", mock.Anything, b).Return(nil)
	events.On("BookingCanceled", b, domain.CanceledBySeeker).Return()

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), seeker(), b, domain.StatusCanceled)

	require.NoError(t, err)
	assert.NotNil(t, b.CanceledAt)
	events.AssertExpectations(t)
}

func TestTransition_CancelByProvider(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()
	provider := &models.User{ID: 9, Role: models.RoleProvider, Active: true}

	repo.On("Update", mock.Anything, b).Return(nil)
	events.On("BookingCanceled", b, domain.CanceledByProvider).Return()

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), provider, b, domain.StatusCanceled)

	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestTransition_CancelByAdmin(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()
	admin := &models.User{ID: 1, Role: models.RoleAdmin, Active: true}

	repo.On("Update", mock.Anything, b).Return(nil)
	events.On("BookingCanceled", b, domain.CanceledByAdmin).Return()

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), admin, b, domain.StatusCanceled)

	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestTransition_CompleteNotifies(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()
	b.Status = string(domain.StatusConfirmed)

	repo.On("Update", mock.Anything, b).Return(nil)
	events.On("BookingCompleted", b).Return()

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), seeker(), b, domain.StatusCompleted)

	require.NoError(t, err)
	assert.NotNil(t, b.CompletedAt)
	events.AssertExpectations(t)
}

func TestTransition_TerminalBookingRejected(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()
	b.Status = string(domain.StatusCanceled)

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), seeker(), b, domain.StatusConfirmed)

	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestTransition_SameStatusSkipsUpdateAndEvents(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)
	b := pendingBooking()
	b.Status = string(domain.StatusConfirmed)

	uc := NewTransitionBooking(repo, events)
	err := uc.Execute(context.Background(), seeker(), b, domain.StatusConfirmed)

	require.NoError(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	events.AssertNotCalled(t, "BookingConfirmed", mock.Anything)
}
