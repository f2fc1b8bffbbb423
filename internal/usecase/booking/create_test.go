package booking

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	domain "github.com/skillbridge/marketplace/internal/domain/booking"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

// Mock repository

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Service), args.Error(1)
}

func (m *MockBookingRepository) Create(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	if b != nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uint) (*models.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *models.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) ListForSeeker(ctx context.Context, seekerID uint, limit, offset int) ([]models.Booking, int64, error) {
	args := m.Called(ctx, seekerID, limit, offset)
	return args.Get(0).([]models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListForProvider(ctx context.Context, providerID uint, limit, offset int) ([]models.Booking, int64, error) {
	args := m.Called(ctx, providerID, limit, offset)
	return args.Get(0).([]models.Booking), args.Get(1).(int64), args.Error(2)
}

func (m *MockBookingRepository) ListAll(ctx context.Context, limit, offset int) ([]models.Booking, int64, error) {
	args := m.Called(ctx, limit, offset)
	return args.Get(0).([]models.Booking), args.Get(1).(int64), args.Error(2)
}

var _ domain.Repository = (*MockBookingRepository)(nil)

// Mock events

type MockEvents struct {
	mock.Mock
}

func (m *MockEvents) BookingConfirmed(b *models.Booking) {
	m.Called(b)
}

func (m *MockEvents) BookingCompleted(b *models.Booking) {
	m.Called(b)
}

func (m *MockEvents) BookingCanceled(b *models.Booking, by domain.CanceledBy) {
	m.Called(b, by)
}

var _ Events = (*MockEvents)(nil)

// Fixtures

func seeker() *models.User {
	return &models.User{ID: 7, Role: models.RoleSeeker, Active: true}
}

func testService() *models.Service {
	return &models.Service{ID: 3, ProviderID: 9, Title: "Deep cleaning", Price: 80}
}

func slot() time.Time {
	return time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)
}

// Tests

func TestCreateBooking_DefaultsToPending(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)

	repo.On("GetService", mock.Anything, uint(3)).Return(testService(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, uint(999)).Return(&models.Booking{
		ID:        999,
		ServiceID: 3,
		SeekerID:  7,
		Status:    string(domain.StatusPending),
	}, nil)

	uc := NewCreateBooking(repo, events)
	b, err := uc.Execute(context.Background(), seeker(), CreateBookingInput{
		ServiceID:   3,
		BookingDate: slot(),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), b.Status)
	events.AssertNotCalled(t, "BookingConfirmed", mock.Anything)
}

func TestCreateBooking_ConfirmedFiresNotification(t *testing.T) {
	repo := new(MockBookingRepository)
	events := new(MockEvents)

	confirmed := &models.Booking{
		ID:        999,
		ServiceID: 3,
		SeekerID:  7,
		Status:    string(domain.StatusConfirmed),
	}

	repo.On("GetService", mock.Anything, uint(3)).Return(testService(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, uint(999)).Return(confirmed, nil)
	events.On("BookingConfirmed", confirmed).Return()

	uc := NewCreateBooking(repo, events)
	_, err := uc.Execute(context.Background(), seeker(), CreateBookingInput{
		ServiceID:   3,
		BookingDate: slot(),
		Status:      "CONFIRMED",
	})

	require.NoError(t, err)
	events.AssertExpectations(t)
}

func TestCreateBooking_RejectsNonSeeker(t *testing.T) {
	uc := NewCreateBooking(new(MockBookingRepository), new(MockEvents))
	provider := &models.User{ID: 9, Role: models.RoleProvider, Active: true}

	_, err := uc.Execute(context.Background(), provider, CreateBookingInput{ServiceID: 3, BookingDate: slot()})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "not_a_seeker", fe.Code)
}

func TestCreateBooking_RejectsOwnService(t *testing.T) {
	repo := new(MockBookingRepository)
	svc := testService()
	svc.ProviderID = 7 // same as the acting seeker
	repo.On("GetService", mock.Anything, uint(3)).Return(svc, nil)

	uc := NewCreateBooking(repo, new(MockEvents))
	_, err := uc.Execute(context.Background(), seeker(), CreateBookingInput{ServiceID: 3, BookingDate: slot()})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "own_service", fe.Code)
}

func TestCreateBooking_ServiceNotFound(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetService", mock.Anything, uint(3)).Return(nil, gorm.ErrRecordNotFound)

	uc := NewCreateBooking(repo, new(MockEvents))
	_, err := uc.Execute(context.Background(), seeker(), CreateBookingInput{ServiceID: 3, BookingDate: slot()})

	assert.True(t, httperr.IsBusiness(err, "service_not_found"))
}

func TestCreateBooking_RejectsTerminalInitialStatus(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetService", mock.Anything, uint(3)).Return(testService(), nil)

	uc := NewCreateBooking(repo, new(MockEvents))

	for _, status := range []string{"CANCELED", "COMPLETED", "SHIPPED"} {
		_, err := uc.Execute(context.Background(), seeker(), CreateBookingInput{
			ServiceID:   3,
			BookingDate: slot(),
			Status:      status,
		})

		fe, ok := httperr.AsField(err)
		require.True(t, ok, status)
		assert.Equal(t, "invalid_status", fe.Code, status)
	}
}

func TestCreateBooking_DuplicateSlotSurfacesFieldError(t *testing.T) {
	repo := new(MockBookingRepository)
	repo.On("GetService", mock.Anything, uint(3)).Return(testService(), nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(httperr.ErrField("booking_date", "duplicate_booking"))

	uc := NewCreateBooking(repo, new(MockEvents))
	_, err := uc.Execute(context.Background(), seeker(), CreateBookingInput{ServiceID: 3, BookingDate: slot()})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "booking_date", fe.Field)
	assert.Equal(t, "duplicate_booking", fe.Code)
}
