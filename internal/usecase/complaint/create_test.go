package complaint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domain "github.com/skillbridge/marketplace/internal/domain/complaint"
	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

func uintptr2(v uint) *uint { return &v }

func TestCreateComplaint_Success(t *testing.T) {
	repo := new(MockComplaintRepository)
	repo.On("ServiceExists", mock.Anything, uint(3)).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	repo.On("GetByID", mock.Anything, uint(42)).Return(pendingComplaint(), nil)

	uc := NewCreateComplaint(repo)
	cp, err := uc.Execute(context.Background(), filer(), CreateComplaintInput{
		ComplaintType: "SERVICE_ISSUE",
		Description:   "late arrival",
		ServiceID:     uintptr2(3),
	})

	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPending), cp.Status)
	repo.AssertExpectations(t)
}

func TestCreateComplaint_InvalidType(t *testing.T) {
	uc := NewCreateComplaint(new(MockComplaintRepository))

	_, err := uc.Execute(context.Background(), filer(), CreateComplaintInput{
		ComplaintType: "RANT",
		Description:   "x",
	})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "complaint_type", fe.Field)
}

func TestCreateComplaint_EmptyDescription(t *testing.T) {
	uc := NewCreateComplaint(new(MockComplaintRepository))

	_, err := uc.Execute(context.Background(), filer(), CreateComplaintInput{
		ComplaintType: "OTHER",
	})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "description", fe.Field)
}

func TestCreateComplaint_DanglingServiceRef(t *testing.T) {
	repo := new(MockComplaintRepository)
	repo.On("ServiceExists", mock.Anything, uint(77)).Return(false, nil)

	uc := NewCreateComplaint(repo)
	_, err := uc.Execute(context.Background(), filer(), CreateComplaintInput{
		ComplaintType: "SERVICE_ISSUE",
		Description:   "x",
		ServiceID:     uintptr2(77),
	})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "service_id", fe.Field)
	assert.Equal(t, "not_found", fe.Code)
}

func TestCreateComplaint_DanglingBookingRef(t *testing.T) {
	repo := new(MockComplaintRepository)
	repo.On("BookingExists", mock.Anything, uint(12)).Return(false, nil)

	uc := NewCreateComplaint(repo)
	_, err := uc.Execute(context.Background(), filer(), CreateComplaintInput{
		ComplaintType: "BOOKING_ISSUE",
		Description:   "x",
		BookingID:     uintptr2(12),
	})

	fe, ok := httperr.AsField(err)
	require.True(t, ok)
	assert.Equal(t, "booking_id", fe.Field)
}

func TestCreateComplaint_FilerAndStatusAssigned(t *testing.T) {
	repo := new(MockComplaintRepository)
	var captured *models.Complaint
	repo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		captured = args.Get(1).(*models.Complaint)
	}).Return(nil)
	repo.On("GetByID", mock.Anything, uint(42)).Return(pendingComplaint(), nil)

	uc := NewCreateComplaint(repo)
	_, err := uc.Execute(context.Background(), filer(), CreateComplaintInput{
		ComplaintType: "OTHER",
		Description:   "general feedback",
	})

	require.NoError(t, err)
	require.NotNil(t, captured)
	assert.Equal(t, uint(8), captured.UserID)
	assert.Equal(t, string(domain.StatusPending), captured.Status)
}
