package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/skillbridge/marketplace/internal/httperr"
	"github.com/skillbridge/marketplace/internal/models"
)

func TestCanTransition_FromActiveStates(t *testing.T) {
	for _, from := range []Status{StatusPending, StatusConfirmed} {
		for _, to := range []Status{StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted} {
			assert.NoError(t, CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_TerminalStatesAreFrozen(t *testing.T) {
	for _, from := range []Status{StatusCanceled, StatusCompleted} {
		for _, to := range []Status{StatusPending, StatusConfirmed, StatusCanceled, StatusCompleted} {
			err := CanTransition(from, to)
			assert.True(t, httperr.IsBusiness(err, "invalid_state"), "%s -> %s", from, to)
		}
	}
}

func TestCanTransition_UnknownStatus(t *testing.T) {
	err := CanTransition(StatusPending, Status("SHIPPED"))
	assert.True(t, httperr.IsBusiness(err, "invalid_status"))
}

func TestTransition_StampsCanceledAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	changed, err := Transition(b, StatusCanceled, now)

	assert.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, string(StatusCanceled), b.Status)
	if assert.NotNil(t, b.CanceledAt) {
		assert.Equal(t, now, *b.CanceledAt)
	}
	assert.Nil(t, b.CompletedAt)
}

func TestTransition_StampsCompletedAt(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	b := &models.Booking{Status: string(StatusConfirmed)}

	changed, err := Transition(b, StatusCompleted, now)

	assert.NoError(t, err)
	assert.True(t, changed)
	if assert.NotNil(t, b.CompletedAt) {
		assert.Equal(t, now, *b.CompletedAt)
	}
}

func TestTransition_SameStatusIsNoOp(t *testing.T) {
	b := &models.Booking{Status: string(StatusConfirmed)}

	changed, err := Transition(b, StatusConfirmed, time.Now())

	assert.NoError(t, err)
	assert.False(t, changed)
}

func TestCancelingParty(t *testing.T) {
	b := &models.Booking{
		SeekerID: 7,
		Service:  models.Service{ProviderID: 9},
	}

	assert.Equal(t, CanceledBySeeker, CancelingParty(b, 7))
	assert.Equal(t, CanceledByProvider, CancelingParty(b, 9))
	assert.Equal(t, CanceledByAdmin, CancelingParty(b, 1))
}
