package booking

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBooking(t *testing.T) *Booking {
	t.Helper()
	bk, err := NewBooking(uuid.New(), uuid.New(), "oil change", time.Now().Add(48*time.Hour))
	require.NoError(t, err)
	return bk
}

func TestNewBooking(t *testing.T) {
	vehicleID := uuid.New()
	providerID := uuid.New()
	serviceDate := time.Now().Add(24 * time.Hour)

	bk, err := NewBooking(vehicleID, providerID, "brake inspection", serviceDate)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, bk.ID())
	assert.Equal(t, vehicleID, bk.VehicleID())
	assert.Equal(t, providerID, bk.ProviderID())
	assert.Equal(t, StatusPending, bk.Status())
	assert.Equal(t, int64(1), bk.Version())
}

func TestNewBookingValidation(t *testing.T) {
	serviceDate := time.Now().Add(24 * time.Hour)

	_, err := NewBooking(uuid.Nil, uuid.New(), "wash", serviceDate)
	assert.Error(t, err, "nil vehicle")

	_, err = NewBooking(uuid.New(), uuid.Nil, "wash", serviceDate)
	assert.Error(t, err, "nil provider")

	_, err = NewBooking(uuid.New(), uuid.New(), "", serviceDate)
	assert.Error(t, err, "empty description")

	_, err = NewBooking(uuid.New(), uuid.New(), "wash", time.Time{})
	assert.Error(t, err, "zero service date")
}

func TestBookingTransitionTo(t *testing.T) {
	bk := newTestBooking(t)

	require.NoError(t, bk.TransitionTo(StatusAccepted))
	assert.Equal(t, StatusAccepted, bk.Status())
	assert.Equal(t, int64(2), bk.Version())

	require.NoError(t, bk.TransitionTo(StatusInProgress))
	require.NoError(t, bk.TransitionTo(StatusCompleted))
	assert.Equal(t, int64(4), bk.Version())

	// Completed is terminal.
	err := bk.TransitionTo(StatusCancelled)
	assert.Error(t, err)
	assert.Equal(t, StatusCompleted, bk.Status(), "status unchanged on rejected transition")
	assert.Equal(t, int64(4), bk.Version(), "version unchanged on rejected transition")
}

func TestBookingIsAssignedTo(t *testing.T) {
	providerID := uuid.New()
	bk, err := NewBooking(uuid.New(), providerID, "detailing", time.Now().Add(time.Hour))
	require.NoError(t, err)

	assert.True(t, bk.IsAssignedTo(providerID))
	assert.False(t, bk.IsAssignedTo(uuid.New()))
}
