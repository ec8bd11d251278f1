package vehicle

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVehicle(t *testing.T) {
	ownerID := uuid.New()
	v, err := NewVehicle(ownerID, "Toyota", "Corolla", 2020, "CAB-1234")
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, v.ID())
	assert.Equal(t, ownerID, v.OwnerID())
	assert.Equal(t, "Toyota", v.Make())
	assert.Equal(t, 2020, v.Year())
}

func TestNewVehicleValidation(t *testing.T) {
	ownerID := uuid.New()

	_, err := NewVehicle(uuid.Nil, "Toyota", "Corolla", 2020, "CAB-1234")
	assert.Error(t, err, "nil owner")

	_, err = NewVehicle(ownerID, "", "Corolla", 2020, "CAB-1234")
	assert.Error(t, err, "missing make")

	_, err = NewVehicle(ownerID, "Toyota", "", 2020, "CAB-1234")
	assert.Error(t, err, "missing model")

	_, err = NewVehicle(ownerID, "Toyota", "Corolla", 2020, "")
	assert.Error(t, err, "missing plate")

	_, err = NewVehicle(ownerID, "Toyota", "Corolla", 1899, "CAB-1234")
	assert.Error(t, err, "year too old")

	_, err = NewVehicle(ownerID, "Toyota", "Corolla", time.Now().Year()+2, "CAB-1234")
	assert.Error(t, err, "year too far in the future")

	_, err = NewVehicle(ownerID, "Toyota", "Corolla", time.Now().Year()+1, "CAB-1234")
	assert.NoError(t, err, "next model year is allowed")
}

func TestVehicleIsOwnedBy(t *testing.T) {
	ownerID := uuid.New()
	v, err := NewVehicle(ownerID, "Honda", "Civic", 2018, "KV-9921")
	require.NoError(t, err)

	assert.True(t, v.IsOwnedBy(ownerID))
	assert.False(t, v.IsOwnedBy(uuid.New()))
}
