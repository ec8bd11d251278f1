package vehicle

import (
	"time"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// Vehicle is the aggregate root for a vehicle registered by an owner.
type Vehicle struct {
	id           uuid.UUID
	ownerID      uuid.UUID
	make         string
	model        string
	year         int
	licensePlate string
	version      int64
	createdAt    time.Time
	updatedAt    time.Time
}

// NewVehicle creates a new Vehicle with validated fields.
func NewVehicle(ownerID uuid.UUID, make, model string, year int, licensePlate string) (*Vehicle, error) {
	if ownerID == uuid.Nil {
		return nil, domain.NewValidationError("owner ID is required")
	}
	if make == "" {
		return nil, domain.NewValidationError("vehicle make is required")
	}
	if model == "" {
		return nil, domain.NewValidationError("vehicle model is required")
	}
	if year < 1900 || year > time.Now().UTC().Year()+1 {
		return nil, domain.NewValidationError("vehicle year is out of range")
	}
	if licensePlate == "" {
		return nil, domain.NewValidationError("license plate is required")
	}

	now := time.Now().UTC()
	return &Vehicle{
		id:           uuid.New(),
		ownerID:      ownerID,
		make:         make,
		model:        model,
		year:         year,
		licensePlate: licensePlate,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a Vehicle from persistence data (no validation).
func Reconstruct(
	id, ownerID uuid.UUID,
	make, model string,
	year int,
	licensePlate string,
	version int64,
	createdAt, updatedAt time.Time,
) *Vehicle {
	return &Vehicle{
		id:           id,
		ownerID:      ownerID,
		make:         make,
		model:        model,
		year:         year,
		licensePlate: licensePlate,
		version:      version,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// --- Getters ---

func (v *Vehicle) ID() uuid.UUID        { return v.id }
func (v *Vehicle) OwnerID() uuid.UUID   { return v.ownerID }
func (v *Vehicle) Make() string         { return v.make }
func (v *Vehicle) Model() string        { return v.model }
func (v *Vehicle) Year() int            { return v.year }
func (v *Vehicle) LicensePlate() string { return v.licensePlate }
func (v *Vehicle) Version() int64       { return v.version }
func (v *Vehicle) CreatedAt() time.Time { return v.createdAt }
func (v *Vehicle) UpdatedAt() time.Time { return v.updatedAt }

// IsOwnedBy checks if the vehicle belongs to the given owner.
func (v *Vehicle) IsOwnedBy(ownerID uuid.UUID) bool {
	return v.ownerID == ownerID
}
