package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// Booking is the aggregate root for a vehicle service booking. It references
// exactly one vehicle and one provider user; its status is mutated only via
// validated transitions.
type Booking struct {
	id          uuid.UUID
	vehicleID   uuid.UUID
	providerID  uuid.UUID
	description string
	serviceDate time.Time
	status      Status

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking creates a new Booking with status=PENDING.
func NewBooking(vehicleID, providerID uuid.UUID, description string, serviceDate time.Time) (*Booking, error) {
	if vehicleID == uuid.Nil {
		return nil, domain.NewValidationError("vehicle ID is required")
	}
	if providerID == uuid.Nil {
		return nil, domain.NewValidationError("provider ID is required")
	}
	if description == "" {
		return nil, domain.NewValidationError("service description is required")
	}
	if serviceDate.IsZero() {
		return nil, domain.NewValidationError("service date is required")
	}

	now := time.Now().UTC()
	return &Booking{
		id:          uuid.New(),
		vehicleID:   vehicleID,
		providerID:  providerID,
		description: description,
		serviceDate: serviceDate.UTC(),
		status:      StatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds a Booking from persistence data (no validation).
func Reconstruct(
	id, vehicleID, providerID uuid.UUID,
	description string,
	serviceDate time.Time,
	status Status,
	version int64,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:          id,
		vehicleID:   vehicleID,
		providerID:  providerID,
		description: description,
		serviceDate: serviceDate,
		status:      status,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) VehicleID() uuid.UUID   { return b.vehicleID }
func (b *Booking) ProviderID() uuid.UUID  { return b.providerID }
func (b *Booking) Description() string    { return b.description }
func (b *Booking) ServiceDate() time.Time { return b.serviceDate }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) Version() int64         { return b.version }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }

// --- Behavior ---

// IsAssignedTo reports whether the booking is assigned to the given provider.
func (b *Booking) IsAssignedTo(providerID uuid.UUID) bool {
	return b.providerID == providerID
}

// TransitionTo moves the booking to the target status after validating the
// transition against the state machine.
func (b *Booking) TransitionTo(target Status) error {
	if err := ValidateTransition(b.status, target); err != nil {
		return err
	}
	b.status = target
	b.version++
	b.updatedAt = time.Now().UTC()
	return nil
}
