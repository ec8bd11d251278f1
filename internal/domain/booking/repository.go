package booking

import (
	"context"

	"github.com/google/uuid"
)

// Details is a read projection of a booking joined with its vehicle and the
// two accounts on either side of it.
type Details struct {
	Booking        *Booking
	VehicleMake    string
	VehicleModel   string
	LicensePlate   string
	VehicleOwnerID uuid.UUID
	OwnerName      string
	ProviderName   string
	ProviderEmail  string
}

// Repository defines the persistence contract for booking aggregates.
type Repository interface {
	// FindByID retrieves a booking by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*Booking, error)

	// FindDetailsByOwner retrieves bookings for vehicles owned by the given
	// user, newest first, with pagination.
	FindDetailsByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]Details, int64, error)

	// FindDetailsByProvider retrieves bookings assigned to the given provider,
	// newest first, with pagination.
	FindDetailsByProvider(ctx context.Context, providerID uuid.UUID, page, limit int) ([]Details, int64, error)

	// Save persists a new booking.
	Save(ctx context.Context, b *Booking) error

	// Update persists changes to an existing booking with optimistic locking.
	Update(ctx context.Context, b *Booking) error
}
