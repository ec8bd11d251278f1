package invoice

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Details is a read projection of an invoice joined with its booking, the
// billed vehicle and the issuing provider. The owner and provider IDs are
// carried for access control.
type Details struct {
	Invoice        *Invoice
	ServiceDate    time.Time
	Description    string
	ProviderID     uuid.UUID
	ProviderName   string
	BusinessName   string
	VehicleMake    string
	VehicleModel   string
	LicensePlate   string
	VehicleOwnerID uuid.UUID
}

// Repository defines the persistence contract for invoice aggregates.
type Repository interface {
	// FindDetailsByID retrieves an invoice with booking and vehicle context.
	FindDetailsByID(ctx context.Context, id uuid.UUID) (*Details, error)

	// FindByBookingID retrieves the invoice for a booking, if one exists.
	FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*Invoice, error)

	// FindDetailsByOwner retrieves invoices for bookings on the owner's
	// vehicles, newest first.
	FindDetailsByOwner(ctx context.Context, ownerID uuid.UUID) ([]Details, error)

	// FindDetailsByProvider retrieves invoices issued by the provider, newest first.
	FindDetailsByProvider(ctx context.Context, providerID uuid.UUID) ([]Details, error)

	// Save persists a new invoice.
	Save(ctx context.Context, inv *Invoice) error
}
