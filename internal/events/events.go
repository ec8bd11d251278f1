package events

import (
	"time"

	"github.com/google/uuid"
)

// Topics carrying marketplace domain events.
const (
	TopicBookingEvents = "booking.events"
	TopicInvoiceEvents = "invoice.events"
)

// Event types published by this service.
const (
	BookingRequested     = "booking.requested"
	BookingStatusChanged = "booking.status_changed"
	InvoiceIssued        = "invoice.issued"
)

// BookingRequestedEvent is published when an owner creates a booking.
type BookingRequestedEvent struct {
	BookingID   uuid.UUID `json:"booking_id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	ServiceDate time.Time `json:"service_date"`
	OccurredAt  time.Time `json:"occurred_at"`
}

// BookingStatusChangedEvent is published on every validated status transition.
type BookingStatusChangedEvent struct {
	BookingID  uuid.UUID `json:"booking_id"`
	ProviderID uuid.UUID `json:"provider_id"`
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// InvoiceIssuedEvent is published when a provider issues an invoice.
type InvoiceIssuedEvent struct {
	InvoiceID   uuid.UUID `json:"invoice_id"`
	BookingID   uuid.UUID `json:"booking_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	AmountCents int64     `json:"amount_cents"`
	OccurredAt  time.Time `json:"occurred_at"`
}
