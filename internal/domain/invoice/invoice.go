package invoice

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// Status represents the payment status of an invoice.
type Status string

const (
	StatusUnpaid Status = "UNPAID"
	StatusPaid   Status = "PAID"
)

// IsValid returns true if the status is a recognized invoice status.
func (s Status) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPaid:
		return true
	}
	return false
}

// ParseStatus converts a string to a Status, returning an error if invalid.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if !status.IsValid() {
		return "", fmt.Errorf("invalid invoice status: %s", s)
	}
	return status, nil
}

// Invoice is the aggregate root for a billing document. It is 1:1 with a
// completed booking and carries an immutable line item snapshot from which
// the amount is derived.
type Invoice struct {
	id          uuid.UUID
	bookingID   uuid.UUID
	amountCents int64
	status      Status
	items       []LineItem
	createdAt   time.Time
	updatedAt   time.Time
}

// NewInvoice creates a new unpaid Invoice for the given booking, computing
// the amount from the validated item snapshot.
func NewInvoice(bookingID uuid.UUID, items []LineItem) (*Invoice, error) {
	if bookingID == uuid.Nil {
		return nil, domain.NewValidationError("booking ID is required")
	}
	if err := ValidateLineItems(items); err != nil {
		return nil, err
	}

	snapshot := make([]LineItem, len(items))
	copy(snapshot, items)

	now := time.Now().UTC()
	return &Invoice{
		id:          uuid.New(),
		bookingID:   bookingID,
		amountCents: ComputeAmount(snapshot),
		status:      StatusUnpaid,
		items:       snapshot,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// Reconstruct rebuilds an Invoice from persistence data (no validation).
func Reconstruct(
	id, bookingID uuid.UUID,
	amountCents int64,
	status Status,
	items []LineItem,
	createdAt, updatedAt time.Time,
) *Invoice {
	return &Invoice{
		id:          id,
		bookingID:   bookingID,
		amountCents: amountCents,
		status:      status,
		items:       items,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (i *Invoice) ID() uuid.UUID        { return i.id }
func (i *Invoice) BookingID() uuid.UUID { return i.bookingID }
func (i *Invoice) AmountCents() int64   { return i.amountCents }
func (i *Invoice) Status() Status       { return i.status }
func (i *Invoice) CreatedAt() time.Time { return i.createdAt }
func (i *Invoice) UpdatedAt() time.Time { return i.updatedAt }

// Items returns a copy of the line item snapshot.
func (i *Invoice) Items() []LineItem {
	items := make([]LineItem, len(i.items))
	copy(items, i.items)
	return items
}
