package invoice

import (
	"fmt"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// LineItem is an immutable snapshot of a billed service at invoicing time.
// The caller-supplied snapshot is stored verbatim; there is no server-side
// repricing from the provider's catalog.
type LineItem struct {
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity"`
}

// ValidateLineItems checks a caller-supplied item snapshot at the boundary.
func ValidateLineItems(items []LineItem) error {
	if len(items) == 0 {
		return domain.NewValidationError("at least one invoice item is required")
	}
	for i, item := range items {
		if item.Name == "" {
			return domain.NewValidationError(fmt.Sprintf("item %d: name is required", i))
		}
		if item.PriceCents < 0 {
			return domain.NewValidationError(fmt.Sprintf("item %d: price cannot be negative", i))
		}
		if item.Quantity <= 0 {
			return domain.NewValidationError(fmt.Sprintf("item %d: quantity must be positive", i))
		}
	}
	return nil
}

// ComputeAmount returns the invoice total: the sum of price x quantity over
// all items.
func ComputeAmount(items []LineItem) int64 {
	var total int64
	for _, item := range items {
		total += item.PriceCents * item.Quantity
	}
	return total
}
