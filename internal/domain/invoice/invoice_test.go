package invoice

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeAmount(t *testing.T) {
	items := []LineItem{
		{Name: "labor", PriceCents: 50, Quantity: 2},
		{Name: "filter", PriceCents: 10, Quantity: 1},
	}
	assert.Equal(t, int64(110), ComputeAmount(items))
}

func TestComputeAmountZeroPricedItem(t *testing.T) {
	items := []LineItem{
		{Name: "goodwill discount inspection", PriceCents: 0, Quantity: 1},
	}
	assert.Equal(t, int64(0), ComputeAmount(items))
}

func TestValidateLineItems(t *testing.T) {
	assert.Error(t, ValidateLineItems(nil), "empty list")

	assert.Error(t, ValidateLineItems([]LineItem{
		{Name: "", PriceCents: 100, Quantity: 1},
	}), "missing name")

	assert.Error(t, ValidateLineItems([]LineItem{
		{Name: "labor", PriceCents: -1, Quantity: 1},
	}), "negative price")

	assert.Error(t, ValidateLineItems([]LineItem{
		{Name: "labor", PriceCents: 100, Quantity: 0},
	}), "zero quantity")

	assert.NoError(t, ValidateLineItems([]LineItem{
		{Name: "labor", PriceCents: 0, Quantity: 1},
	}), "zero price is allowed")
}

func TestNewInvoice(t *testing.T) {
	bookingID := uuid.New()
	items := []LineItem{
		{Name: "labor", PriceCents: 5000, Quantity: 2},
		{Name: "parts", PriceCents: 1250, Quantity: 4},
	}

	inv, err := NewInvoice(bookingID, items)
	require.NoError(t, err)

	assert.Equal(t, bookingID, inv.BookingID())
	assert.Equal(t, int64(15000), inv.AmountCents())
	assert.Equal(t, StatusUnpaid, inv.Status())
	assert.Equal(t, items, inv.Items())
}

func TestNewInvoiceSnapshotIsImmutable(t *testing.T) {
	items := []LineItem{{Name: "labor", PriceCents: 100, Quantity: 1}}
	inv, err := NewInvoice(uuid.New(), items)
	require.NoError(t, err)

	// Mutating the caller's slice must not affect the stored snapshot.
	items[0].PriceCents = 999999
	assert.Equal(t, int64(100), inv.Items()[0].PriceCents)

	// Mutating the returned copy must not affect the stored snapshot either.
	got := inv.Items()
	got[0].Quantity = 42
	assert.Equal(t, int64(1), inv.Items()[0].Quantity)
}

func TestNewInvoiceValidation(t *testing.T) {
	_, err := NewInvoice(uuid.Nil, []LineItem{{Name: "labor", PriceCents: 1, Quantity: 1}})
	assert.Error(t, err, "nil booking")

	_, err = NewInvoice(uuid.New(), nil)
	assert.Error(t, err, "no items")
}

func TestParseInvoiceStatus(t *testing.T) {
	s, err := ParseStatus("PAID")
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, s)

	_, err = ParseStatus("VOID")
	assert.Error(t, err)
}
