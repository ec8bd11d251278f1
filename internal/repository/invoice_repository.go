package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	invoiceDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/invoice"
)

// InvoiceModel is the GORM model for the invoices table. The unique index on
// booking_id enforces the one-invoice-per-booking invariant at the store level.
type InvoiceModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	BookingID   uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null"`
	AmountCents int64           `gorm:"not null"`
	Status      string          `gorm:"not null;size:20"`
	Items       json.RawMessage `gorm:"type:jsonb;not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (InvoiceModel) TableName() string {
	return "invoices"
}

// invoiceDetailRow is the flat scan target for the details join.
type invoiceDetailRow struct {
	InvoiceModel
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

const invoiceDetailSelect = `invoices.*,
	bookings.service_date AS service_date,
	bookings.description AS description,
	bookings.provider_id AS provider_id,
	providers.name AS provider_name,
	COALESCE(provider_profiles.business_name, '') AS business_name,
	vehicles.make AS vehicle_make,
	vehicles.model AS vehicle_model,
	vehicles.license_plate AS license_plate,
	vehicles.owner_id AS vehicle_owner_id`

const invoiceDetailJoins = `JOIN bookings ON bookings.id = invoices.booking_id`

// GormInvoiceRepository is the GORM-based implementation of invoice.Repository.
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository.
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

func (r *GormInvoiceRepository) detailQuery(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Table("invoices").
		Select(invoiceDetailSelect).
		Joins(invoiceDetailJoins).
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Joins("JOIN users AS providers ON providers.id = bookings.provider_id").
		Joins("LEFT JOIN provider_profiles ON provider_profiles.user_id = bookings.provider_id")
}

// FindDetailsByID retrieves an invoice with booking and vehicle context.
func (r *GormInvoiceRepository) FindDetailsByID(ctx context.Context, id uuid.UUID) (*invoiceDomain.Details, error) {
	var row invoiceDetailRow
	result := r.detailQuery(ctx).Where("invoices.id = ?", id).Scan(&row)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to find invoice by ID: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, domain.NewNotFoundError("Invoice", id.String())
	}
	return toInvoiceDetails(&row)
}

// FindByBookingID retrieves the invoice for a booking, if one exists.
func (r *GormInvoiceRepository) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*invoiceDomain.Invoice, error) {
	var model InvoiceModel
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Invoice", bookingID.String())
		}
		return nil, fmt.Errorf("failed to find invoice by booking: %w", err)
	}
	return toDomainInvoice(&model)
}

// FindDetailsByOwner retrieves invoices for bookings on the owner's vehicles.
func (r *GormInvoiceRepository) FindDetailsByOwner(ctx context.Context, ownerID uuid.UUID) ([]invoiceDomain.Details, error) {
	var rows []invoiceDetailRow
	if err := r.detailQuery(ctx).
		Where("vehicles.owner_id = ?", ownerID).
		Order("invoices.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find owner invoices: %w", err)
	}
	return toInvoiceDetailsList(rows)
}

// FindDetailsByProvider retrieves invoices issued by the provider.
func (r *GormInvoiceRepository) FindDetailsByProvider(ctx context.Context, providerID uuid.UUID) ([]invoiceDomain.Details, error) {
	var rows []invoiceDetailRow
	if err := r.detailQuery(ctx).
		Where("bookings.provider_id = ?", providerID).
		Order("invoices.created_at DESC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to find provider invoices: %w", err)
	}
	return toInvoiceDetailsList(rows)
}

// Save persists a new invoice.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *invoiceDomain.Invoice) error {
	model, err := toInvoiceModel(inv)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("invoice already exists for this booking")
		}
		return fmt.Errorf("failed to save invoice: %w", err)
	}
	return nil
}

// --- Conversion helpers ---

func toInvoiceModel(inv *invoiceDomain.Invoice) (*InvoiceModel, error) {
	items, err := json.Marshal(inv.Items())
	if err != nil {
		return nil, fmt.Errorf("failed to marshal invoice items: %w", err)
	}
	return &InvoiceModel{
		ID:          inv.ID(),
		BookingID:   inv.BookingID(),
		AmountCents: inv.AmountCents(),
		Status:      string(inv.Status()),
		Items:       items,
		CreatedAt:   inv.CreatedAt(),
		UpdatedAt:   inv.UpdatedAt(),
	}, nil
}

func toDomainInvoice(m *InvoiceModel) (*invoiceDomain.Invoice, error) {
	var items []invoiceDomain.LineItem
	if err := json.Unmarshal(m.Items, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal invoice items: %w", err)
	}
	status, err := invoiceDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return invoiceDomain.Reconstruct(
		m.ID,
		m.BookingID,
		m.AmountCents,
		status,
		items,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toInvoiceDetails(row *invoiceDetailRow) (*invoiceDomain.Details, error) {
	inv, err := toDomainInvoice(&row.InvoiceModel)
	if err != nil {
		return nil, err
	}
	return &invoiceDomain.Details{
		Invoice:        inv,
		ServiceDate:    row.ServiceDate,
		Description:    row.Description,
		ProviderID:     row.ProviderID,
		ProviderName:   row.ProviderName,
		BusinessName:   row.BusinessName,
		VehicleMake:    row.VehicleMake,
		VehicleModel:   row.VehicleModel,
		LicensePlate:   row.LicensePlate,
		VehicleOwnerID: row.VehicleOwnerID,
	}, nil
}

func toInvoiceDetailsList(rows []invoiceDetailRow) ([]invoiceDomain.Details, error) {
	details := make([]invoiceDomain.Details, len(rows))
	for i := range rows {
		d, err := toInvoiceDetails(&rows[i])
		if err != nil {
			return nil, err
		}
		details[i] = *d
	}
	return details, nil
}
