package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	bookingDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/booking"
)

// BookingModel is the GORM model for the bookings table.
type BookingModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	VehicleID   uuid.UUID `gorm:"type:uuid;index;not null"`
	ProviderID  uuid.UUID `gorm:"type:uuid;index;not null"`
	Description string    `gorm:"not null;size:1000"`
	ServiceDate time.Time `gorm:"not null"`
	Status      string    `gorm:"not null;size:20;index"`
	Version     int64     `gorm:"not null;default:1"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (BookingModel) TableName() string {
	return "bookings"
}

// bookingDetailRow is the flat scan target for the details join.
type bookingDetailRow struct {
	BookingModel
	VehicleMake    string
	VehicleModel   string
	LicensePlate   string
	VehicleOwnerID uuid.UUID
	OwnerName      string
	ProviderName   string
	ProviderEmail  string
}

const bookingDetailSelect = `bookings.*,
	vehicles.make AS vehicle_make,
	vehicles.model AS vehicle_model,
	vehicles.license_plate AS license_plate,
	vehicles.owner_id AS vehicle_owner_id,
	owners.name AS owner_name,
	providers.name AS provider_name,
	providers.email AS provider_email`

// GormBookingRepository is the GORM-based implementation of booking.Repository.
type GormBookingRepository struct {
	db *gorm.DB
}

// NewGormBookingRepository creates a new GormBookingRepository.
func NewGormBookingRepository(db *gorm.DB) *GormBookingRepository {
	return &GormBookingRepository{db: db}
}

// FindByID retrieves a booking by its unique identifier.
func (r *GormBookingRepository) FindByID(ctx context.Context, id uuid.UUID) (*bookingDomain.Booking, error) {
	var model BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Booking", id.String())
		}
		return nil, fmt.Errorf("failed to find booking by ID: %w", err)
	}
	return toDomainBooking(&model)
}

// FindDetailsByOwner retrieves bookings for vehicles owned by the given user.
func (r *GormBookingRepository) FindDetailsByOwner(ctx context.Context, ownerID uuid.UUID, page, limit int) ([]bookingDomain.Details, int64, error) {
	base := r.db.WithContext(ctx).
		Table("bookings").
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Where("vehicles.owner_id = ?", ownerID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count owner bookings: %w", err)
	}

	var rows []bookingDetailRow
	if err := base.Session(&gorm.Session{}).
		Select(bookingDetailSelect).
		Joins("JOIN users AS owners ON owners.id = vehicles.owner_id").
		Joins("JOIN users AS providers ON providers.id = bookings.provider_id").
		Order("bookings.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find owner bookings: %w", err)
	}

	details, err := toBookingDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// FindDetailsByProvider retrieves bookings assigned to the given provider.
func (r *GormBookingRepository) FindDetailsByProvider(ctx context.Context, providerID uuid.UUID, page, limit int) ([]bookingDomain.Details, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&BookingModel{}).
		Where("provider_id = ?", providerID).
		Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count provider bookings: %w", err)
	}

	var rows []bookingDetailRow
	if err := r.db.WithContext(ctx).
		Table("bookings").
		Select(bookingDetailSelect).
		Joins("JOIN vehicles ON vehicles.id = bookings.vehicle_id").
		Joins("JOIN users AS owners ON owners.id = vehicles.owner_id").
		Joins("JOIN users AS providers ON providers.id = bookings.provider_id").
		Where("bookings.provider_id = ?", providerID).
		Order("bookings.created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to find provider bookings: %w", err)
	}

	details, err := toBookingDetails(rows)
	if err != nil {
		return nil, 0, err
	}
	return details, total, nil
}

// Save persists a new booking.
func (r *GormBookingRepository) Save(ctx context.Context, b *bookingDomain.Booking) error {
	if err := r.db.WithContext(ctx).Create(toBookingModel(b)).Error; err != nil {
		return fmt.Errorf("failed to save booking: %w", err)
	}
	return nil
}

// Update persists changes to an existing booking with optimistic locking.
func (r *GormBookingRepository) Update(ctx context.Context, b *bookingDomain.Booking) error {
	model := toBookingModel(b)
	expectedVersion := b.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"status":     model.Status,
			"version":    model.Version,
			"updated_at": model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update booking: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("booking was modified by another transaction")
	}
	return nil
}

// --- Conversion helpers ---

func toBookingModel(b *bookingDomain.Booking) *BookingModel {
	return &BookingModel{
		ID:          b.ID(),
		VehicleID:   b.VehicleID(),
		ProviderID:  b.ProviderID(),
		Description: b.Description(),
		ServiceDate: b.ServiceDate(),
		Status:      string(b.Status()),
		Version:     b.Version(),
		CreatedAt:   b.CreatedAt(),
		UpdatedAt:   b.UpdatedAt(),
	}
}

func toDomainBooking(m *BookingModel) (*bookingDomain.Booking, error) {
	status, err := bookingDomain.ParseStatus(m.Status)
	if err != nil {
		return nil, err
	}
	return bookingDomain.Reconstruct(
		m.ID,
		m.VehicleID,
		m.ProviderID,
		m.Description,
		m.ServiceDate,
		status,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	), nil
}

func toBookingDetails(rows []bookingDetailRow) ([]bookingDomain.Details, error) {
	details := make([]bookingDomain.Details, len(rows))
	for i, row := range rows {
		b, err := toDomainBooking(&row.BookingModel)
		if err != nil {
			return nil, err
		}
		details[i] = bookingDomain.Details{
			Booking:        b,
			VehicleMake:    row.VehicleMake,
			VehicleModel:   row.VehicleModel,
			LicensePlate:   row.LicensePlate,
			VehicleOwnerID: row.VehicleOwnerID,
			OwnerName:      row.OwnerName,
			ProviderName:   row.ProviderName,
			ProviderEmail:  row.ProviderEmail,
		}
	}
	return details, nil
}
