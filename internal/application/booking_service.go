package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	bookingDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/booking"
	userDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
	vehicleDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/vehicle"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/events"
)

// eventSource identifies this service in published CloudEvents.
const eventSource = "service-marketplace"

// CreateBookingRequest holds the data needed to request a service booking.
type CreateBookingRequest struct {
	VehicleID   uuid.UUID `json:"vehicle_id" binding:"required"`
	ProviderID  uuid.UUID `json:"provider_id" binding:"required"`
	Description string    `json:"description" binding:"required"`
	ServiceDate time.Time `json:"service_date" binding:"required"`
}

// UpdateBookingStatusRequest holds the target status for a transition.
type UpdateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// BookingDTO is the response representation of a booking.
type BookingDTO struct {
	ID          uuid.UUID `json:"id"`
	VehicleID   uuid.UUID `json:"vehicle_id"`
	ProviderID  uuid.UUID `json:"provider_id"`
	Description string    `json:"description"`
	ServiceDate time.Time `json:"service_date"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// BookingDetailDTO is a booking joined with its vehicle and the accounts on
// either side of it.
type BookingDetailDTO struct {
	BookingDTO
	VehicleMake   string `json:"vehicle_make"`
	VehicleModel  string `json:"vehicle_model"`
	LicensePlate  string `json:"license_plate"`
	OwnerName     string `json:"owner_name"`
	ProviderName  string `json:"provider_name"`
	ProviderEmail string `json:"provider_email"`
}

// BookingService is the application service orchestrating the booking
// lifecycle.
type BookingService struct {
	bookings  bookingDomain.Repository
	vehicles  vehicleDomain.Repository
	users     userDomain.Repository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewBookingService creates a new BookingService.
func NewBookingService(
	bookings bookingDomain.Repository,
	vehicles vehicleDomain.Repository,
	users userDomain.Repository,
	publisher events.Publisher,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		bookings:  bookings,
		vehicles:  vehicles,
		users:     users,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateBooking requests a service for one of the owner's vehicles from a
// provider. The booking starts in PENDING.
func (s *BookingService) CreateBooking(ctx context.Context, ownerID uuid.UUID, req CreateBookingRequest) (*BookingDTO, error) {
	v, err := s.vehicles.FindByID(ctx, req.VehicleID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewNotFoundError("Vehicle", req.VehicleID.String())
		}
		return nil, err
	}
	// A vehicle owned by someone else is indistinguishable from a missing one.
	if !v.IsOwnedBy(ownerID) {
		return nil, domain.NewNotFoundError("Vehicle", req.VehicleID.String())
	}

	providerUser, err := s.users.FindByID(ctx, req.ProviderID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewValidationError("invalid provider or user is not a provider")
		}
		return nil, err
	}
	if providerUser.Role() != userDomain.RoleProvider {
		return nil, domain.NewValidationError("invalid provider or user is not a provider")
	}

	bk, err := bookingDomain.NewBooking(req.VehicleID, req.ProviderID, req.Description, req.ServiceDate)
	if err != nil {
		return nil, err
	}

	if err := s.bookings.Save(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingRequestedEvent{
		BookingID:   bk.ID(),
		VehicleID:   bk.VehicleID(),
		OwnerID:     ownerID,
		ProviderID:  bk.ProviderID(),
		ServiceDate: bk.ServiceDate(),
		OccurredAt:  time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingRequested, evt)

	s.logger.Info("booking created",
		zap.String("booking_id", bk.ID().String()),
		zap.String("provider_id", bk.ProviderID().String()),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// UpdateBookingStatus moves a booking to a new status. Only the assigned
// provider may transition a booking, and only along a valid edge of the
// status machine.
func (s *BookingService) UpdateBookingStatus(ctx context.Context, providerID, bookingID uuid.UUID, status string) (*BookingDTO, error) {
	target, err := bookingDomain.ParseStatus(status)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	bk, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !bk.IsAssignedTo(providerID) {
		return nil, domain.NewForbiddenError("booking is not assigned to this provider")
	}

	from := bk.Status()
	if err := bk.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.bookings.Update(ctx, bk); err != nil {
		return nil, err
	}

	evt := events.BookingStatusChangedEvent{
		BookingID:  bk.ID(),
		ProviderID: bk.ProviderID(),
		FromStatus: from.String(),
		ToStatus:   bk.Status().String(),
		OccurredAt: time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicBookingEvents, events.BookingStatusChanged, evt)

	s.logger.Info("booking status changed",
		zap.String("booking_id", bk.ID().String()),
		zap.String("from", from.String()),
		zap.String("to", bk.Status().String()),
	)
	result := toBookingDTO(bk)
	return &result, nil
}

// GetOwnerBookings retrieves paginated bookings for the owner's vehicles.
func (s *BookingService) GetOwnerBookings(ctx context.Context, ownerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDetailDTO], error) {
	details, total, err := s.bookings.FindDetailsByOwner(ctx, ownerID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDetailDTO, len(details))
	for i, d := range details {
		dtos[i] = toBookingDetailDTO(d)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

// GetProviderBookings retrieves paginated bookings assigned to the provider.
func (s *BookingService) GetProviderBookings(ctx context.Context, providerID uuid.UUID, page, limit int) (*domain.PaginatedResult[BookingDetailDTO], error) {
	details, total, err := s.bookings.FindDetailsByProvider(ctx, providerID, page, limit)
	if err != nil {
		return nil, err
	}

	dtos := make([]BookingDetailDTO, len(details))
	for i, d := range details {
		dtos[i] = toBookingDetailDTO(d)
	}

	result := domain.NewPaginatedResult(dtos, total, page, limit)
	return &result, nil
}

func (s *BookingService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
	cloudEvent, err := events.NewCloudEvent(eventSource, eventType, data)
	if err != nil {
		s.logger.Error("failed to create cloud event",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.publisher.PublishEvent(ctx, topic, cloudEvent); err != nil {
		s.logger.Error("failed to publish event",
			zap.String("topic", topic),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func toBookingDTO(bk *bookingDomain.Booking) BookingDTO {
	return BookingDTO{
		ID:          bk.ID(),
		VehicleID:   bk.VehicleID(),
		ProviderID:  bk.ProviderID(),
		Description: bk.Description(),
		ServiceDate: bk.ServiceDate(),
		Status:      bk.Status().String(),
		CreatedAt:   bk.CreatedAt(),
		UpdatedAt:   bk.UpdatedAt(),
	}
}

func toBookingDetailDTO(d bookingDomain.Details) BookingDetailDTO {
	return BookingDetailDTO{
		BookingDTO:    toBookingDTO(d.Booking),
		VehicleMake:   d.VehicleMake,
		VehicleModel:  d.VehicleModel,
		LicensePlate:  d.LicensePlate,
		OwnerName:     d.OwnerName,
		ProviderName:  d.ProviderName,
		ProviderEmail: d.ProviderEmail,
	}
}
