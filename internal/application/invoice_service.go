package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	bookingDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/booking"
	invoiceDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/invoice"
	userDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/events"
)

// InvoiceItemRequest is one caller-supplied line item.
type InvoiceItemRequest struct {
	Name       string `json:"name" binding:"required"`
	PriceCents int64  `json:"price_cents"`
	Quantity   int64  `json:"quantity" binding:"required"`
}

// CreateInvoiceRequest holds the data needed to issue an invoice.
type CreateInvoiceRequest struct {
	BookingID uuid.UUID            `json:"booking_id" binding:"required"`
	Items     []InvoiceItemRequest `json:"items" binding:"required"`
}

// InvoiceDTO is the response representation of an invoice.
type InvoiceDTO struct {
	ID          uuid.UUID                `json:"id"`
	BookingID   uuid.UUID                `json:"booking_id"`
	AmountCents int64                    `json:"amount_cents"`
	Status      string                   `json:"status"`
	Items       []invoiceDomain.LineItem `json:"items"`
	CreatedAt   time.Time                `json:"created_at"`
}

// InvoiceDetailDTO is an invoice joined with its booking, vehicle and the
// issuing provider.
type InvoiceDetailDTO struct {
	InvoiceDTO
	ServiceDate  time.Time `json:"service_date"`
	Description  string    `json:"description"`
	ProviderName string    `json:"provider_name"`
	BusinessName string    `json:"business_name,omitempty"`
	VehicleMake  string    `json:"vehicle_make"`
	VehicleModel string    `json:"vehicle_model"`
	LicensePlate string    `json:"license_plate"`
}

// InvoiceService is the application service for invoice issuance and reads.
type InvoiceService struct {
	invoices  invoiceDomain.Repository
	bookings  bookingDomain.Repository
	publisher events.Publisher
	logger    *zap.Logger
}

// NewInvoiceService creates a new InvoiceService.
func NewInvoiceService(
	invoices invoiceDomain.Repository,
	bookings bookingDomain.Repository,
	publisher events.Publisher,
	logger *zap.Logger,
) *InvoiceService {
	return &InvoiceService{
		invoices:  invoices,
		bookings:  bookings,
		publisher: publisher,
		logger:    logger,
	}
}

// CreateInvoice issues an invoice for a completed booking. Only the assigned
// provider may invoice, a booking is invoiced at most once, and the amount is
// derived from the item snapshot.
func (s *InvoiceService) CreateInvoice(ctx context.Context, providerID uuid.UUID, req CreateInvoiceRequest) (*InvoiceDTO, error) {
	bk, err := s.bookings.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if bk.Status() != bookingDomain.StatusCompleted {
		return nil, domain.NewValidationError("invoice can only be created for completed bookings")
	}

	if !bk.IsAssignedTo(providerID) {
		return nil, domain.NewForbiddenError("booking is not assigned to this provider")
	}

	if _, err := s.invoices.FindByBookingID(ctx, req.BookingID); err == nil {
		return nil, domain.NewConflictError("invoice already exists for this booking")
	} else if !domain.IsNotFound(err) {
		return nil, err
	}

	items := make([]invoiceDomain.LineItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = invoiceDomain.LineItem{
			Name:       item.Name,
			PriceCents: item.PriceCents,
			Quantity:   item.Quantity,
		}
	}

	inv, err := invoiceDomain.NewInvoice(req.BookingID, items)
	if err != nil {
		return nil, err
	}

	if err := s.invoices.Save(ctx, inv); err != nil {
		return nil, err
	}

	evt := events.InvoiceIssuedEvent{
		InvoiceID:   inv.ID(),
		BookingID:   inv.BookingID(),
		ProviderID:  providerID,
		AmountCents: inv.AmountCents(),
		OccurredAt:  time.Now().UTC(),
	}
	s.publishEvent(ctx, events.TopicInvoiceEvents, events.InvoiceIssued, evt)

	s.logger.Info("invoice issued",
		zap.String("invoice_id", inv.ID().String()),
		zap.String("booking_id", inv.BookingID().String()),
		zap.Int64("amount_cents", inv.AmountCents()),
	)
	result := toInvoiceDTO(inv)
	return &result, nil
}

// GetInvoices lists invoices visible to the caller: providers see invoices
// they issued, owners see invoices billed against their vehicles.
func (s *InvoiceService) GetInvoices(ctx context.Context, userID uuid.UUID, role userDomain.Role) ([]InvoiceDetailDTO, error) {
	var (
		details []invoiceDomain.Details
		err     error
	)
	if role == userDomain.RoleProvider {
		details, err = s.invoices.FindDetailsByProvider(ctx, userID)
	} else {
		details, err = s.invoices.FindDetailsByOwner(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	dtos := make([]InvoiceDetailDTO, len(details))
	for i, d := range details {
		dtos[i] = toInvoiceDetailDTO(d)
	}
	return dtos, nil
}

// GetInvoice retrieves a single invoice, restricted to the issuing provider
// and the billed vehicle's owner.
func (s *InvoiceService) GetInvoice(ctx context.Context, userID, invoiceID uuid.UUID) (*InvoiceDetailDTO, error) {
	d, err := s.invoices.FindDetailsByID(ctx, invoiceID)
	if err != nil {
		return nil, err
	}

	if userID != d.ProviderID && userID != d.VehicleOwnerID {
		return nil, domain.NewForbiddenError("invoice does not belong to this user")
	}

	result := toInvoiceDetailDTO(*d)
	return &result, nil
}

func (s *InvoiceService) publishEvent(ctx context.Context, topic, eventType string, data interface{}) {
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

func toInvoiceDTO(inv *invoiceDomain.Invoice) InvoiceDTO {
	return InvoiceDTO{
		ID:          inv.ID(),
		BookingID:   inv.BookingID(),
		AmountCents: inv.AmountCents(),
		Status:      string(inv.Status()),
		Items:       inv.Items(),
		CreatedAt:   inv.CreatedAt(),
	}
}

func toInvoiceDetailDTO(d invoiceDomain.Details) InvoiceDetailDTO {
	return InvoiceDetailDTO{
		InvoiceDTO:   toInvoiceDTO(d.Invoice),
		ServiceDate:  d.ServiceDate,
		Description:  d.Description,
		ProviderName: d.ProviderName,
		BusinessName: d.BusinessName,
		VehicleMake:  d.VehicleMake,
		VehicleModel: d.VehicleModel,
		LicensePlate: d.LicensePlate,
	}
}
