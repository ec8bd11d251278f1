package provider

import (
	"time"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// ServiceItem is a priced entry in a provider's service catalog.
type ServiceItem struct {
	id          uuid.UUID
	profileID   uuid.UUID
	name        string
	priceCents  int64
	description string
	createdAt   time.Time
	updatedAt   time.Time
}

// NewServiceItem creates a new catalog entry with validated fields.
func NewServiceItem(profileID uuid.UUID, name string, priceCents int64, description string) (*ServiceItem, error) {
	if profileID == uuid.Nil {
		return nil, domain.NewValidationError("profile ID is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("service name is required")
	}
	if priceCents < 0 {
		return nil, domain.NewValidationError("service price cannot be negative")
	}

	now := time.Now().UTC()
	return &ServiceItem{
		id:          uuid.New(),
		profileID:   profileID,
		name:        name,
		priceCents:  priceCents,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// ReconstructServiceItem rebuilds a ServiceItem from persistence data.
func ReconstructServiceItem(
	id, profileID uuid.UUID,
	name string,
	priceCents int64,
	description string,
	createdAt, updatedAt time.Time,
) *ServiceItem {
	return &ServiceItem{
		id:          id,
		profileID:   profileID,
		name:        name,
		priceCents:  priceCents,
		description: description,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// --- Getters ---

func (s *ServiceItem) ID() uuid.UUID        { return s.id }
func (s *ServiceItem) ProfileID() uuid.UUID { return s.profileID }
func (s *ServiceItem) Name() string         { return s.name }
func (s *ServiceItem) PriceCents() int64    { return s.priceCents }
func (s *ServiceItem) Description() string  { return s.description }
func (s *ServiceItem) CreatedAt() time.Time { return s.createdAt }
func (s *ServiceItem) UpdatedAt() time.Time { return s.updatedAt }
