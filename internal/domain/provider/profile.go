package provider

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// Category classifies a service provider's line of business.
type Category string

const (
	CategoryGarage   Category = "GARAGE"
	CategoryCarrier  Category = "CARRIER"
	CategoryDetailer Category = "DETAILER"
)

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	switch c {
	case CategoryGarage, CategoryCarrier, CategoryDetailer:
		return true
	}
	return false
}

// ParseCategory converts a string to a Category, returning an error if invalid.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid service category: %s", s)
	}
	return c, nil
}

// Profile is the aggregate root for a provider's business details. It is a
// 1:1 extension of a PROVIDER user, created atomically with it during
// business registration.
type Profile struct {
	id                 uuid.UUID
	userID             uuid.UUID
	businessName       string
	category           Category
	streetAddress      string
	district           string
	city               string
	description        string
	registrationNumber string
	version            int64
	createdAt          time.Time
	updatedAt          time.Time
}

// NewProfile creates a new provider Profile with validated fields.
func NewProfile(
	userID uuid.UUID,
	businessName string,
	category Category,
	streetAddress, district, city, description, registrationNumber string,
) (*Profile, error) {
	if userID == uuid.Nil {
		return nil, domain.NewValidationError("user ID is required")
	}
	if businessName == "" {
		return nil, domain.NewValidationError("business name is required")
	}
	if !category.IsValid() {
		return nil, domain.NewValidationError(fmt.Sprintf("invalid service category: %s", category))
	}

	now := time.Now().UTC()
	return &Profile{
		id:                 uuid.New(),
		userID:             userID,
		businessName:       businessName,
		category:           category,
		streetAddress:      streetAddress,
		district:           district,
		city:               city,
		description:        description,
		registrationNumber: registrationNumber,
		version:            1,
		createdAt:          now,
		updatedAt:          now,
	}, nil
}

// ReconstructProfile rebuilds a Profile from persistence data (no validation).
func ReconstructProfile(
	id, userID uuid.UUID,
	businessName string,
	category Category,
	streetAddress, district, city, description, registrationNumber string,
	version int64,
	createdAt, updatedAt time.Time,
) *Profile {
	return &Profile{
		id:                 id,
		userID:             userID,
		businessName:       businessName,
		category:           category,
		streetAddress:      streetAddress,
		district:           district,
		city:               city,
		description:        description,
		registrationNumber: registrationNumber,
		version:            version,
		createdAt:          createdAt,
		updatedAt:          updatedAt,
	}
}

// --- Getters ---

func (p *Profile) ID() uuid.UUID              { return p.id }
func (p *Profile) UserID() uuid.UUID          { return p.userID }
func (p *Profile) BusinessName() string       { return p.businessName }
func (p *Profile) Category() Category         { return p.category }
func (p *Profile) StreetAddress() string      { return p.streetAddress }
func (p *Profile) District() string           { return p.district }
func (p *Profile) City() string               { return p.city }
func (p *Profile) Description() string        { return p.description }
func (p *Profile) RegistrationNumber() string { return p.registrationNumber }
func (p *Profile) Version() int64             { return p.version }
func (p *Profile) CreatedAt() time.Time       { return p.createdAt }
func (p *Profile) UpdatedAt() time.Time       { return p.updatedAt }

// Update applies partial updates to the business details.
func (p *Profile) Update(businessName string, category Category, streetAddress, district, city, description, registrationNumber string) error {
	if businessName != "" {
		p.businessName = businessName
	}
	if category != "" {
		if !category.IsValid() {
			return domain.NewValidationError(fmt.Sprintf("invalid service category: %s", category))
		}
		p.category = category
	}
	if streetAddress != "" {
		p.streetAddress = streetAddress
	}
	if district != "" {
		p.district = district
	}
	if city != "" {
		p.city = city
	}
	if description != "" {
		p.description = description
	}
	if registrationNumber != "" {
		p.registrationNumber = registrationNumber
	}
	p.version++
	p.updatedAt = time.Now().UTC()
	return nil
}
