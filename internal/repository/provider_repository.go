package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	providerDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/provider"
)

// ProviderProfileModel is the GORM model for the provider_profiles table.
type ProviderProfileModel struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null"`
	BusinessName       string    `gorm:"not null;size:200"`
	Category           string    `gorm:"not null;size:20;index"`
	StreetAddress      string    `gorm:"size:300"`
	District           string    `gorm:"size:100"`
	City               string    `gorm:"size:100"`
	Description        string    `gorm:"size:1000"`
	RegistrationNumber string    `gorm:"size:50"`
	Version            int64     `gorm:"not null;default:1"`
	CreatedAt          time.Time `gorm:"not null"`
	UpdatedAt          time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ProviderProfileModel) TableName() string {
	return "provider_profiles"
}

// ServiceItemModel is the GORM model for the provider_services table.
type ServiceItemModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	ProfileID   uuid.UUID `gorm:"type:uuid;index;not null"`
	Name        string    `gorm:"not null;size:200"`
	PriceCents  int64     `gorm:"not null"`
	Description string    `gorm:"size:500"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ServiceItemModel) TableName() string {
	return "provider_services"
}

// GormProviderRepository is the GORM-based implementation of provider.Repository.
type GormProviderRepository struct {
	db *gorm.DB
}

// NewGormProviderRepository creates a new GormProviderRepository.
func NewGormProviderRepository(db *gorm.DB) *GormProviderRepository {
	return &GormProviderRepository{db: db}
}

// FindProfileByUserID retrieves a profile by the owning user's ID.
func (r *GormProviderRepository) FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*providerDomain.Profile, error) {
	var model ProviderProfileModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ProviderProfile", userID.String())
		}
		return nil, fmt.Errorf("failed to find provider profile by user: %w", err)
	}
	return toDomainProfile(&model), nil
}

// FindProfileByID retrieves a profile by its own ID.
func (r *GormProviderRepository) FindProfileByID(ctx context.Context, id uuid.UUID) (*providerDomain.Profile, error) {
	var model ProviderProfileModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("ProviderProfile", id.String())
		}
		return nil, fmt.Errorf("failed to find provider profile: %w", err)
	}
	return toDomainProfile(&model), nil
}

// FindServiceItems retrieves the catalog for a profile.
func (r *GormProviderRepository) FindServiceItems(ctx context.Context, profileID uuid.UUID) ([]*providerDomain.ServiceItem, error) {
	var models []ServiceItemModel
	if err := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find service items: %w", err)
	}

	items := make([]*providerDomain.ServiceItem, len(models))
	for i, m := range models {
		items[i] = toDomainServiceItem(&m)
	}
	return items, nil
}

// FindServiceItemByID retrieves a single catalog entry.
func (r *GormProviderRepository) FindServiceItemByID(ctx context.Context, id uuid.UUID) (*providerDomain.ServiceItem, error) {
	var model ServiceItemModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("Service", id.String())
		}
		return nil, fmt.Errorf("failed to find service item: %w", err)
	}
	return toDomainServiceItem(&model), nil
}

// SaveProfile persists a new profile.
func (r *GormProviderRepository) SaveProfile(ctx context.Context, p *providerDomain.Profile) error {
	if err := r.db.WithContext(ctx).Create(toProfileModel(p)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("provider profile already exists for this user")
		}
		return fmt.Errorf("failed to save provider profile: %w", err)
	}
	return nil
}

// UpdateProfile persists changes to an existing profile with optimistic locking.
func (r *GormProviderRepository) UpdateProfile(ctx context.Context, p *providerDomain.Profile) error {
	model := toProfileModel(p)
	expectedVersion := p.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&ProviderProfileModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"business_name":       model.BusinessName,
			"category":            model.Category,
			"street_address":      model.StreetAddress,
			"district":            model.District,
			"city":                model.City,
			"description":         model.Description,
			"registration_number": model.RegistrationNumber,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update provider profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("provider profile was modified by another transaction")
	}
	return nil
}

// SaveServiceItem persists a new catalog entry.
func (r *GormProviderRepository) SaveServiceItem(ctx context.Context, s *providerDomain.ServiceItem) error {
	if err := r.db.WithContext(ctx).Create(toServiceItemModel(s)).Error; err != nil {
		return fmt.Errorf("failed to save service item: %w", err)
	}
	return nil
}

// DeleteServiceItem removes a catalog entry.
func (r *GormProviderRepository) DeleteServiceItem(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&ServiceItemModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete service item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewNotFoundError("Service", id.String())
	}
	return nil
}

// --- Conversion helpers ---

func toProfileModel(p *providerDomain.Profile) *ProviderProfileModel {
	return &ProviderProfileModel{
		ID:                 p.ID(),
		UserID:             p.UserID(),
		BusinessName:       p.BusinessName(),
		Category:           string(p.Category()),
		StreetAddress:      p.StreetAddress(),
		District:           p.District(),
		City:               p.City(),
		Description:        p.Description(),
		RegistrationNumber: p.RegistrationNumber(),
		Version:            p.Version(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
}

func toDomainProfile(m *ProviderProfileModel) *providerDomain.Profile {
	return providerDomain.ReconstructProfile(
		m.ID,
		m.UserID,
		m.BusinessName,
		providerDomain.Category(m.Category),
		m.StreetAddress,
		m.District,
		m.City,
		m.Description,
		m.RegistrationNumber,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}

func toServiceItemModel(s *providerDomain.ServiceItem) *ServiceItemModel {
	return &ServiceItemModel{
		ID:          s.ID(),
		ProfileID:   s.ProfileID(),
		Name:        s.Name(),
		PriceCents:  s.PriceCents(),
		Description: s.Description(),
		CreatedAt:   s.CreatedAt(),
		UpdatedAt:   s.UpdatedAt(),
	}
}

func toDomainServiceItem(m *ServiceItemModel) *providerDomain.ServiceItem {
	return providerDomain.ReconstructServiceItem(
		m.ID,
		m.ProfileID,
		m.Name,
		m.PriceCents,
		m.Description,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
