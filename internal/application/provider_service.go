package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	providerDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/provider"
)

// UpdateProfileRequest holds partial business profile updates; empty fields
// are left unchanged.
type UpdateProfileRequest struct {
	BusinessName       string `json:"business_name"`
	Category           string `json:"category"`
	StreetAddress      string `json:"street_address"`
	District           string `json:"district"`
	City               string `json:"city"`
	Description        string `json:"description"`
	RegistrationNumber string `json:"registration_number"`
}

// AddServiceRequest holds the data for a new catalog entry.
type AddServiceRequest struct {
	Name        string `json:"name" binding:"required"`
	PriceCents  int64  `json:"price_cents"`
	Description string `json:"description"`
}

// ProfileDTO is the response representation of a provider profile.
type ProfileDTO struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	BusinessName       string    `json:"business_name"`
	Category           string    `json:"category"`
	StreetAddress      string    `json:"street_address,omitempty"`
	District           string    `json:"district,omitempty"`
	City               string    `json:"city,omitempty"`
	Description        string    `json:"description,omitempty"`
	RegistrationNumber string    `json:"registration_number,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// ServiceItemDTO is the response representation of a catalog entry.
type ServiceItemDTO struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	PriceCents  int64     `json:"price_cents"`
	Description string    `json:"description,omitempty"`
}

// ProfileWithServicesDTO is a profile together with its service catalog.
type ProfileWithServicesDTO struct {
	ProfileDTO
	Services []ServiceItemDTO `json:"services"`
}

// ProviderService is the application service for provider profiles and their
// service catalogs.
type ProviderService struct {
	providers providerDomain.Repository
	logger    *zap.Logger
}

// NewProviderService creates a new ProviderService.
func NewProviderService(providers providerDomain.Repository, logger *zap.Logger) *ProviderService {
	return &ProviderService{providers: providers, logger: logger}
}

// UpsertProfile applies partial updates to the caller's business profile, or
// creates it when the account has none yet (a provider registered without the
// business flow). Creation requires a business name and a valid category.
func (s *ProviderService) UpsertProfile(ctx context.Context, userID uuid.UUID, req UpdateProfileRequest) (*ProfileDTO, error) {
	profile, err := s.providers.FindProfileByUserID(ctx, userID)
	if err != nil {
		if !domain.IsNotFound(err) {
			return nil, err
		}
		created, err := providerDomain.NewProfile(
			userID,
			req.BusinessName,
			providerDomain.Category(req.Category),
			req.StreetAddress,
			req.District,
			req.City,
			req.Description,
			req.RegistrationNumber,
		)
		if err != nil {
			return nil, err
		}
		if err := s.providers.SaveProfile(ctx, created); err != nil {
			return nil, err
		}
		s.logger.Info("provider profile created", zap.String("profile_id", created.ID().String()))
		result := toProfileDTO(created)
		return &result, nil
	}

	if err := profile.Update(
		req.BusinessName,
		providerDomain.Category(req.Category),
		req.StreetAddress,
		req.District,
		req.City,
		req.Description,
		req.RegistrationNumber,
	); err != nil {
		return nil, err
	}

	if err := s.providers.UpdateProfile(ctx, profile); err != nil {
		return nil, err
	}

	s.logger.Info("provider profile updated", zap.String("profile_id", profile.ID().String()))
	result := toProfileDTO(profile)
	return &result, nil
}

// AddService adds a priced entry to the caller's service catalog.
func (s *ProviderService) AddService(ctx context.Context, userID uuid.UUID, req AddServiceRequest) (*ServiceItemDTO, error) {
	profile, err := s.providers.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	item, err := providerDomain.NewServiceItem(profile.ID(), req.Name, req.PriceCents, req.Description)
	if err != nil {
		return nil, err
	}

	if err := s.providers.SaveServiceItem(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("service added",
		zap.String("service_id", item.ID().String()),
		zap.String("profile_id", profile.ID().String()),
	)
	result := toServiceItemDTO(item)
	return &result, nil
}

// RemoveService deletes a catalog entry after verifying it belongs to the
// caller's profile.
func (s *ProviderService) RemoveService(ctx context.Context, userID, serviceID uuid.UUID) error {
	item, err := s.providers.FindServiceItemByID(ctx, serviceID)
	if err != nil {
		return err
	}

	profile, err := s.providers.FindProfileByUserID(ctx, userID)
	if err != nil {
		return err
	}

	if item.ProfileID() != profile.ID() {
		return domain.NewForbiddenError("service does not belong to this provider")
	}

	if err := s.providers.DeleteServiceItem(ctx, serviceID); err != nil {
		return err
	}

	s.logger.Info("service removed", zap.String("service_id", serviceID.String()))
	return nil
}

// GetOwnProfile returns the caller's profile and catalog.
func (s *ProviderService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*ProfileWithServicesDTO, error) {
	profile, err := s.providers.FindProfileByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.buildProfileWithServices(ctx, profile)
}

// GetProfile returns a provider's public profile and catalog by profile ID.
func (s *ProviderService) GetProfile(ctx context.Context, profileID uuid.UUID) (*ProfileWithServicesDTO, error) {
	profile, err := s.providers.FindProfileByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	return s.buildProfileWithServices(ctx, profile)
}

func (s *ProviderService) buildProfileWithServices(ctx context.Context, profile *providerDomain.Profile) (*ProfileWithServicesDTO, error) {
	items, err := s.providers.FindServiceItems(ctx, profile.ID())
	if err != nil {
		return nil, err
	}

	services := make([]ServiceItemDTO, len(items))
	for i, item := range items {
		services[i] = toServiceItemDTO(item)
	}

	return &ProfileWithServicesDTO{
		ProfileDTO: toProfileDTO(profile),
		Services:   services,
	}, nil
}

func toProfileDTO(p *providerDomain.Profile) ProfileDTO {
	return ProfileDTO{
		ID:                 p.ID(),
		UserID:             p.UserID(),
		BusinessName:       p.BusinessName(),
		Category:           string(p.Category()),
		StreetAddress:      p.StreetAddress(),
		District:           p.District(),
		City:               p.City(),
		Description:        p.Description(),
		RegistrationNumber: p.RegistrationNumber(),
		CreatedAt:          p.CreatedAt(),
	}
}

func toServiceItemDTO(item *providerDomain.ServiceItem) ServiceItemDTO {
	return ServiceItemDTO{
		ID:          item.ID(),
		Name:        item.Name(),
		PriceCents:  item.PriceCents(),
		Description: item.Description(),
	}
}
