package provider

import (
	"context"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
)

// Repository defines persistence operations for provider profiles and their
// service catalogs.
type Repository interface {
	// FindProfileByUserID retrieves a profile by the owning user's ID.
	FindProfileByUserID(ctx context.Context, userID uuid.UUID) (*Profile, error)

	// FindProfileByID retrieves a profile by its own ID (public lookup).
	FindProfileByID(ctx context.Context, id uuid.UUID) (*Profile, error)

	// FindServiceItems retrieves the catalog for a profile.
	FindServiceItems(ctx context.Context, profileID uuid.UUID) ([]*ServiceItem, error)

	// FindServiceItemByID retrieves a single catalog entry.
	FindServiceItemByID(ctx context.Context, id uuid.UUID) (*ServiceItem, error)

	// SaveProfile persists a new profile.
	SaveProfile(ctx context.Context, p *Profile) error

	// UpdateProfile persists changes to an existing profile.
	UpdateProfile(ctx context.Context, p *Profile) error

	// SaveServiceItem persists a new catalog entry.
	SaveServiceItem(ctx context.Context, s *ServiceItem) error

	// DeleteServiceItem removes a catalog entry.
	DeleteServiceItem(ctx context.Context, id uuid.UUID) error
}

// Provisioner creates a provider account: the user record and its business
// profile in a single atomic transaction. If the profile insert fails, the
// user insert must not persist.
type Provisioner interface {
	CreateProviderAccount(ctx context.Context, u *user.User, p *Profile) error
}
