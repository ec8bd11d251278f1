package vehicle

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines persistence operations for vehicles.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Vehicle, error)
	FindByOwnerID(ctx context.Context, ownerID uuid.UUID) ([]*Vehicle, error)
	Save(ctx context.Context, v *Vehicle) error
	Delete(ctx context.Context, id uuid.UUID) error
}
