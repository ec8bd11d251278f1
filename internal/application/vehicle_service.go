package application

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	vehicleDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/vehicle"
)

// AddVehicleRequest holds the data needed to register a vehicle.
type AddVehicleRequest struct {
	Make         string `json:"make" binding:"required"`
	Model        string `json:"model" binding:"required"`
	Year         int    `json:"year" binding:"required"`
	LicensePlate string `json:"license_plate" binding:"required"`
}

// VehicleDTO is the response representation of a vehicle.
type VehicleDTO struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	LicensePlate string    `json:"license_plate"`
	CreatedAt    time.Time `json:"created_at"`
}

// VehicleService is the application service for an owner's vehicle fleet.
type VehicleService struct {
	vehicles vehicleDomain.Repository
	logger   *zap.Logger
}

// NewVehicleService creates a new VehicleService.
func NewVehicleService(vehicles vehicleDomain.Repository, logger *zap.Logger) *VehicleService {
	return &VehicleService{vehicles: vehicles, logger: logger}
}

// AddVehicle registers a new vehicle for the owner.
func (s *VehicleService) AddVehicle(ctx context.Context, ownerID uuid.UUID, req AddVehicleRequest) (*VehicleDTO, error) {
	v, err := vehicleDomain.NewVehicle(ownerID, req.Make, req.Model, req.Year, req.LicensePlate)
	if err != nil {
		return nil, err
	}

	if err := s.vehicles.Save(ctx, v); err != nil {
		return nil, err
	}

	s.logger.Info("vehicle added",
		zap.String("vehicle_id", v.ID().String()),
		zap.String("owner_id", ownerID.String()),
	)
	result := toVehicleDTO(v)
	return &result, nil
}

// ListVehicles returns the owner's vehicles, newest first.
func (s *VehicleService) ListVehicles(ctx context.Context, ownerID uuid.UUID) ([]VehicleDTO, error) {
	vehicles, err := s.vehicles.FindByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	dtos := make([]VehicleDTO, len(vehicles))
	for i, v := range vehicles {
		dtos[i] = toVehicleDTO(v)
	}
	return dtos, nil
}

// DeleteVehicle removes a vehicle after verifying ownership.
func (s *VehicleService) DeleteVehicle(ctx context.Context, ownerID, vehicleID uuid.UUID) error {
	v, err := s.vehicles.FindByID(ctx, vehicleID)
	if err != nil {
		return err
	}

	if !v.IsOwnedBy(ownerID) {
		return domain.NewForbiddenError("vehicle does not belong to this user")
	}

	if err := s.vehicles.Delete(ctx, vehicleID); err != nil {
		return err
	}

	s.logger.Info("vehicle deleted", zap.String("vehicle_id", vehicleID.String()))
	return nil
}

func toVehicleDTO(v *vehicleDomain.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:           v.ID(),
		OwnerID:      v.OwnerID(),
		Make:         v.Make(),
		Model:        v.Model(),
		Year:         v.Year(),
		LicensePlate: v.LicensePlate(),
		CreatedAt:    v.CreatedAt(),
	}
}
