package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/application"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/auth"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/middleware"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/response"
)

// VehicleHandler handles HTTP requests for an owner's vehicles.
type VehicleHandler struct {
	service *application.VehicleService
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(service *application.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// RegisterRoutes registers all vehicle routes on the given router group.
func (h *VehicleHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	vehicles := r.Group("/api/vehicles")
	vehicles.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(user.RoleOwner))
	{
		vehicles.POST("", h.AddVehicle)
		vehicles.GET("", h.ListVehicles)
		vehicles.DELETE("/:id", h.DeleteVehicle)
	}
}

// AddVehicle handles POST /api/vehicles.
func (h *VehicleHandler) AddVehicle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.AddVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddVehicle(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListVehicles handles GET /api/vehicles.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.ListVehicles(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// DeleteVehicle handles DELETE /api/vehicles/:id.
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid vehicle ID")
		return
	}

	if err := h.service.DeleteVehicle(c.Request.Context(), userID, vehicleID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "vehicle deleted"})
}
