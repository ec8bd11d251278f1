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

// ProviderHandler handles HTTP requests for provider profiles and catalogs.
type ProviderHandler struct {
	service *application.ProviderService
}

// NewProviderHandler creates a new ProviderHandler.
func NewProviderHandler(service *application.ProviderService) *ProviderHandler {
	return &ProviderHandler{service: service}
}

// RegisterRoutes registers all provider routes on the given router group.
// Profile lookup by ID is public; everything else requires the PROVIDER role.
func (h *ProviderHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	providers := r.Group("/api/providers")

	providers.GET("/:id", h.GetProfile)

	authed := providers.Group("")
	authed.Use(middleware.AuthMiddleware(jwtManager), middleware.RequireRole(user.RoleProvider))
	{
		authed.GET("/me", h.GetOwnProfile)
		authed.PUT("/profile", h.UpdateProfile)
		authed.POST("/services", h.AddService)
		authed.DELETE("/services/:id", h.RemoveService)
	}
}

// GetProfile handles GET /api/providers/:id (public).
func (h *ProviderHandler) GetProfile(c *gin.Context) {
	profileID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid provider ID")
		return
	}

	result, err := h.service.GetProfile(c.Request.Context(), profileID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetOwnProfile handles GET /api/providers/me.
func (h *ProviderHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// UpdateProfile handles PUT /api/providers/profile.
func (h *ProviderHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpsertProfile(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// AddService handles POST /api/providers/services.
func (h *ProviderHandler) AddService(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.AddServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.AddService(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// RemoveService handles DELETE /api/providers/services/:id.
func (h *ProviderHandler) RemoveService(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	serviceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid service ID")
		return
	}

	if err := h.service.RemoveService(c.Request.Context(), userID, serviceID); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "service removed"})
}
