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

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	service *application.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(service *application.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{service: service}
}

// RegisterRoutes registers all invoice routes on the given router group.
func (h *InvoiceHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	invoices := r.Group("/api/invoices")
	invoices.Use(middleware.AuthMiddleware(jwtManager))
	{
		invoices.POST("", middleware.RequireRole(user.RoleProvider), h.CreateInvoice)
		invoices.GET("", h.ListInvoices)
		invoices.GET("/:id", h.GetInvoice)
	}
}

// CreateInvoice handles POST /api/invoices.
func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req application.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateInvoice(c.Request.Context(), userID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// ListInvoices handles GET /api/invoices. Providers see invoices they issued,
// owners see invoices billed against their vehicles.
func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	result, err := h.service.GetInvoices(c.Request.Context(), userID, role)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

// GetInvoice handles GET /api/invoices/:id.
func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid invoice ID")
		return
	}

	result, err := h.service.GetInvoice(c.Request.Context(), userID, invoiceID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}
