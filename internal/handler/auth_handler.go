package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/application"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/response"
)

// forgotPasswordMessage is returned for every forgot-password request so the
// response does not reveal whether an account exists.
const forgotPasswordMessage = "if an account with that email exists, a password reset token has been issued"

// AuthHandler handles HTTP requests for registration and credential flows.
type AuthHandler struct {
	service *application.AuthService
	devMode bool
}

// NewAuthHandler creates a new AuthHandler. In development mode the reset
// token is echoed in the forgot-password response; in production it only
// travels out-of-band.
func NewAuthHandler(service *application.AuthService, devMode bool) *AuthHandler {
	return &AuthHandler{service: service, devMode: devMode}
}

// RegisterRoutes registers all auth routes on the given router group.
func (h *AuthHandler) RegisterRoutes(r *gin.RouterGroup) {
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/register-business", h.RegisterBusiness)
		auth.POST("/login", h.Login)
		auth.POST("/forgot-password", h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
	}
}

// Register handles POST /api/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req application.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// RegisterBusiness handles POST /api/auth/register-business.
func (h *AuthHandler) RegisterBusiness(c *gin.Context) {
	var req application.RegisterBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.RegisterBusiness(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, result)
}

// Login handles POST /api/auth/login.
func (h *AuthHandler) Login(c *gin.Context) {
	var req application.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, result)
}

type forgotPasswordRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// ForgotPassword handles POST /api/auth/forgot-password. The response body is
// identical for known and unknown emails.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.service.ForgotPassword(c.Request.Context(), req.Email)
	if err != nil {
		response.Error(c, err)
		return
	}

	body := gin.H{"message": forgotPasswordMessage}
	if h.devMode && token != "" {
		body["token"] = token
	}
	response.Success(c, body)
}

type resetPasswordRequest struct {
	Token       string `json:"token" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8"`
}

// ResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), req.Token, req.NewPassword); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "password has been reset"})
}
