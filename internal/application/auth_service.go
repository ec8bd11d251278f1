package application

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/auth"
	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
	providerDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/provider"
	userDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
)

// resetTokenTTL is how long a password reset token stays usable.
const resetTokenTTL = time.Hour

// RegisterRequest holds the data needed to create a customer account.
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required"`
	Role     string `json:"role" binding:"required"`
	Phone    string `json:"phone"`
	District string `json:"district"`
	City     string `json:"city"`
}

// RegisterBusinessRequest holds the data needed to create a provider account
// together with its business profile.
type RegisterBusinessRequest struct {
	Email              string `json:"email" binding:"required,email"`
	Password           string `json:"password" binding:"required,min=8"`
	Name               string `json:"name" binding:"required"`
	Phone              string `json:"phone"`
	BusinessName       string `json:"business_name" binding:"required"`
	Category           string `json:"category" binding:"required"`
	StreetAddress      string `json:"street_address"`
	District           string `json:"district"`
	City               string `json:"city"`
	Description        string `json:"description"`
	RegistrationNumber string `json:"registration_number"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UserDTO is the safe response representation of a user. It never carries
// the password hash or reset token fields.
type UserDTO struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Phone     string    `json:"phone,omitempty"`
	District  string    `json:"district,omitempty"`
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResponse carries a signed token and the authenticated user.
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// AuthService is the application service for account provisioning and
// credential flows.
type AuthService struct {
	users       userDomain.Repository
	provisioner providerDomain.Provisioner
	jwtManager  *auth.JWTManager
	logger      *zap.Logger
}

// NewAuthService creates a new AuthService.
func NewAuthService(
	users userDomain.Repository,
	provisioner providerDomain.Provisioner,
	jwtManager *auth.JWTManager,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:       users,
		provisioner: provisioner,
		jwtManager:  jwtManager,
		logger:      logger,
	}
}

// Register creates a customer account with the requested role.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	role, err := userDomain.ParseRole(req.Role)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	u, err := userDomain.NewUser(req.Email, hash, req.Name, role, req.Phone, req.District, req.City)
	if err != nil {
		return nil, err
	}

	if err := s.users.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("user registered",
		zap.String("user_id", u.ID().String()),
		zap.String("role", u.Role().String()),
	)
	return s.buildAuthResponse(u)
}

// RegisterBusiness creates a provider account and its business profile in a
// single transaction. If the profile cannot be created, the user is not
// created either.
func (s *AuthService) RegisterBusiness(ctx context.Context, req RegisterBusinessRequest) (*AuthResponse, error) {
	category, err := providerDomain.ParseCategory(req.Category)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	u, err := userDomain.NewUser(req.Email, hash, req.Name, userDomain.RoleProvider, req.Phone, req.District, req.City)
	if err != nil {
		return nil, err
	}

	profile, err := providerDomain.NewProfile(
		u.ID(),
		req.BusinessName,
		category,
		req.StreetAddress,
		req.District,
		req.City,
		req.Description,
		req.RegistrationNumber,
	)
	if err != nil {
		return nil, err
	}

	if err := s.provisioner.CreateProviderAccount(ctx, u, profile); err != nil {
		return nil, err
	}

	s.logger.Info("business registered",
		zap.String("user_id", u.ID().String()),
		zap.String("category", string(category)),
	)
	return s.buildAuthResponse(u)
}

// Login authenticates credentials and issues a token. The same error is
// returned for an unknown email and a wrong password.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResponse, error) {
	u, err := s.users.FindByEmail(ctx, userDomain.NormalizeEmail(req.Email))
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewUnauthorizedError("invalid email or password")
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, u.PasswordHash()) {
		return nil, domain.NewUnauthorizedError("invalid email or password")
	}

	return s.buildAuthResponse(u)
}

// ForgotPassword stores a hashed reset token for the account and returns the
// raw token. For an unknown email it returns an empty token and no error, so
// callers respond identically either way.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) (string, error) {
	u, err := s.users.FindByEmail(ctx, userDomain.NormalizeEmail(email))
	if err != nil {
		if domain.IsNotFound(err) {
			s.logger.Debug("forgot password for unknown email")
			return "", nil
		}
		return "", err
	}

	raw, hash, err := auth.GenerateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	u.SetResetToken(hash, time.Now().UTC().Add(resetTokenTTL))
	if err := s.users.Update(ctx, u); err != nil {
		return "", err
	}

	s.logger.Info("password reset token issued", zap.String("user_id", u.ID().String()))
	return raw, nil
}

// ResetPassword consumes a reset token and replaces the account password.
func (s *AuthService) ResetPassword(ctx context.Context, token, newPassword string) error {
	hash := auth.HashResetToken(token)

	u, err := s.users.FindByResetTokenHash(ctx, hash)
	if err != nil {
		if domain.IsNotFound(err) {
			return domain.NewValidationError("invalid or expired reset token")
		}
		return err
	}

	if !u.ResetTokenMatches(hash, time.Now().UTC()) {
		return domain.NewValidationError("invalid or expired reset token")
	}

	newHash, err := auth.HashPassword(newPassword)
	if err != nil {
		return domain.NewValidationError(err.Error())
	}

	u.ChangePassword(newHash)
	if err := s.users.Update(ctx, u); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.String("user_id", u.ID().String()))
	return nil
}

func (s *AuthService) buildAuthResponse(u *userDomain.User) (*AuthResponse, error) {
	token, err := s.jwtManager.Generate(u)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}
	return &AuthResponse{
		Token: token,
		User:  toUserDTO(u),
	}, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Email:     u.Email(),
		Name:      u.Name(),
		Role:      u.Role().String(),
		Phone:     u.Phone(),
		District:  u.District(),
		City:      u.City(),
		CreatedAt: u.CreatedAt(),
	}
}
