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
	userDomain "github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
)

// UserModel is the GORM model for the users table.
type UserModel struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Email             string     `gorm:"uniqueIndex;not null;size:255"`
	PasswordHash      string     `gorm:"not null;size:100"`
	Name              string     `gorm:"not null;size:200"`
	Role              string     `gorm:"not null;size:20;index"`
	Phone             string     `gorm:"size:30"`
	District          string     `gorm:"size:100"`
	City              string     `gorm:"size:100"`
	ResetTokenHash    string     `gorm:"size:64;index"`
	ResetTokenExpires *time.Time `gorm:""`
	Version           int64      `gorm:"not null;default:1"`
	CreatedAt         time.Time  `gorm:"not null"`
	UpdatedAt         time.Time  `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (UserModel) TableName() string {
	return "users"
}

// GormUserRepository is the GORM-based implementation of user.Repository and
// provider.Provisioner.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GormUserRepository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// FindByID retrieves a user by its unique identifier.
func (r *GormUserRepository) FindByID(ctx context.Context, id uuid.UUID) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", id.String())
		}
		return nil, fmt.Errorf("failed to find user by ID: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindByEmail retrieves a user by email address.
func (r *GormUserRepository) FindByEmail(ctx context.Context, email string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", email)
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return toDomainUser(&model), nil
}

// FindByResetTokenHash retrieves a user whose stored reset token hash matches.
func (r *GormUserRepository) FindByResetTokenHash(ctx context.Context, tokenHash string) (*userDomain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("reset_token_hash = ?", tokenHash).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NewNotFoundError("User", "reset token")
		}
		return nil, fmt.Errorf("failed to find user by reset token: %w", err)
	}
	return toDomainUser(&model), nil
}

// Save persists a new user.
func (r *GormUserRepository) Save(ctx context.Context, u *userDomain.User) error {
	if err := r.db.WithContext(ctx).Create(toUserModel(u)).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("user with this email already exists")
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// Update persists changes to an existing user with optimistic locking.
func (r *GormUserRepository) Update(ctx context.Context, u *userDomain.User) error {
	model := toUserModel(u)
	expectedVersion := u.Version() - 1
	result := r.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("id = ? AND version = ?", model.ID, expectedVersion).
		Updates(map[string]interface{}{
			"password_hash":       model.PasswordHash,
			"reset_token_hash":    model.ResetTokenHash,
			"reset_token_expires": model.ResetTokenExpires,
			"version":             model.Version,
			"updated_at":          model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.NewConflictError("user was modified by another transaction")
	}
	return nil
}

// CreateProviderAccount creates the user and its provider profile in a single
// transaction. Neither row persists if the other insert fails.
func (r *GormUserRepository) CreateProviderAccount(ctx context.Context, u *userDomain.User, p *providerDomain.Profile) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(toUserModel(u)).Error; err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		if err := tx.Create(toProfileModel(p)).Error; err != nil {
			return fmt.Errorf("failed to create provider profile: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.NewConflictError("user with this email already exists")
		}
		return fmt.Errorf("provider account provisioning failed: %w", err)
	}
	return nil
}

// --- Conversion helpers ---

func toUserModel(u *userDomain.User) *UserModel {
	return &UserModel{
		ID:                u.ID(),
		Email:             u.Email(),
		PasswordHash:      u.PasswordHash(),
		Name:              u.Name(),
		Role:              u.Role().String(),
		Phone:             u.Phone(),
		District:          u.District(),
		City:              u.City(),
		ResetTokenHash:    u.ResetTokenHash(),
		ResetTokenExpires: u.ResetTokenExpires(),
		Version:           u.Version(),
		CreatedAt:         u.CreatedAt(),
		UpdatedAt:         u.UpdatedAt(),
	}
}

func toDomainUser(m *UserModel) *userDomain.User {
	return userDomain.Reconstruct(
		m.ID,
		m.Email,
		m.PasswordHash,
		m.Name,
		userDomain.Role(m.Role),
		m.Phone,
		m.District,
		m.City,
		m.ResetTokenHash,
		m.ResetTokenExpires,
		m.Version,
		m.CreatedAt,
		m.UpdatedAt,
	)
}
