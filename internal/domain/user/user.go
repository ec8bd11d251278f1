package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain"
)

// User is the aggregate root for an account identity.
type User struct {
	id           uuid.UUID
	email        string
	passwordHash string
	name         string
	role         Role
	phone        string
	district     string
	city         string

	resetTokenHash    string
	resetTokenExpires *time.Time

	version   int64
	createdAt time.Time
	updatedAt time.Time
}

// NormalizeEmail maps an email to its canonical stored form. Lookups must
// apply the same mapping or case variants of a registered address won't match.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}

// NewUser creates a new User with a validated email, role and password hash.
func NewUser(email, passwordHash, name string, role Role, phone, district, city string) (*User, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, domain.NewValidationError("a valid email is required")
	}
	if passwordHash == "" {
		return nil, domain.NewValidationError("password hash is required")
	}
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}
	if !role.IsValid() {
		return nil, domain.NewValidationError("invalid role, must be OWNER or PROVIDER")
	}

	now := time.Now().UTC()
	return &User{
		id:           uuid.New(),
		email:        email,
		passwordHash: passwordHash,
		name:         name,
		role:         role,
		phone:        phone,
		district:     district,
		city:         city,
		version:      1,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Reconstruct rebuilds a User from persistence data (no validation).
func Reconstruct(
	id uuid.UUID,
	email, passwordHash, name string,
	role Role,
	phone, district, city string,
	resetTokenHash string,
	resetTokenExpires *time.Time,
	version int64,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:                id,
		email:             email,
		passwordHash:      passwordHash,
		name:              name,
		role:              role,
		phone:             phone,
		district:          district,
		city:              city,
		resetTokenHash:    resetTokenHash,
		resetTokenExpires: resetTokenExpires,
		version:           version,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// --- Getters ---

func (u *User) ID() uuid.UUID                 { return u.id }
func (u *User) Email() string                 { return u.email }
func (u *User) PasswordHash() string          { return u.passwordHash }
func (u *User) Name() string                  { return u.name }
func (u *User) Role() Role                    { return u.role }
func (u *User) Phone() string                 { return u.phone }
func (u *User) District() string              { return u.district }
func (u *User) City() string                  { return u.city }
func (u *User) ResetTokenHash() string        { return u.resetTokenHash }
func (u *User) ResetTokenExpires() *time.Time { return u.resetTokenExpires }
func (u *User) Version() int64                { return u.version }
func (u *User) CreatedAt() time.Time          { return u.createdAt }
func (u *User) UpdatedAt() time.Time          { return u.updatedAt }

// --- Behavior ---

// SetResetToken stores the one-way hash of a password reset token and its expiry.
func (u *User) SetResetToken(tokenHash string, expiresAt time.Time) {
	u.resetTokenHash = tokenHash
	u.resetTokenExpires = &expiresAt
	u.version++
	u.updatedAt = time.Now().UTC()
}

// ResetTokenMatches reports whether the stored reset token hash matches and
// has not expired at the given instant.
func (u *User) ResetTokenMatches(tokenHash string, now time.Time) bool {
	if u.resetTokenHash == "" || u.resetTokenExpires == nil {
		return false
	}
	return u.resetTokenHash == tokenHash && now.Before(*u.resetTokenExpires)
}

// ChangePassword replaces the password hash and clears any pending reset token.
func (u *User) ChangePassword(newHash string) {
	u.passwordHash = newHash
	u.resetTokenHash = ""
	u.resetTokenExpires = nil
	u.version++
	u.updatedAt = time.Now().UTC()
}
