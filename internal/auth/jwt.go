package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/harshachandimal/vehicle-service-ecosystem/internal/domain/user"
)

var (
	// ErrInvalidToken is returned for malformed, tampered or unparseable tokens.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token's expiry has passed.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the authenticated identity decoded from a bearer token.
type Claims struct {
	UserID uuid.UUID
	Email  string
	Role   user.Role
}

// JWTManager signs and validates HS256 bearer tokens.
type JWTManager struct {
	secret   []byte
	tokenTTL time.Duration
}

// NewJWTManager creates a JWTManager with the given signing secret and token lifetime.
func NewJWTManager(secret string, tokenTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:   []byte(secret),
		tokenTTL: tokenTTL,
	}
}

// Generate issues a signed token carrying the user's id, email and role.
func (m *JWTManager) Generate(u *user.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.MapClaims{
		"userId": u.ID().String(),
		"email":  u.Email(),
		"role":   u.Role().String(),
		"iat":    now.Unix(),
		"exp":    now.Add(m.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Validate parses and verifies a token, returning the decoded claims.
func (m *JWTManager) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	mapClaims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}

	rawID, ok := mapClaims["userId"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return nil, ErrInvalidToken
	}

	email, ok := mapClaims["email"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}

	rawRole, ok := mapClaims["role"].(string)
	if !ok {
		return nil, ErrInvalidToken
	}
	role, err := user.ParseRole(rawRole)
	if err != nil {
		return nil, ErrInvalidToken
	}

	return &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}, nil
}
