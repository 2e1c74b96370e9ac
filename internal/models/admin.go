package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AdminRole represents the available CMS roles.
type AdminRole string

const (
	RoleAdmin      AdminRole = "admin"
	RoleSuperAdmin AdminRole = "superadmin"
)

// Admin is a CMS operator account.
type Admin struct {
	ID           string     `bson:"_id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	PasswordHash string     `bson:"passwordHash" json:"-"`
	Name         string     `bson:"name" json:"name"`
	Role         AdminRole  `bson:"role" json:"role"`
	IsActive     bool       `bson:"isActive" json:"isActive"`
	LastLogin    *time.Time `bson:"lastLogin,omitempty" json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time  `bson:"updatedAt" json:"updatedAt"`
}

// LoginRequest holds admin credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SetupRequest bootstraps the first admin. Only honored while no admin
// exists and the configured setup key matches.
type SetupRequest struct {
	SetupKey string `json:"setupKey"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// LoginResponse returns the issued token and admin info.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresIn int64     `json:"expiresIn"`
	Admin     AdminInfo `json:"admin"`
}

// AdminInfo describes the authenticated admin in responses.
type AdminInfo struct {
	ID    string    `json:"id"`
	Email string    `json:"email"`
	Name  string    `json:"name"`
	Role  AdminRole `json:"role"`
}

// JWTClaims is the access token payload.
type JWTClaims struct {
	AdminID string    `json:"id"`
	Email   string    `json:"email"`
	Role    AdminRole `json:"role"`
	jwt.RegisteredClaims
}
