package auth

import (
	"time"

	"gorm.io/gorm"

	"github.com/deptweb/site-api/utils/auth"
	"github.com/deptweb/site-api/utils/middleware"
	"github.com/deptweb/site-api/utils/validation"
)

// AuthHandler handles account and token requests
type AuthHandler struct {
	db                   *gorm.DB
	jwtManager           *auth.JWTManager
	blacklistService     *auth.BlacklistService
	bruteForceProtection *middleware.BruteForceProtection
	validator            *validation.Validator
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(db *gorm.DB, jwtManager *auth.JWTManager, blacklistService *auth.BlacklistService, bruteForce *middleware.BruteForceProtection) *AuthHandler {
	return &AuthHandler{
		db:                   db,
		jwtManager:           jwtManager,
		blacklistService:     blacklistService,
		bruteForceProtection: bruteForce,
		validator:            validation.NewValidator(),
	}
}

// UserResponse is the public shape of an account
type UserResponse struct {
	ID        uint      `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
