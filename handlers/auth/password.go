package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/model"
	"github.com/deptweb/site-api/utils/auth"
	"github.com/deptweb/site-api/utils/middleware"
	"github.com/deptweb/site-api/utils/response"
	"github.com/deptweb/site-api/utils/validation"
)

// ChangePasswordRequest represents a password change request
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required"`
}

// ChangePassword handles POST /api/v1/auth/change-password. A
// successful change bumps the account's token version, which
// invalidates every previously issued token.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return response.Unauthorized(c, "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.validator.ValidateStruct(&req); err != nil {
		return response.BadRequest(c, validation.FirstError(err))
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.CurrentPassword); err != nil {
		return response.Unauthorized(c, "Current password is incorrect")
	}

	if !auth.IsPasswordValid(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		log.Printf("[AUTH] password hash failed for user %d: %v", user.ID, err)
		return response.InternalServerError(c, "Failed to update password")
	}

	updates := map[string]interface{}{
		"password_hash": hash,
		"token_version": user.TokenVersion + 1,
	}
	if err := h.db.Model(&model.User{}).Where("id = ?", user.ID).Updates(updates).Error; err != nil {
		log.Printf("[AUTH] password update failed for user %d: %v", user.ID, err)
		return response.InternalServerError(c, "Failed to update password")
	}

	return response.SuccessWithMessage(c, "Password changed successfully")
}
