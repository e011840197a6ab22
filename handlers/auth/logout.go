package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/deptweb/site-api/utils/auth"
	"github.com/deptweb/site-api/utils/middleware"
	"github.com/deptweb/site-api/utils/response"
)

// Logout handles POST /api/v1/auth/logout. The presented access token
// is blacklisted until its natural expiry.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*auth.Claims)
	if !ok || claims == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	if h.blacklistService != nil {
		err := h.blacklistService.RevokeToken(c.Context(), claims.ID, claims.UserID, claims.ExpiresAt.Time, "logout")
		if err != nil {
			return response.InternalServerError(c, "Failed to revoke token")
		}
	}

	return response.SuccessWithMessage(c, "Logged out successfully")
}

// Me handles GET /api/v1/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := middleware.GetUser(c)
	if !ok || user == nil {
		return response.Unauthorized(c, "User not authenticated")
	}

	return response.Success(c, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Name:      user.Name,
		Role:      user.Role,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	})
}
