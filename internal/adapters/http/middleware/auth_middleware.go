package middleware

import (
	"staffhub/internal/adapters/persistence/repositories"
	"staffhub/internal/config"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Cookie names
const (
	SessionCookie = "token"
	SignupCookie  = "signup_token"
)

// Context locals set by SessionGuard
const (
	LocalAdminID    = "adminID"
	LocalAdminEmail = "adminEmail"
)

// SessionGuard protects routes that require a logged-in admin. It reads
// the session cookie, validates it and attaches the admin identity to
// the request context. Invalid and expired tokens are surfaced
// identically to the caller.
func SessionGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(SessionCookie)
		if token == "" {
			return response.Unauthorized(c, "Not authenticated")
		}

		claims, err := jwt.ValidateSessionToken(token, cfg.JWT.Secret)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		adminID, err := uuid.Parse(claims.AdminID)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		c.Locals(LocalAdminID, adminID)
		c.Locals(LocalAdminEmail, claims.Email)

		return c.Next()
	}
}

// RegistrationGuard protects the admin registration endpoint. When no
// admin exists at all, any caller may register: the one-time bootstrap
// exception. Once admins exist, a valid signup token is required; a
// missing token is 401, a present but invalid, expired or wrong-role
// token is 403.
func RegistrationGuard(adminRepo repositories.AdminRepository, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		count, err := adminRepo.Count(c.Context())
		if err != nil {
			return response.InternalServerError(c, "Failed to verify signup access")
		}

		if count == 0 {
			return c.Next()
		}

		token := c.Cookies(SignupCookie)
		if token == "" {
			return response.Unauthorized(c, "Access denied: no signup token")
		}

		if _, err := jwt.ValidateSignupToken(token, cfg.JWT.Secret); err != nil {
			return response.Forbidden(c, "Invalid signup token")
		}

		return c.Next()
	}
}

// AdminIDFromCtx returns the admin ID attached by SessionGuard
func AdminIDFromCtx(c *fiber.Ctx) (uuid.UUID, bool) {
	adminID, ok := c.Locals(LocalAdminID).(uuid.UUID)
	return adminID, ok
}

// AdminEmailFromCtx returns the admin email attached by SessionGuard
func AdminEmailFromCtx(c *fiber.Ctx) (string, bool) {
	email, ok := c.Locals(LocalAdminEmail).(string)
	return email, ok
}
