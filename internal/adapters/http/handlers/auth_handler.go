package handlers

import (
	"errors"
	"time"

	"staffhub/internal/adapters/http/middleware"
	"staffhub/internal/config"
	"staffhub/internal/core/services"
	"staffhub/internal/pkg/jwt"
	"staffhub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles admin authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// CredentialsRequest represents login/register request body
type CredentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// CheckPasswordRequest represents the reset flow request body
type CheckPasswordRequest struct {
	Password string `json:"password"`
}

// CheckAuth returns the identity attached by the session guard
func (h *AuthHandler) CheckAuth(c *fiber.Ctx) error {
	adminID, ok := middleware.AdminIDFromCtx(c)
	if !ok {
		return response.Unauthorized(c, "Not authenticated")
	}
	email, _ := middleware.AdminEmailFromCtx(c)

	return response.Success(c, "Authenticated", fiber.Map{
		"admin": fiber.Map{
			"id":    adminID,
			"email": email,
		},
	})
}

// Login authenticates an admin and sets the session cookie
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password required")
	}

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrAdminNotFound):
			return response.NotFound(c, "Admin not found")
		case errors.Is(err, services.ErrInvalidCredentials):
			return response.BadRequest(c, "Invalid credentials")
		default:
			return response.InternalServerError(c, "Login failed")
		}
	}

	h.setSessionCookie(c, result.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"admin": result.Admin,
	})
}

// Register creates a new admin. Access is controlled by the registration
// guard: open while no admin exists, signup token afterwards.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req CredentialsRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return response.BadRequest(c, "Email and password required")
	}

	result, err := h.authService.Register(c.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidEmail):
			return response.BadRequest(c, "Please enter a valid email address")
		case errors.Is(err, services.ErrAdminAlreadyExists):
			return response.Conflict(c, "Admin already exists")
		default:
			return response.InternalServerError(c, "Error creating admin")
		}
	}

	return response.Created(c, "Admin created successfully", fiber.Map{
		"admin_id":  result.Admin.ID,
		"partition": result.Partition,
	})
}

// CheckPassword implements the reset flow: a master or existing admin
// password wipes all admins and issues a signup token cookie
func (h *AuthHandler) CheckPassword(c *fiber.Ctx) error {
	var req CheckPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Password == "" {
		return response.BadRequest(c, "Password required")
	}

	token, err := h.authService.ResetAccess(c.Context(), req.Password)
	if err != nil {
		if errors.Is(err, services.ErrWrongResetPassword) {
			return response.Unauthorized(c, "Wrong password")
		}
		return response.InternalServerError(c, "Failed to verify password")
	}

	h.setSignupCookie(c, token)

	return response.Success(c, "Signup access granted", nil)
}

// CheckAccess reports whether the caller holds a valid signup token
func (h *AuthHandler) CheckAccess(c *fiber.Ctx) error {
	token := c.Cookies(middleware.SignupCookie)
	if token == "" {
		return response.Unauthorized(c, "No signup token")
	}

	if _, err := jwt.ValidateSignupToken(token, h.cfg.JWT.Secret); err != nil {
		return response.Forbidden(c, "Invalid signup token")
	}

	return response.Success(c, "Signup access valid", nil)
}

// CheckAdmin reports whether any admin is registered
func (h *AuthHandler) CheckAdmin(c *fiber.Ctx) error {
	exists, err := h.authService.AdminExists(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to check admin")
	}

	return response.Success(c, "", fiber.Map{
		"admin_exists": exists,
	})
}

// Logout clears the session cookie. Tokens are stateless, so the server
// cannot revoke them early; the cookie is simply dropped client-side.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	h.clearSessionCookie(c)
	return response.Success(c, "Logout successful", nil)
}

// setSessionCookie sets the session token cookie
func (h *AuthHandler) setSessionCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JWT.SessionTTL.Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// setSignupCookie sets the short-lived signup token cookie
func (h *AuthHandler) setSignupCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SignupCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.cfg.JWT.SignupTTL.Seconds()),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}

// clearSessionCookie clears the session cookie
func (h *AuthHandler) clearSessionCookie(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Now().Add(-1 * time.Hour),
		Secure:   h.cfg.Cookie.Secure,
		HTTPOnly: true,
		SameSite: h.cfg.Cookie.SameSite,
		Domain:   h.cfg.Cookie.Domain,
	})
}
