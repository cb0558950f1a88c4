package handlers

import (
	"time"

	"building/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// AuthHandler handles HTTP requests for authentication.
type AuthHandler struct {
	authService *services.AuthService
	loginLimit  int
}

// NewAuthHandler creates a new AuthHandler allowing loginLimit login
// attempts per client IP and minute.
func NewAuthHandler(authService *services.AuthService, loginLimit int) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		loginLimit:  loginLimit,
	}
}

// RegisterRoutes registers the authentication routes on router.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	loginLimiter := limiter.New(limiter.Config{
		Max:        h.loginLimit,
		Expiration: time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many login attempts, please try again after a 60 second pause",
			})
		},
	})

	authRoutes := router.Group("/auth")
	authRoutes.Post("/", loginLimiter, h.HandleLogin)
}

// HandleLogin authenticates a user and issues an access token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var in services.LoginInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	token, err := h.authService.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"accessToken": token,
	})
}
