package handlers

import (
	"fmt"

	"building/internal/services"

	"github.com/gofiber/fiber/v2"
)

// UserHandler handles HTTP requests for tenant accounts.
type UserHandler struct {
	service *services.UserService
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// RegisterRoutes registers the user routes on router behind middlewares.
func (h *UserHandler) RegisterRoutes(router fiber.Router, middlewares ...fiber.Handler) {
	userRoutes := router.Group("/users", middlewares...)
	userRoutes.Get("/", h.HandleGetUsers)
	userRoutes.Post("/", h.HandleCreateUser)
	userRoutes.Patch("/", h.HandleUpdateUser)
	userRoutes.Delete("/", h.HandleDeleteUser)
}

// HandleGetUsers lists all users without their passwords.
func (h *UserHandler) HandleGetUsers(c *fiber.Ctx) error {
	users, err := h.service.GetAllUsers(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(users)
}

// HandleCreateUser creates a new user.
func (h *UserHandler) HandleCreateUser(c *fiber.Ctx) error {
	var in services.CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.service.CreateUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": fmt.Sprintf("New user %s created", user.Name),
	})
}

// HandleUpdateUser replaces an existing user.
func (h *UserHandler) HandleUpdateUser(c *fiber.Ctx) error {
	var in services.UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.service.UpdateUser(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("%s updated", user.Name),
	})
}

// HandleDeleteUser deletes the user named in the request body.
func (h *UserHandler) HandleDeleteUser(c *fiber.Ctx) error {
	var in services.DeleteInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	user, err := h.service.DeleteUser(c.UserContext(), in.ID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fmt.Sprintf("Username %s with ID %s deleted", user.Name, user.ID))
}
