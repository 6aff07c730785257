package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmarchuk/filesmanager/internal/middleware"
	"github.com/dmarchuk/filesmanager/internal/services"
)

type UserHandler struct {
	auth *services.AuthService
}

func NewUserHandler(auth *services.AuthService) *UserHandler {
	return &UserHandler{auth: auth}
}

// Register creates a new user account.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.auth.Register(c.Context(), request.Email, request.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"id":    user.ID.Hex(),
		"email": user.Email,
	})
}

// Me returns the identity behind the session token.
func (h *UserHandler) Me(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"id":    c.Locals(middleware.UserIDKey),
		"email": c.Locals(middleware.UserEmailKey),
	})
}
