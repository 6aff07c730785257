package handlers

import (
	"encoding/base64"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/dmarchuk/filesmanager/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Connect exchanges Basic credentials for a session token.
func (h *AuthHandler) Connect(c *fiber.Ctx) error {
	email, password, ok := basicCredentials(c.Get("Authorization"))
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	token, err := h.auth.Login(c.Context(), email, password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"token": token})
}

// Disconnect revokes the session behind the X-Token header.
func (h *AuthHandler) Disconnect(c *fiber.Ctx) error {
	if err := h.auth.Logout(c.Context(), c.Get("X-Token")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// basicCredentials decodes an "Authorization: Basic <base64>" header into
// its email and password parts.
func basicCredentials(header string) (string, string, bool) {
	if !strings.HasPrefix(header, "Basic ") {
		return "", "", false
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(header, "Basic "))
	if err != nil {
		return "", "", false
	}
	email, password, found := strings.Cut(string(decoded), ":")
	if !found || email == "" {
		return "", "", false
	}
	return email, password, true
}
