package middleware

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dmarchuk/filesmanager/internal/models"
)

// Locals keys populated by RequireUser.
const (
	UserIDKey    = "user_id"
	UserEmailKey = "user_email"
)

// UserResolver resolves a session token to its user.
type UserResolver interface {
	UserFromToken(ctx context.Context, token string) (models.User, error)
}

type Auth struct {
	resolver UserResolver
}

func NewAuth(resolver UserResolver) *Auth {
	return &Auth{resolver: resolver}
}

// RequireUser is the guard in front of every authenticated route: it
// resolves the X-Token header synchronously and rejects before the
// handler runs. No handler is ever reached with a missing identity.
func (a *Auth) RequireUser(c *fiber.Ctx) error {
	token := c.Get("X-Token")
	if token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	user, err := a.resolver.UserFromToken(c.Context(), token)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Unauthorized"})
	}
	c.Locals(UserIDKey, user.ID.Hex())
	c.Locals(UserEmailKey, user.Email)
	return c.Next()
}
