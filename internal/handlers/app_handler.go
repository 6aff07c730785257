package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dmarchuk/filesmanager/internal/repository"
)

// Pinger is a health-checkable collaborator handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

type AppHandler struct {
	db    Pinger
	cache Pinger
	users repository.UserRepository
	files repository.FileRepository
}

func NewAppHandler(db, cache Pinger, users repository.UserRepository, files repository.FileRepository) *AppHandler {
	return &AppHandler{db: db, cache: cache, users: users, files: files}
}

// Status reports the health of the cache and document store.
func (h *AppHandler) Status(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"redis": h.cache.Ping(c.Context()) == nil,
		"db":    h.db.Ping(c.Context()) == nil,
	})
}

// Stats reports the user and file counts.
func (h *AppHandler) Stats(c *fiber.Ctx) error {
	users, err := h.users.Count(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	files, err := h.files.Count(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"users": users, "files": files})
}
