package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/dmarchuk/filesmanager/internal/middleware"
	"github.com/dmarchuk/filesmanager/internal/models"
	"github.com/dmarchuk/filesmanager/internal/services"
)

type FileHandler struct {
	files *services.FileService
	auth  *services.AuthService
}

func NewFileHandler(files *services.FileService, auth *services.AuthService) *FileHandler {
	return &FileHandler{files: files, auth: auth}
}

func userID(c *fiber.Ctx) string {
	id, _ := c.Locals(middleware.UserIDKey).(string)
	return id
}

// Upload handles POST /files.
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	var req services.UploadRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	file, err := h.files.Upload(c.Context(), userID(c), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(file)
}

// Show handles GET /files/:id.
func (h *FileHandler) Show(c *fiber.Ctx) error {
	file, err := h.files.Get(c.Context(), c.Params("id"), userID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(file)
}

// Index handles GET /files with parentId and page query parameters.
func (h *FileHandler) Index(c *fiber.Ctx) error {
	page, err := strconv.ParseInt(c.Query("page", "0"), 10, 64)
	if err != nil || page < 0 {
		page = 0
	}
	parentID := c.Query("parentId", models.RootParentID)

	files, err := h.files.List(c.Context(), userID(c), parentID, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(files)
}

// Publish handles PUT /files/:id/publish.
func (h *FileHandler) Publish(c *fiber.Ctx) error {
	return h.setVisibility(c, true)
}

// Unpublish handles PUT /files/:id/unpublish.
func (h *FileHandler) Unpublish(c *fiber.Ctx) error {
	return h.setVisibility(c, false)
}

func (h *FileHandler) setVisibility(c *fiber.Ctx, public bool) error {
	file, err := h.files.SetVisibility(c.Context(), c.Params("id"), userID(c), public)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(file)
}

// Data handles GET /files/:id/data. The route is public; the session is
// resolved opportunistically and ownership is enforced by the service for
// private files.
func (h *FileHandler) Data(c *fiber.Ctx) error {
	viewerID := ""
	if token := c.Get("X-Token"); token != "" {
		if user, err := h.auth.UserFromToken(c.Context(), token); err == nil {
			viewerID = user.ID.Hex()
		}
	}

	data, contentType, err := h.files.FileData(c.Context(), c.Params("id"), c.Query("size"), viewerID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, contentType)
	return c.Send(data)
}
