package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/dmarchuk/filesmanager/internal/middleware"
)

// Register wires every route onto the app. The guard middleware protects
// everything except registration, credential exchange, health and the
// file-data route, which does its own opportunistic session resolution.
func Register(app *fiber.App, guard *middleware.Auth, appH *AppHandler, authH *AuthHandler, userH *UserHandler, fileH *FileHandler) {
	app.Get("/status", appH.Status)
	app.Get("/stats", appH.Stats)

	app.Post("/users", userH.Register)

	app.Get("/connect", authH.Connect)
	app.Get("/disconnect", authH.Disconnect)
	app.Get("/users/me", guard.RequireUser, userH.Me)

	app.Post("/files", guard.RequireUser, fileH.Upload)
	app.Get("/files/:id/data", fileH.Data)
	app.Get("/files/:id", guard.RequireUser, fileH.Show)
	app.Get("/files", guard.RequireUser, fileH.Index)
	app.Put("/files/:id/publish", guard.RequireUser, fileH.Publish)
	app.Put("/files/:id/unpublish", guard.RequireUser, fileH.Unpublish)
}
