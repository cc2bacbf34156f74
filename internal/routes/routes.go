// Package routes defines the API routing configuration.
package routes

import (
	"github.com/gofiber/fiber/v2"

	"pixfacil/internal/handlers"
	"pixfacil/internal/middleware"
)

// SetupRoutes mounts the public endpoints and the /api group. The group
// requires a bearer token when auth is enabled.
func SetupRoutes(app *fiber.App, h *handlers.Handler, auth *middleware.AuthMiddleware) {
	app.Get("/health", h.HealthCheck)
	app.Get("/validate", h.ValidateKey)

	api := app.Group("/api", auth.Handler)

	keys := api.Group("/keys")
	keys.Get("/", h.ListKeys)
	keys.Post("/", h.CreateKey)
	keys.Get("/primary", h.GetPrimaryKey)
	keys.Get("/:id", h.GetKey)
	keys.Patch("/:id", h.UpdateKey)
	keys.Delete("/:id", h.DeleteKey)
	keys.Put("/:id/primary", h.SetPrimaryKey)

	codes := api.Group("/codes")
	codes.Post("/", h.GenerateCode)
	codes.Post("/verify", h.VerifyCode)
	codes.Post("/scan", h.ScanCode)
	codes.Get("/:id/image.png", h.CodeImage)

	history := api.Group("/history")
	history.Get("/", h.ListHistory)
	history.Get("/:id", h.GetHistory)
	history.Patch("/:id/received", h.SetReceived)
	history.Post("/:id/cancel", h.CancelCode)
	history.Delete("/:id", h.DeleteHistory)

	transactions := api.Group("/transactions")
	transactions.Get("/", h.ListTransactions)
	transactions.Patch("/:id/status", h.UpdateTransactionStatus)

	api.Get("/stats", h.Stats)
	api.Put("/state/offline", h.SetOffline)
	api.Delete("/state", h.ClearState)
	api.Post("/backup", h.Backup)
	api.Post("/sync", h.Sync)
}
