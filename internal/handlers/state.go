package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"

	"pixfacil/internal/utils"
	"pixfacil/internal/utils/response"
)

func (h *Handler) Stats(c *fiber.Ctx) error {
	return response.Success(c, "Stats retrieved", h.store.Stats())
}

func (h *Handler) SetOffline(c *fiber.Ctx) error {
	var input struct {
		Offline *bool `json:"offline"`
	}
	if err := c.BodyParser(&input); err != nil || input.Offline == nil {
		return invalidBody(c)
	}

	h.store.SetOfflineStatus(*input.Offline)
	return response.Success(c, "Offline status updated", fiber.Map{"isOffline": h.store.Offline()})
}

// ClearState wipes keys, history and transactions.
func (h *Handler) ClearState(c *fiber.Ctx) error {
	h.store.ClearStore()
	log.Printf("🧹 store cleared by %s", utils.Operator(c))
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Backup(c *fiber.Ctx) error {
	if h.backup == nil {
		return response.Error(c, fiber.StatusNotImplemented, "Backup is not configured")
	}
	if err := h.backup.Backup(c.UserContext(), h.store.Snapshot()); err != nil {
		log.Printf("⚠️ backup failed: %v", err)
		return response.Error(c, fiber.StatusBadGateway, "Backup failed")
	}
	log.Printf("💾 backup requested by %s", utils.Operator(c))
	return response.Success(c, "Backup completed", nil)
}

// Sync pushes pending transactions now instead of waiting for the monitor.
func (h *Handler) Sync(c *fiber.Ctx) error {
	if h.sync == nil {
		return response.Error(c, fiber.StatusNotImplemented, "Sync is not configured")
	}
	pending := len(h.store.PendingTransactions())
	if err := h.sync.SyncPending(c.UserContext()); err != nil {
		log.Printf("⚠️ sync failed: %v", err)
		return response.Error(c, fiber.StatusBadGateway, "Sync failed")
	}
	return response.Success(c, "Sync completed", fiber.Map{"synced": pending})
}
