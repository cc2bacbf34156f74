package handlers

import (
	"slices"

	"github.com/gofiber/fiber/v2"

	"pixfacil/internal/domain/pix"
	domainErrors "pixfacil/internal/errors"
	"pixfacil/internal/utils/response"
)

// ListKeys supports ?q= (name or value) and ?type= filters.
func (h *Handler) ListKeys(c *fiber.Ctx) error {
	q := c.Query("q")
	t := c.Query("type")

	var keys []pix.Key
	if q == "" {
		keys = h.store.FilterKeysByType(t)
	} else {
		keys = h.store.SearchKeys(q)
		if t != "" && t != "all" {
			keys = slices.DeleteFunc(keys, func(k pix.Key) bool { return string(k.Type) != t })
		}
	}
	return response.Success(c, "Keys retrieved", keys)
}

func (h *Handler) GetKey(c *fiber.Ctx) error {
	key, ok := h.store.GetKey(c.Params("id"))
	if !ok {
		return handleError(c, domainErrors.ErrKeyNotFound)
	}
	return response.Success(c, "Key retrieved", key)
}

func (h *Handler) GetPrimaryKey(c *fiber.Ctx) error {
	key, ok := h.store.PrimaryKey()
	if !ok {
		return handleError(c, domainErrors.ErrNoPrimaryKey)
	}
	return response.Success(c, "Primary key retrieved", key)
}

func (h *Handler) CreateKey(c *fiber.Ctx) error {
	var input pix.KeyInput
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	key, err := h.payments.AddKey(input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Created(c, "Key created", key)
}

func (h *Handler) UpdateKey(c *fiber.Ctx) error {
	var input pix.KeyUpdate
	if err := c.BodyParser(&input); err != nil {
		return invalidBody(c)
	}

	key, err := h.payments.UpdateKey(c.Params("id"), input)
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Key updated", key)
}

// DeleteKey also removes the key's history and transactions.
func (h *Handler) DeleteKey(c *fiber.Ctx) error {
	if err := h.payments.DeleteKey(c.Params("id")); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) SetPrimaryKey(c *fiber.Ctx) error {
	key, err := h.payments.SetPrimary(c.Params("id"))
	if err != nil {
		return handleError(c, err)
	}
	return response.Success(c, "Primary key updated", key)
}
